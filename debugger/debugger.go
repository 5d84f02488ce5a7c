// This file is part of Gopher80.
//
// Gopher80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher80.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/debugger/terminal/commandline"
	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/logger"
	"golang.org/x/sync/errgroup"
)

// Sentinal errors.
const (
	DebuggerError  = "debugger: %v"
	MachineRunning = "machine is running (use HALT)"
	MachineStopped = "machine has stopped"
)

// the number of events that can be queued for the input loop
const eventQueueLimit = 32

// Debugger is the monitor for the emulated machine.
type Debugger struct {
	m    *hardware.Machine
	term terminal.Terminal

	state govern.AtomicState

	cmds commandline.Commands
	bps  *breakpoints

	// events serviced by the input loop. the IntEvents channel is also
	// monitored while waiting for the CPU to pause
	events terminal.ReadEvents

	// poked by the CPU's status listener
	statusPoke chan bool

	// the number of breakpoints that have been hit
	breaks atomic.Uint64

	// closed when the CPU goroutine has ended
	cpuDone chan struct{}

	// output to the terminal happens from more than one goroutine when
	// tracing is enabled
	printCrit sync.Mutex
	tracing   bool
}

// NewDebugger creates a monitor for the machine. The terminal is initialised
// when the debugger is started.
func NewDebugger(m *hardware.Machine, term terminal.Terminal) (*Debugger, error) {
	if m == nil || term == nil {
		return nil, curated.Errorf(DebuggerError, "machine and terminal are required")
	}

	dbg := &Debugger{
		m:    m,
		term: term,
		cmds: commands,
		bps:  newBreakpoints(m.CPU),
		events: terminal.ReadEvents{
			IntEvents: make(chan os.Signal, 1),
			RawEvents: make(chan func(), eventQueueLimit),
		},
		statusPoke: make(chan bool, 1),
		cpuDone:    make(chan struct{}),
	}

	dbg.state.Store(govern.Initialising)
	m.CPU.AddStatusListener(dbg)

	return dbg, nil
}

// State returns the current state of the emulation.
func (dbg *Debugger) State() govern.State {
	return dbg.state.Load()
}

// Start the debugger. The CPU is run in its own goroutine and is paused
// before the first instruction. Start returns when the user quits the
// debugger, when the context is cancelled or when the CPU stops because of
// an error. The CPU error is returned.
func (dbg *Debugger) Start(ctx context.Context) error {
	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf(DebuggerError, err)
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(commandline.NewTabCompletion(dbg.cmds))

	signal.Notify(dbg.events.IntEvents, os.Interrupt)
	defer signal.Stop(dbg.events.IntEvents)

	dbg.m.CPU.SetDebugEnabled(true)
	n := dbg.m.CPU.Pauses()
	dbg.m.CPU.FireAction(cpu.DebugStop)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(dbg.cpuDone)
		return dbg.m.Run()
	})

	g.Go(func() error {
		defer dbg.m.Exit()

		// the input loop must be woken if it is waiting for input when the
		// CPU stops
		go func() {
			select {
			case <-dbg.cpuDone:
			case <-ctx.Done():
			}
			select {
			case dbg.events.IntEvents <- os.Interrupt:
			default:
			}
		}()

		if !dbg.waitForPause(n) {
			return nil
		}
		dbg.state.Store(govern.Paused)

		return dbg.inputLoop(ctx)
	})

	err := g.Wait()
	dbg.state.Store(govern.Ending)
	logger.Log(logger.Allow, "debugger", "ended")

	return err
}

func (dbg *Debugger) inputLoop(ctx context.Context) error {
	buffer := make([]byte, 256)

	for {
		dbg.serviceEvents()

		select {
		case <-dbg.cpuDone:
			dbg.printLine(terminal.StyleError, MachineStopped)
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := dbg.term.TermRead(buffer, dbg.prompt(), &dbg.events)
		if err != nil {
			switch {
			case curated.Is(err, terminal.UserInterrupt):
				if dbg.state.Load() == govern.Running {
					dbg.halt()
				}
				continue
			case curated.Is(err, terminal.UserAbort), errors.Is(err, io.EOF):
				return nil
			}
			return curated.Errorf(DebuggerError, err)
		}

		// a breakpoint may have been hit while we were waiting for input
		dbg.serviceEvents()

		quit, err := dbg.parseInput(string(buffer[:n]))
		if err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
		if quit {
			return nil
		}
	}
}

// run any functions that have been queued for the input loop.
func (dbg *Debugger) serviceEvents() {
	for {
		select {
		case f := <-dbg.events.RawEvents:
			f()
		default:
			return
		}
	}
}

func (dbg *Debugger) pushEvent(f func()) {
	select {
	case dbg.events.RawEvents <- f:
	default:
		logger.Log(logger.Allow, "debugger", "event queue is full")
	}
}

func (dbg *Debugger) prompt() terminal.Prompt {
	if dbg.state.Load() == govern.Running {
		return terminal.Prompt{
			Type:    terminal.PromptTypeCPUStep,
			Content: "----",
			Running: true,
		}
	}

	e := disassembly.Disassemble(dbg.m.Mem, dbg.m.CPU.PC)
	return terminal.Prompt{
		Type:    terminal.PromptTypeCPUStep,
		Content: fmt.Sprintf("%04X %s", e.Address, e.Mnemonic()),
	}
}

// StatusChanged implements the cpu.StatusListener interface. It is called
// from the CPU goroutine.
func (dbg *Debugger) StatusChanged(bp cpu.Breakpoint, src cpu.InterruptSource) {
	if bp != nil {
		dbg.breaks.Add(1)
		dbg.pushEvent(func() {
			dbg.breakHit(bp, src)
		})
	}

	select {
	case dbg.statusPoke <- true:
	default:
	}
}

func (dbg *Debugger) breakHit(bp cpu.Breakpoint, src cpu.InterruptSource) {
	if dbg.m.CPU.IsPause() {
		dbg.state.Store(govern.Paused)
	}
	if src != nil {
		dbg.printLinef(terminal.StyleFeedbackNonInteractive, "break on %v (accepted from %v)", bp, src)
		return
	}
	dbg.printLinef(terminal.StyleFeedbackNonInteractive, "break on %v", bp)
}

// waitForPause waits until the CPU has paused more than n times. Returns
// false if the CPU stops before then.
func (dbg *Debugger) waitForPause(n uint64) bool {
	for dbg.m.CPU.Pauses() <= n {
		select {
		case <-dbg.statusPoke:
		case <-dbg.cpuDone:
			return false
		case <-dbg.events.IntEvents:
			dbg.m.CPU.FireAction(cpu.DebugStop)
		}
	}
	return true
}

// step the CPU with one of the debugging actions and wait for it to pause
// again.
func (dbg *Debugger) step(action cpu.Action) bool {
	dbg.state.Store(govern.Stepping)
	n := dbg.m.CPU.Pauses()
	dbg.m.CPU.FireAction(action)
	ok := dbg.waitForPause(n)
	dbg.state.Store(govern.Paused)
	return ok
}

// isRunning returns false if the CPU has paused because of a breakpoint,
// even if the event has not yet been serviced.
func (dbg *Debugger) isRunning() bool {
	return dbg.state.Load() == govern.Running && !dbg.m.CPU.IsPause()
}

func (dbg *Debugger) run() {
	dbg.state.Store(govern.Running)
	dbg.m.CPU.FireAction(cpu.DebugRun)
}

// halt the CPU and wait for it to pause. the CPU may already be paused
// because of a breakpoint.
func (dbg *Debugger) halt() bool {
	dbg.m.CPU.FireAction(cpu.DebugStop)
	for !dbg.m.CPU.IsPause() {
		select {
		case <-dbg.statusPoke:
		case <-dbg.cpuDone:
			return false
		}
	}
	dbg.state.Store(govern.Paused)
	return true
}
