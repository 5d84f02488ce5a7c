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

package debugger_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/gopher80/debugger"
	"github.com/jetsetilly/gopher80/debugger/govern"
	"github.com/jetsetilly/gopher80/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/test"
)

// program used by all tests.
var program = []uint8{
	0x31, 0x00, 0xf0, // 0000 LD SP,F000H
	0x3e, 0x05, // 0003 LD A,05H
	0xcd, 0x10, 0x00, // 0005 CALL 0010H
	0x3c,       // 0008 INC A
	0x18, 0xfe, // 0009 JR 0009H
	0x00, 0x00, 0x00, 0x00, 0x00, // padding
	0x06, 0x07, // 0010 LD B,07H
	0xc9, // 0012 RET
}

// output written by the debugger and read by the test goroutine.
type syncBuffer struct {
	crit sync.Mutex
	buf  strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.buf.Write(p)
}

// take returns the output so far and empties the buffer.
func (b *syncBuffer) take() string {
	b.crit.Lock()
	defer b.crit.Unlock()
	s := b.buf.String()
	b.buf.Reset()
	return s
}

type harness struct {
	t    *testing.T
	m    *hardware.Machine
	dbg  *debugger.Debugger
	in   *io.PipeWriter
	out  *syncBuffer
	done chan error
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(p)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Brake.Set(false))

	for i, v := range program {
		m.Mem.Poke(uint16(i), v)
	}

	r, w := io.Pipe()
	h := &harness{
		t:    t,
		m:    m,
		in:   w,
		out:  &syncBuffer{},
		done: make(chan error, 1),
	}

	h.dbg, err = debugger.NewDebugger(m, plainterm.NewPlainTerminal(r, h.out))
	test.DemandSuccess(t, err)

	go func() {
		h.done <- h.dbg.Start(context.Background())
	}()

	waitFor(t, func() bool {
		return h.dbg.State() == govern.Paused
	})

	t.Cleanup(func() {
		w.Close()
		m.Exit()
	})

	return h
}

func waitFor(t *testing.T, f func() bool) {
	t.Helper()
	timeout := time.Now().Add(5 * time.Second)
	for !f() {
		if time.Now().After(timeout) {
			t.Fatalf("timeout")
		}
		time.Sleep(time.Millisecond)
	}
}

// command sends the input to the debugger and returns the output. the empty
// line that follows the command can only be written once the command has
// completed.
func (h *harness) command(input string) string {
	h.t.Helper()
	_, err := fmt.Fprintf(h.in, "%s\n", input)
	test.DemandSuccess(h.t, err)
	_, err = fmt.Fprintf(h.in, "\n")
	test.DemandSuccess(h.t, err)
	return h.out.take()
}

func (h *harness) quit() {
	h.t.Helper()
	_, err := fmt.Fprintf(h.in, "QUIT\n")
	test.DemandSuccess(h.t, err)
	select {
	case err := <-h.done:
		test.ExpectSuccess(h.t, err)
	case <-time.After(5 * time.Second):
		h.t.Fatalf("debugger did not quit")
	}
	test.ExpectEquality(h.t, h.dbg.State(), govern.Ending)
}

func TestStep(t *testing.T) {
	h := newHarness(t)
	test.ExpectEquality(t, h.m.CPU.PC, 0x0000)

	out := h.command("STEP")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0003)
	test.ExpectEquality(t, h.m.CPU.SP, 0xf000)
	test.ExpectSuccess(t, strings.Contains(out, "LD A,05H"))

	h.command("step 2")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0010)
	test.ExpectEquality(t, h.m.CPU.A, 0x05)

	out = h.command("STEP 0")
	test.ExpectSuccess(t, strings.HasPrefix(out, "* STEP: invalid argument"))

	h.quit()
}

func TestOverAndOut(t *testing.T) {
	h := newHarness(t)

	h.command("STEP 2")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0005)

	h.command("OVER")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0008)
	test.ExpectEquality(t, h.m.CPU.B, 0x07)

	h.command("RESET")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0000)

	h.command("STEP 3")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0010)
	out := h.command("OUT")
	test.ExpectEquality(t, h.m.CPU.PC, 0x0008)
	test.ExpectSuccess(t, strings.Contains(out, "INC A"))

	h.quit()
}

func TestBreakpoints(t *testing.T) {
	h := newHarness(t)

	out := h.command("BREAK 12h")
	test.ExpectEquality(t, out, "breakpoint added: address 0012\n")

	out = h.command("BREAK $12")
	test.ExpectEquality(t, out, "* breakpoint: already exists (address 0012)\n")

	h.command("BREAK INT CTC")
	out = h.command("LIST")
	test.ExpectEquality(t, out, " 0: address 0012\n 1: interrupt CTC\n")

	h.command("RUN")
	waitFor(t, h.m.CPU.IsPause)
	test.ExpectEquality(t, h.m.CPU.PC, 0x0012)

	out = h.command("REGS")
	test.ExpectSuccess(t, strings.Contains(out, "break on address 0012"))
	test.ExpectSuccess(t, strings.Contains(out, "PC  0012"))
	test.ExpectEquality(t, h.dbg.State(), govern.Paused)

	out = h.command("CLEAR 5")
	test.ExpectEquality(t, out, "* breakpoint: no breakpoint #5\n")
	h.command("CLEAR 0")
	out = h.command("LIST")
	test.ExpectEquality(t, out, " 0: interrupt CTC\n")
	h.command("CLEAR")
	out = h.command("LIST")
	test.ExpectEquality(t, out, "no breakpoints\n")

	h.quit()
}

func TestLuaBreakpoint(t *testing.T) {
	h := newHarness(t)

	out := h.command("BREAK LUA B == 7 and peek(0x0012) == 0xc9")
	test.ExpectEquality(t, out, "breakpoint added: lua B == 7 and peek(0x0012) == 0xc9\n")

	out = h.command("BREAK LUA B ==")
	test.ExpectSuccess(t, strings.HasPrefix(out, "* lua:"))

	h.command("RUN")
	waitFor(t, h.m.CPU.IsPause)
	test.ExpectEquality(t, h.m.CPU.PC, 0x0012)

	h.quit()
}

func TestRunning(t *testing.T) {
	h := newHarness(t)

	h.command("RUN")
	test.ExpectEquality(t, h.dbg.State(), govern.Running)

	out := h.command("REGS")
	test.ExpectEquality(t, out, "* machine is running (use HALT)\n")

	// status of the chips is available while running
	out = h.command("CTC")
	test.ExpectSuccess(t, strings.Contains(out, "vector"))

	h.command("HALT")
	test.ExpectEquality(t, h.dbg.State(), govern.Paused)
	test.ExpectEquality(t, h.m.CPU.IsPause(), true)

	h.quit()
}

func TestMemory(t *testing.T) {
	h := newHarness(t)

	h.command("POKE 0x2000 0xaa 0xbb")
	test.ExpectEquality(t, h.m.Mem.Peek(0x2000), 0xaa)
	test.ExpectEquality(t, h.m.Mem.Peek(0x2001), 0xbb)

	out := h.command("MEM 0x2000 2")
	test.ExpectSuccess(t, strings.Contains(out, "2000 | aa bb"))

	out = h.command("POKE 0x2000 0x100")
	test.ExpectEquality(t, out, "* POKE: invalid argument: 0x100\n")

	out = h.command("MEM")
	test.ExpectEquality(t, out, "* MEM: missing argument\n")

	out = h.command("DISASM 0 2")
	test.ExpectSuccess(t, strings.Contains(out, "LD SP,0F000H"))
	test.ExpectEquality(t, len(strings.Split(strings.TrimSpace(out), "\n")), 2)

	h.quit()
}

func TestSpeedAndPrefs(t *testing.T) {
	h := newHarness(t)

	h.command("SPEED 1000")
	test.ExpectEquality(t, h.m.CPU.MaxSpeedKHz(), 1000)

	out := h.command("SPEED 0")
	test.ExpectSuccess(t, strings.HasPrefix(out, "* SPEED: invalid argument"))
	test.ExpectEquality(t, h.m.CPU.MaxSpeedKHz(), 1000)

	h.command("SPEED BRAKE ON")
	test.ExpectEquality(t, h.m.CPU.BrakeEnabled(), true)

	out = h.command("SPEED")
	test.ExpectSuccess(t, strings.HasPrefix(out, "max speed 1000 kHz (measured "))
	test.ExpectSuccess(t, strings.HasSuffix(out, ") brake on\n"))

	out = h.command("PREFS")
	test.ExpectSuccess(t, strings.Contains(out, "cpu.speedkhz :: 1000"))

	h.quit()
}

func TestMemviz(t *testing.T) {
	h := newHarness(t)

	fn := filepath.Join(t.TempDir(), "state.dot")
	out := h.command(fmt.Sprintf("MEMVIZ %s", fn))
	test.ExpectEquality(t, out, fmt.Sprintf("machine state written to %s\n", fn))

	d, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(d), "digraph"))

	h.quit()
}

func TestHelpAndErrors(t *testing.T) {
	h := newHarness(t)

	out := h.command("FOO")
	test.ExpectEquality(t, out, "* unknown command: FOO\n")

	out = h.command("HELP break")
	test.ExpectEquality(t, out, "BREAK <address> | INT [CTC|PIO|SIO] | LUA <expression>\nadd a breakpoint\n")

	out = h.command("HELP")
	test.ExpectSuccess(t, strings.Contains(out, "QUIT"))

	h.quit()
}

func TestTapeAndRecord(t *testing.T) {
	h := newHarness(t)

	out := h.command("TAPE")
	test.ExpectEquality(t, out, "no tape\n")

	out = h.command("TAPE PLAY")
	test.ExpectEquality(t, out, "* TAPE: invalid argument: no tape\n")

	out = h.command("TAPE INSERT tape.wav CTC9")
	test.ExpectEquality(t, out, "* machine: unknown tape input (CTC9)\n")

	fn := filepath.Join(t.TempDir(), "audio.wav")
	out = h.command(fmt.Sprintf("RECORD %s 2", fn))
	test.ExpectEquality(t, out, fmt.Sprintf("recording CTC channel 2 to %s\n", fn))
	test.ExpectSuccess(t, h.m.IsRecording())

	out = h.command("RECORD STOP")
	test.ExpectEquality(t, out, "recording stopped\n")
	_, err := os.Stat(fn)
	test.ExpectSuccess(t, err)

	out = h.command("RECORD STOP")
	test.ExpectEquality(t, out, "* machine: audio is not being recorded\n")

	h.quit()
}
