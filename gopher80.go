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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gopher80/debugger"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopher80/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/hardware"
	"github.com/jetsetilly/gopher80/hardware/memory"
	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/modalflag"
	"github.com/jetsetilly/gopher80/paths"
	"github.com/jetsetilly/gopher80/performance"
	"github.com/jetsetilly/gopher80/prefs"
	"github.com/jetsetilly/gopher80/statsview"
	"github.com/jetsetilly/gopher80/version"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const preferencesFile = "preferences"

func main() {
	os.Exit(launch(os.Args[1:]))
}

// launch returns the value to use with os.Exit().
func launch(args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "DISASM", "PERFORMANCE", "VERSION")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	if stats != nil && *stats {
		stop := statsview.Launch(os.Stdout)
		defer stop()
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

// flags shared by the RUN and DEBUG modes.
type machineFlags struct {
	origin     *uint16
	rom        *bool
	prefs      *string
	tape       *string
	tapeInput  *string
	wav        *string
	wavChannel *int
	log        *bool
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	return &machineFlags{
		origin:     md.AddAddress("origin", 0x0000, "load address of program. execution starts at this address"),
		rom:        md.AddBool("rom", false, "load program as ROM"),
		prefs:      md.AddString("prefs", "", "preference overrides (eg. \"cpu.speedkhz::4000; cpu.brake::false\")"),
		tape:       md.AddString("tape", "", "cassette image to play (WAV or MP3)"),
		tapeInput:  md.AddString("tapeinput", "CTC3", "where to send the tape signal: CTC0-3, PIOA0-7, PIOB0-7"),
		wav:        md.AddString("wav", "", "record CTC channel output to wav file"),
		wavChannel: md.AddInt("wavchannel", 0, "CTC channel to record"),
		log:        md.AddBool("log", false, "echo log to stdout"),
	}
}

// create the machine described by the flags. the returned function must be
// called when the machine is no longer required.
func (f *machineFlags) create(md *modalflag.Modes) (*hardware.Machine, func(), error) {
	if *f.log {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stdout), false)
		} else {
			logger.SetEcho(os.Stdout, false)
		}
	} else {
		logger.SetEcho(nil, false)
	}

	pth, err := paths.CreateResourcePath(preferencesFile)
	if err != nil {
		return nil, nil, err
	}

	prefs.PushCommandLineStack(*f.prefs)
	p, err := preferences.NewPreferences(pth)
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "gopher80", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, nil, err
	}

	m, err := hardware.NewMachine(p)
	if err != nil {
		return nil, nil, err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil, fmt.Errorf("program file required for %s mode", md)
	case 1:
		if *f.rom {
			if !m.LoadROM(md.GetArg(0), *f.origin) {
				return nil, nil, fmt.Errorf("cannot load ROM (%s)", md.GetArg(0))
			}
		} else if err := m.LoadProgram(md.GetArg(0), *f.origin); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("too many arguments for %s mode", md)
	}
	m.CPU.PC = *f.origin

	if *f.tape != "" {
		sink, err := m.TapeInput(*f.tapeInput)
		if err != nil {
			return nil, nil, err
		}
		if err := m.InsertTape(*f.tape, sink); err != nil {
			return nil, nil, err
		}
		m.Tape.Play()
	}

	if *f.wav != "" {
		if err := m.RecordAudio(*f.wav, *f.wavChannel); err != nil {
			return nil, nil, err
		}
	}

	end := func() {
		m.EjectTape()
		if m.IsRecording() {
			if err := m.StopRecording(); err != nil {
				fmt.Printf("* %v\n", err)
			}
		}
	}

	return m, end, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	f := addMachineFlags(md)
	profile := md.AddString("profile", "NONE", "run through profiler: CPU, MEM, TRACE (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	m, end, err := f.create(md)
	if err != nil {
		return err
	}
	defer end()

	return performance.RunProfiler(prf, "run", func() error {
		return runMachine(m)
	})
}

// run the machine until it stops or until ctrl-c is pressed.
func runMachine(m *hardware.Machine) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return m.Run()
	})

	// stop the machine on ctrl-c
	g.Go(func() error {
		select {
		case <-ctx.Done():
			m.Exit()
		case <-done:
		}
		return nil
	})

	return g.Wait()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()
	f := addMachineFlags(md)
	duration := md.AddString("duration", "5s", "run duration (with an additional 's' or 'm' suffix)")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: CPU, MEM, TRACE (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	m, end, err := f.create(md)
	if err != nil {
		return err
	}
	defer end()

	_, err = performance.Check(md.Output, prf, m, *duration)
	return err
}

func debug(md *modalflag.Modes) error {
	md.NewMode()
	f := addMachineFlags(md)
	termType := md.AddString("term", "AUTO", "terminal type to use in debug mode: AUTO, COLOR, PLAIN")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var trm terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to auto\n", *termType)
		fallthrough
	case "AUTO":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			trm = &colorterm.ColorTerminal{}
		} else {
			trm = plainterm.NewPlainTerminal(nil, nil)
		}
	case "PLAIN":
		trm = plainterm.NewPlainTerminal(nil, nil)
	case "COLOR":
		trm = &colorterm.ColorTerminal{}
	}

	m, end, err := f.create(md)
	if err != nil {
		return err
	}
	defer end()

	dbg, err := debugger.NewDebugger(m, trm)
	if err != nil {
		return err
	}

	return dbg.Start(context.Background())
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()
	origin := md.AddAddress("origin", 0x0000, "load address of program")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program file required for %s mode", md)
	case 1:
		fi, err := os.Stat(md.GetArg(0))
		if err != nil {
			return err
		}
		if fi.Size() == 0 {
			return fmt.Errorf("program file is empty")
		}

		mem := memory.NewMemory()
		if err := mem.LoadFile(md.GetArg(0), *origin, false); err != nil {
			return err
		}

		to := min(int(*origin)+int(fi.Size())-1, 0xffff)
		return disassembly.Write(md.Output, mem, *origin, uint16(to))
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Fprintln(md.Output, r)
	}

	return nil
}
