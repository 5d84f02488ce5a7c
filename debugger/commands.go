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
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/debugger/terminal"
	"github.com/jetsetilly/gopher80/debugger/terminal/commandline"
	"github.com/jetsetilly/gopher80/disassembly"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/logger"
	"github.com/jetsetilly/gopher80/paths"
)

// Sentinal errors.
const (
	UnknownCommand  = "unknown command: %s"
	InvalidArgument = "%s: invalid argument: %s"
	MissingArgument = "%s: missing argument"
)

// command keywords.
const (
	cmdHelp   = "HELP"
	cmdStep   = "STEP"
	cmdOver   = "OVER"
	cmdOut    = "OUT"
	cmdRun    = "RUN"
	cmdHalt   = "HALT"
	cmdBreak  = "BREAK"
	cmdClear  = "CLEAR"
	cmdList   = "LIST"
	cmdRegs   = "REGS"
	cmdMem    = "MEM"
	cmdPoke   = "POKE"
	cmdDisasm = "DISASM"
	cmdTrace  = "TRACE"
	cmdNMI    = "NMI"
	cmdReset  = "RESET"
	cmdCTC    = "CTC"
	cmdPIO    = "PIO"
	cmdSIO    = "SIO"
	cmdSpeed  = "SPEED"
	cmdPrefs  = "PREFS"
	cmdTape   = "TAPE"
	cmdRecord = "RECORD"
	cmdMemviz = "MEMVIZ"
	cmdLog    = "LOG"
	cmdQuit   = "QUIT"
)

var commands = commandline.Commands{
	{Keyword: cmdHelp, Usage: "[<command>]", Help: "list commands or show help for a single command"},
	{Keyword: cmdStep, Usage: "[<count>]", Help: "execute the next instruction"},
	{Keyword: cmdOver, Help: "execute the next instruction. subroutines and interrupts run to completion"},
	{Keyword: cmdOut, Help: "run until the current subroutine has returned"},
	{Keyword: cmdRun, Help: "run until a breakpoint is hit or HALT is entered"},
	{Keyword: cmdHalt, Help: "stop a running machine"},
	{Keyword: cmdBreak, Options: []string{"INT", "LUA"}, Usage: "<address> | INT [CTC|PIO|SIO] | LUA <expression>", Help: "add a breakpoint"},
	{Keyword: cmdClear, Options: []string{"ALL"}, Usage: "[<number>|ALL]", Help: "remove one or all breakpoints"},
	{Keyword: cmdList, Help: "list breakpoints"},
	{Keyword: cmdRegs, Help: "show the CPU registers"},
	{Keyword: cmdMem, Usage: "<address> [<length>]", Help: "show the contents of memory"},
	{Keyword: cmdPoke, Usage: "<address> <value>...", Help: "change the contents of memory"},
	{Keyword: cmdDisasm, Usage: "[<address>] [<count>]", Help: "disassemble memory"},
	{Keyword: cmdTrace, Options: []string{"ON", "OFF"}, Usage: "[ON|OFF]", Help: "trace every instruction"},
	{Keyword: cmdNMI, Help: "request a non-maskable interrupt"},
	{Keyword: cmdReset, Options: []string{"POWER"}, Usage: "[POWER]", Help: "reset the machine"},
	{Keyword: cmdCTC, Help: "show the state of the CTC"},
	{Keyword: cmdPIO, Help: "show the state of the PIO"},
	{Keyword: cmdSIO, Help: "show the state of the SIO"},
	{Keyword: cmdSpeed, Options: []string{"BRAKE"}, Usage: "[<kHz> | BRAKE ON|OFF]", Help: "show or change the speed of the CPU"},
	{Keyword: cmdPrefs, Options: []string{"SAVE", "LOAD", "DEFAULT"}, Usage: "[SAVE|LOAD|DEFAULT]", Help: "show or save the machine preferences"},
	{Keyword: cmdTape, Options: []string{"INSERT", "PLAY", "STOP", "REWIND", "EJECT"}, Usage: "[INSERT <filename> <input> | PLAY | STOP | REWIND | EJECT]", Help: "control the tape player. inputs are CTC0-3, PIOA0-7 and PIOB0-7"},
	{Keyword: cmdRecord, Options: []string{"STOP"}, Usage: "<filename> <channel> | STOP", Help: "record the output of a CTC channel as a WAV file"},
	{Keyword: cmdMemviz, Usage: "[<filename>]", Help: "write the state of the machine as a graphviz file"},
	{Keyword: cmdLog, Options: []string{"CLEAR"}, Usage: "[<count>|CLEAR]", Help: "show the most recent log entries"},
	{Keyword: cmdQuit, Help: "quit the debugger"},
}

// commands that are not safe to run while the CPU is running.
var pausedOnly = map[string]bool{
	cmdStep:   true,
	cmdOver:   true,
	cmdOut:    true,
	cmdRegs:   true,
	cmdMem:    true,
	cmdPoke:   true,
	cmdDisasm: true,
	cmdReset:  true,
	cmdMemviz: true,
}

func parseWord(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	return uint16(v), err
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	return uint8(v), err
}

// parseInput executes the command in the input string. Returns true if the
// debugger should quit.
func (dbg *Debugger) parseInput(input string) (bool, error) {
	tokens := commandline.TokeniseInput(input)

	kw, ok := tokens.Get()
	if !ok {
		return false, nil
	}

	cmd, ok := dbg.cmds.Lookup(kw)
	if !ok {
		return false, curated.Errorf(UnknownCommand, kw)
	}

	dbg.printLine(terminal.StyleEcho, tokens.String())

	if pausedOnly[cmd.Keyword] && dbg.isRunning() {
		return false, curated.Errorf(MachineRunning)
	}

	switch cmd.Keyword {
	case cmdHelp:
		arg, ok := tokens.Get()
		if !ok {
			dbg.printLines(terminal.StyleHelp, dbg.cmds.HelpString())
			return false, nil
		}
		c, ok := dbg.cmds.Lookup(arg)
		if !ok {
			return false, curated.Errorf(UnknownCommand, arg)
		}
		dbg.printLine(terminal.StyleHelp, strings.TrimSpace(fmt.Sprintf("%s %s", c.Keyword, c.Usage)))
		dbg.printLine(terminal.StyleHelp, c.Help)

	case cmdStep:
		count := 1
		if arg, ok := tokens.Get(); ok {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			count = n
		}
		for range count {
			if !dbg.step(cpu.DebugStepInto) {
				return false, curated.Errorf(MachineStopped)
			}
		}
		dbg.printCPUStep()

	case cmdOver:
		if !dbg.step(cpu.DebugStepOver) {
			return false, curated.Errorf(MachineStopped)
		}
		dbg.printCPUStep()

	case cmdOut:
		// the CPU pauses on the return instruction. unless a breakpoint was hit
		// the return instruction is then executed
		b := dbg.breaks.Load()
		if !dbg.step(cpu.DebugStepUp) {
			return false, curated.Errorf(MachineStopped)
		}
		if b == dbg.breaks.Load() {
			if !dbg.step(cpu.DebugStepInto) {
				return false, curated.Errorf(MachineStopped)
			}
		}
		dbg.printCPUStep()

	case cmdRun:
		if dbg.isRunning() {
			return false, curated.Errorf(MachineRunning)
		}
		dbg.run()

	case cmdHalt:
		if !dbg.halt() {
			return false, curated.Errorf(MachineStopped)
		}
		dbg.printCPUStep()

	case cmdBreak:
		return false, dbg.addBreakpoint(tokens)

	case cmdClear:
		arg, ok := tokens.Get()
		if !ok || strings.ToUpper(arg) == "ALL" {
			dbg.bps.clear()
			dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")
			return false, nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
		}
		if err := dbg.bps.drop(n); err != nil {
			return false, err
		}
		dbg.printLinef(terminal.StyleFeedback, "breakpoint #%d removed", n)

	case cmdList:
		dbg.printLines(terminal.StyleFeedback, dbg.bps.String())

	case cmdRegs:
		dbg.printLines(terminal.StyleInstrument, registers(dbg.m.CPU))

	case cmdMem:
		arg, ok := tokens.Get()
		if !ok {
			return false, curated.Errorf(MissingArgument, cmd.Keyword)
		}
		from, err := parseWord(arg)
		if err != nil {
			return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
		}
		length := 0x40
		if arg, ok := tokens.Get(); ok {
			l, err := strconv.ParseUint(arg, 0, 17)
			if err != nil || l == 0 {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			length = int(l)
		}
		to := min(int(from)+length-1, 0xffff)
		dbg.printLines(terminal.StyleFeedback, dbg.m.Mem.Dump(from, uint16(to)))

	case cmdPoke:
		arg, ok := tokens.Get()
		if !ok {
			return false, curated.Errorf(MissingArgument, cmd.Keyword)
		}
		address, err := parseWord(arg)
		if err != nil {
			return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
		}
		if tokens.IsEnd() {
			return false, curated.Errorf(MissingArgument, cmd.Keyword)
		}
		for arg, ok := tokens.Get(); ok; arg, ok = tokens.Get() {
			v, err := parseByte(arg)
			if err != nil {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			dbg.m.Mem.Poke(address, v)
			address++
		}

	case cmdDisasm:
		address := dbg.m.CPU.PC
		count := 16
		if arg, ok := tokens.Get(); ok {
			a, err := parseWord(arg)
			if err != nil {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			address = a
		}
		if arg, ok := tokens.Get(); ok {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			count = n
		}
		for _, e := range disassembly.Listing(dbg.m.Mem, address, count) {
			dbg.printLine(terminal.StyleFeedback, e.String())
		}

	case cmdTrace:
		trace := !dbg.tracing
		if arg, ok := tokens.Get(); ok {
			switch strings.ToUpper(arg) {
			case "ON":
				trace = true
			case "OFF":
				trace = false
			default:
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
		}
		dbg.tracing = trace
		if trace {
			dbg.m.CPU.SetDebugTracer(&lineWriter{dbg: dbg, style: terminal.StyleCPUStep})
			dbg.printLine(terminal.StyleFeedback, "tracing on")
		} else {
			dbg.m.CPU.SetDebugTracer(nil)
			dbg.printLine(terminal.StyleFeedback, "tracing off")
		}

	case cmdNMI:
		dbg.m.CPU.FireNMI()
		dbg.printLine(terminal.StyleFeedback, "NMI requested")

	case cmdReset:
		power := false
		if arg, ok := tokens.Get(); ok {
			if strings.ToUpper(arg) != "POWER" {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			power = true
		}
		dbg.m.Reset(power)
		if power {
			dbg.printLine(terminal.StyleFeedback, "machine power cycled")
		} else {
			dbg.printLine(terminal.StyleFeedback, "machine reset")
		}

	case cmdCTC:
		dbg.printLines(terminal.StyleInstrument, dbg.m.CTC.Status())

	case cmdPIO:
		dbg.printLines(terminal.StyleInstrument, dbg.m.PIO.Status())

	case cmdSIO:
		dbg.printLines(terminal.StyleInstrument, dbg.m.SIO.Status())

	case cmdSpeed:
		return false, dbg.speed(tokens)

	case cmdPrefs:
		return false, dbg.prefs(tokens)

	case cmdTape:
		return false, dbg.tape(tokens)

	case cmdRecord:
		return false, dbg.record(tokens)

	case cmdMemviz:
		filename, ok := tokens.Get()
		if !ok {
			filename = fmt.Sprintf("%s.dot", paths.UniqueFilename("memviz", ""))
		}
		if err := dbg.memviz(filename); err != nil {
			return false, err
		}
		dbg.printLinef(terminal.StyleFeedback, "machine state written to %s", filename)

	case cmdLog:
		count := 10
		if arg, ok := tokens.Get(); ok {
			if strings.ToUpper(arg) == "CLEAR" {
				logger.Clear()
				return false, nil
			}
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return false, curated.Errorf(InvalidArgument, cmd.Keyword, arg)
			}
			count = n
		}
		logger.Tail(&lineWriter{dbg: dbg, style: terminal.StyleLog}, count)

	case cmdQuit:
		return true, nil
	}

	return false, nil
}

func (dbg *Debugger) printCPUStep() {
	e := disassembly.Disassemble(dbg.m.Mem, dbg.m.CPU.PC)
	dbg.printLine(terminal.StyleCPUStep, e.String())
}

func (dbg *Debugger) addBreakpoint(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		dbg.printLines(terminal.StyleFeedback, dbg.bps.String())
		return nil
	}

	var b breakpoint

	switch strings.ToUpper(arg) {
	case "INT":
		ib := interruptBreak{}
		if arg, ok := tokens.Get(); ok {
			switch strings.ToUpper(arg) {
			case "CTC":
				ib.src = dbg.m.CTC
			case "PIO":
				ib.src = dbg.m.PIO
			case "SIO":
				ib.src = dbg.m.SIO
			case "ANY":
			default:
				return curated.Errorf(InvalidArgument, cmdBreak, arg)
			}
		}
		b = ib

	case "LUA":
		lb, err := newLuaBreak(tokens.Remainder(), dbg.m.Mem)
		if err != nil {
			return err
		}
		b = lb

	default:
		address, err := parseWord(arg)
		if err != nil {
			return curated.Errorf(InvalidArgument, cmdBreak, arg)
		}
		b = addressBreak{address: address}
	}

	if err := dbg.bps.add(b); err != nil {
		return err
	}
	dbg.printLinef(terminal.StyleFeedback, "breakpoint added: %s", b)

	return nil
}

func (dbg *Debugger) speed(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		measured := "unknown"
		if khz := dbg.m.CPU.CurrentSpeedKHz(); khz >= 0 {
			measured = fmt.Sprintf("%d kHz", khz)
		}
		brake := "off"
		if dbg.m.CPU.BrakeEnabled() {
			brake = "on"
		}
		dbg.printLinef(terminal.StyleFeedback, "max speed %d kHz (measured %s) brake %s",
			dbg.m.CPU.MaxSpeedKHz(), measured, brake)
		return nil
	}

	if strings.ToUpper(arg) == "BRAKE" {
		arg, ok := tokens.Get()
		if !ok {
			return curated.Errorf(MissingArgument, cmdSpeed)
		}
		switch strings.ToUpper(arg) {
		case "ON":
			return dbg.m.Prefs.Brake.Set(true)
		case "OFF":
			return dbg.m.Prefs.Brake.Set(false)
		}
		return curated.Errorf(InvalidArgument, cmdSpeed, arg)
	}

	khz, err := strconv.Atoi(arg)
	if err != nil {
		return curated.Errorf(InvalidArgument, cmdSpeed, arg)
	}
	if err := dbg.m.Prefs.SpeedKHz.Set(khz); err != nil {
		return curated.Errorf(InvalidArgument, cmdSpeed, err)
	}
	return nil
}

func (dbg *Debugger) prefs(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		dbg.printLines(terminal.StyleFeedback, dbg.m.Prefs.String())
		return nil
	}

	switch strings.ToUpper(arg) {
	case "SAVE":
		if err := dbg.m.Prefs.Save(); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "preferences saved")
	case "LOAD":
		if err := dbg.m.Prefs.Load(); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "preferences loaded")
	case "DEFAULT":
		dbg.m.Prefs.SetDefaults()
		dbg.printLine(terminal.StyleFeedback, "preferences set to default values")
	default:
		return curated.Errorf(InvalidArgument, cmdPrefs, arg)
	}

	return nil
}

func (dbg *Debugger) tape(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		if dbg.m.Tape == nil {
			dbg.printLine(terminal.StyleFeedback, "no tape")
		} else {
			dbg.printLine(terminal.StyleFeedback, dbg.m.Tape.String())
		}
		return nil
	}

	if strings.ToUpper(arg) == "INSERT" {
		filename, ok := tokens.Get()
		if !ok {
			return curated.Errorf(MissingArgument, cmdTape)
		}
		input, ok := tokens.Get()
		if !ok {
			return curated.Errorf(MissingArgument, cmdTape)
		}
		sink, err := dbg.m.TapeInput(input)
		if err != nil {
			return err
		}
		if err := dbg.m.InsertTape(filename, sink); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, dbg.m.Tape.String())
		return nil
	}

	if dbg.m.Tape == nil {
		return curated.Errorf(InvalidArgument, cmdTape, "no tape")
	}

	switch strings.ToUpper(arg) {
	case "PLAY":
		dbg.m.Tape.Play()
	case "STOP":
		dbg.m.Tape.Stop()
	case "REWIND":
		dbg.m.Tape.Rewind()
	case "EJECT":
		dbg.m.EjectTape()
		dbg.printLine(terminal.StyleFeedback, "tape ejected")
		return nil
	default:
		return curated.Errorf(InvalidArgument, cmdTape, arg)
	}

	dbg.printLine(terminal.StyleFeedback, dbg.m.Tape.String())
	return nil
}

func (dbg *Debugger) record(tokens *commandline.Tokens) error {
	arg, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdRecord)
	}

	if strings.ToUpper(arg) == "STOP" {
		if err := dbg.m.StopRecording(); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "recording stopped")
		return nil
	}

	ch, ok := tokens.Get()
	if !ok {
		return curated.Errorf(MissingArgument, cmdRecord)
	}
	n, err := strconv.Atoi(ch)
	if err != nil {
		return curated.Errorf(InvalidArgument, cmdRecord, ch)
	}

	if err := dbg.m.RecordAudio(arg, n); err != nil {
		return err
	}
	dbg.printLinef(terminal.StyleFeedback, "recording CTC channel %d to %s", n, arg)

	return nil
}
