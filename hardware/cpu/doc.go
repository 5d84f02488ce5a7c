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

// Package cpu emulates the Zilog Z80 microprocessor. All documented
// instructions are emulated along with the undocumented instructions and the
// undocumented bits 3 and 5 of the flag register.
//
// The CPU requires an implementation of the Memory interface and of the IO
// interface, which is the port bus. Interrupts are requested by implementations
// of the InterruptSource interface, which are consulted in priority order
// before every instruction. The first source in the list has the highest
// priority (the daisy chain of the real hardware).
//
//	mc := cpu.NewCPU(mem, ports)
//	mc.SetInterruptSources(ctc, pio)
//	mc.AddTickListener(ctc)
//
//	go func() {
//		err := mc.Run()
//	}()
//
// Run() continues until FireExit() is called. The speed of the CPU is
// limited to the value given to SetMaxSpeedKHz(). See the limiter package.
//
// Other goroutines interact with the running CPU through the Fire*()
// functions and through the listener interfaces. A PC listener is informed
// when the PC reaches one of the registered addresses. Tick listeners are
// informed of every batch of T-states consumed. Breakpoints are consulted
// before every instruction if debugging is enabled.
//
// For tests and for single stepping without a goroutine, the Step() function
// performs one iteration of the CPU loop.
package cpu
