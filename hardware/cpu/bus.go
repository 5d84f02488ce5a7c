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

package cpu

// read byte from memory and inform the address listener.
func (mc *CPU) read8(address uint16) uint8 {
	if l := mc.addressListener.Load(); l != nil {
		l.AddressChanged(address)
	}
	return mc.mem.Read(address, false)
}

// write byte to memory and inform the address listener.
func (mc *CPU) write8(address uint16, data uint8) {
	if l := mc.addressListener.Load(); l != nil {
		l.AddressChanged(address)
	}
	mc.mem.Write(address, data)
}

// read little-endian word from memory. the address listener is informed of
// the address of the low byte only.
func (mc *CPU) read16(address uint16) uint16 {
	if l := mc.addressListener.Load(); l != nil {
		l.AddressChanged(address)
	}
	lo := mc.mem.Read(address, false)
	hi := mc.mem.Read(address+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// write little-endian word to memory. the address listener is informed of the
// address of the low byte only.
func (mc *CPU) write16(address uint16, data uint16) {
	if l := mc.addressListener.Load(); l != nil {
		l.AddressChanged(address)
	}
	mc.mem.Write(address, uint8(data))
	mc.mem.Write(address+1, uint8(data>>8))
}

// fetch an opcode byte at PC. this is an M1 cycle and increments the refresh
// register.
func (mc *CPU) fetchOpcode() uint8 {
	if l := mc.addressListener.Load(); l != nil {
		l.AddressChanged(mc.PC)
	}
	v := mc.mem.Read(mc.PC, true)
	mc.PC++
	mc.incR()
	return v
}

// fetch an operand byte at PC.
func (mc *CPU) fetch8() uint8 {
	v := mc.read8(mc.PC)
	mc.PC++
	return v
}

// fetch an operand word at PC.
func (mc *CPU) fetch16() uint16 {
	v := mc.read16(mc.PC)
	mc.PC += 2
	return v
}

// fetch a signed displacement byte at PC.
func (mc *CPU) fetchDisplacement() uint16 {
	return uint16(int8(mc.fetch8()))
}

// Push a value onto the stack. The call level used by the step over and step
// up actions is incremented.
func (mc *CPU) Push(v uint16) {
	mc.SP--
	mc.write8(mc.SP, uint8(v>>8))
	mc.SP--
	mc.write8(mc.SP, uint8(v))
	mc.callLevel.Add(1)
}

// Pop a value from the stack. The call level used by the step over and step
// up actions is decremented.
func (mc *CPU) Pop() uint16 {
	lo := mc.read8(mc.SP)
	mc.SP++
	hi := mc.read8(mc.SP)
	mc.SP++
	mc.callLevel.Add(-1)
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) portIn(port uint16) uint8 {
	return mc.io.ReadPort(port)
}

func (mc *CPU) portOut(port uint16, v uint8) {
	mc.io.WritePort(port, v)
}
