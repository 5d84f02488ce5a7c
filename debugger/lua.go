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
	"sync"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/hardware/cpu"
	"github.com/jetsetilly/gopher80/logger"
	lua "github.com/yuin/gopher-lua"
)

// Sentinal errors.
const (
	LuaError = "lua: %v"
)

// the memory interface required by the peek() function.
type peeker interface {
	Peek(address uint16) uint8
}

// luaBreak is a breakpoint that matches when the Lua expression is true.
// The breakpoint can be closed by the monitor while the CPU is still using it.
type luaBreak struct {
	crit   sync.Mutex
	closed bool

	expr string
	L    *lua.LState
	fn   *lua.LFunction
}

func newLuaBreak(expr string, mem peeker) (*luaBreak, error) {
	if expr == "" {
		return nil, curated.Errorf(LuaError, "empty expression")
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
		{lua.StringLibName, lua.OpenString},
	} {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			return nil, curated.Errorf(LuaError, err)
		}
	}

	L.SetGlobal("peek", L.NewFunction(func(L *lua.LState) int {
		address := L.CheckInt(1)
		L.Push(lua.LNumber(mem.Peek(uint16(address))))
		return 1
	}))

	fn, err := L.LoadString(fmt.Sprintf("return (%s)", expr))
	if err != nil {
		L.Close()
		return nil, curated.Errorf(LuaError, err)
	}

	return &luaBreak{
		expr: expr,
		L:    L,
		fn:   fn,
	}, nil
}

func (b *luaBreak) setGlobals(mc *cpu.CPU) {
	for _, r := range []struct {
		name  string
		value int
	}{
		{"A", int(mc.A)}, {"F", int(mc.F())},
		{"B", int(mc.B)}, {"C", int(mc.C)},
		{"D", int(mc.D)}, {"E", int(mc.E)},
		{"H", int(mc.H)}, {"L", int(mc.L)},
		{"I", int(mc.I)}, {"R", int(mc.R())},
		{"AF", int(mc.AF())}, {"BC", int(mc.BC())},
		{"DE", int(mc.DE())}, {"HL", int(mc.HL())},
		{"IX", int(mc.IX)}, {"IY", int(mc.IY)},
		{"SP", int(mc.SP)}, {"PC", int(mc.PC)},
		{"IM", int(mc.IM)},
	} {
		b.L.SetGlobal(r.name, lua.LNumber(r.value))
	}

	for _, f := range []struct {
		name  string
		value bool
	}{
		{"sign", mc.Status.Sign},
		{"zero", mc.Status.Zero},
		{"halfcarry", mc.Status.HalfCarry},
		{"parity", mc.Status.ParityOverflow},
		{"subtract", mc.Status.Subtract},
		{"carry", mc.Status.Carry},
		{"iff1", mc.IFF1},
	} {
		b.L.SetGlobal(f.name, lua.LBool(f.value))
	}
}

// Matches implements the cpu.Breakpoint interface.
func (b *luaBreak) Matches(mc *cpu.CPU, src cpu.InterruptSource) bool {
	if src != nil {
		return false
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed {
		return false
	}

	b.setGlobals(mc)

	err := b.L.CallByParam(lua.P{
		Fn:      b.fn,
		NRet:    1,
		Protect: true,
	})
	if err != nil {
		logger.Logf(logger.Allow, "lua", "%s: %v", b.expr, err)
		return false
	}

	ret := b.L.Get(-1)
	b.L.Pop(1)

	return lua.LVAsBool(ret)
}

func (b *luaBreak) String() string {
	return fmt.Sprintf("lua %s", b.expr)
}

func (b *luaBreak) close() {
	b.crit.Lock()
	defer b.crit.Unlock()
	if !b.closed {
		b.closed = true
		b.L.Close()
	}
}
