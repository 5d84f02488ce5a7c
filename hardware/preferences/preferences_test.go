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

package preferences_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher80/hardware/preferences"
	"github.com/jetsetilly/gopher80/prefs"
	"github.com/jetsetilly/gopher80/test"
)

func TestDefaults(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.SpeedKHz.Get().(int), 2500)
	test.ExpectEquality(t, p.Brake.Get().(bool), true)
	test.ExpectEquality(t, p.M1Wait.Get().(int), 0)
	test.ExpectEquality(t, p.PortCTC.Get().(int), 0x80)
	test.ExpectEquality(t, p.PortPIO.Get().(int), 0x84)
	test.ExpectEquality(t, p.PortSIO.Get().(int), 0x88)

	// missing prefs file is created
	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "cpu.speedkhz :: 2500"))
	test.ExpectSuccess(t, strings.Contains(string(data), "ports.pio :: 132"))
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.SpeedKHz.Set(0))
	test.ExpectFailure(t, p.M1Wait.Set(-1))
	test.ExpectFailure(t, p.PortCTC.Set(0x100))
	test.ExpectFailure(t, p.PortPIO.Set("0xfe"))
	test.ExpectSuccess(t, p.PortPIO.Set("0x10"))
	test.ExpectEquality(t, p.PortPIO.Get().(int), 0x10)

	// values are unchanged by failed sets
	test.ExpectEquality(t, p.SpeedKHz.Get().(int), 2500)
	test.ExpectEquality(t, p.PortCTC.Get().(int), 0x80)
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.SpeedKHz.Set(4000))
	test.DemandSuccess(t, p.Brake.Set(false))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.SpeedKHz.Get().(int), 4000)
	test.ExpectEquality(t, q.Brake.Get().(bool), false)

	q.SetDefaults()
	test.ExpectEquality(t, q.SpeedKHz.Get().(int), 2500)
	test.DemandSuccess(t, q.Load())
	test.ExpectEquality(t, q.SpeedKHz.Get().(int), 4000)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("cpu.speedkhz::1000; ports.sio::0x40")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.SpeedKHz.Get().(int), 1000)
	test.ExpectEquality(t, p.PortSIO.Get().(int), 0x40)
}
