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

// Package preferences contains the preference values for the emulated
// machine. The values are stored on disk with the prefs package.
package preferences

import (
	"fmt"

	"github.com/jetsetilly/gopher80/curated"
	"github.com/jetsetilly/gopher80/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// target speed of the CPU in kHz
	SpeedKHz prefs.Int

	// whether the CPU is slowed down to the target speed
	Brake prefs.Bool

	// number of wait states added to every opcode fetch
	M1Wait prefs.Int

	// base port addresses of the chips
	PortCTC prefs.Int
	PortPIO prefs.Int
	PortSIO prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The pth argument is the prefs file to use, normally
// prefs.DefaultPrefsFile().
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.SpeedKHz.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("speed must be positive")
		}
		return nil
	})
	p.M1Wait.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("wait states cannot be negative")
		}
		return nil
	})
	for _, pp := range []*prefs.Int{&p.PortCTC, &p.PortPIO, &p.PortSIO} {
		pp.SetHookPre(func(v prefs.Value) error {
			if v.(int) < 0 || v.(int) > 0xfc {
				return fmt.Errorf("port base out of range (%#02x)", v.(int))
			}
			return nil
		})
	}

	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("cpu.speedkhz", &p.SpeedKHz)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("cpu.brake", &p.Brake)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("memory.m1wait", &p.M1Wait)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("ports.ctc", &p.PortCTC)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("ports.pio", &p.PortPIO)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.dsk.Add("ports.sio", &p.PortSIO)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.SpeedKHz.Set(2500)
	p.Brake.Set(true)
	p.M1Wait.Set(0)
	p.PortCTC.Set(0x80)
	p.PortPIO.Set(0x84)
	p.PortSIO.Set(0x88)
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
