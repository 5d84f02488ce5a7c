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

// Package tape plays cassette images into the emulated machine. A cassette
// image is a WAV or MP3 recording of the tape signal. Samples are consumed at
// a rate set by the CPU clock so that the signal seen by the emulated
// machine is correct whatever the speed of the host.
//
// The signal is converted to a logic level with a simple threshold and
// hysteresis. Changes of level are given to a Sink. The CTCInput and PIOInput
// sinks connect the tape to the external input of a CTC channel or to a bit
// of a PIO port.
//
// The Tape type implements the cpu.TickListener and cpu.MaxSpeedListener
// interfaces.
package tape
