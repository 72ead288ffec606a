// This file is part of dtmovie.
//
// dtmovie is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dtmovie is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dtmovie.  If not, see <https://www.gnu.org/licenses/>.

package inputs

// ControllerType is the type of device attached to a controller port.
type ControllerType uint8

// List of valid ControllerType values.
const (
	None ControllerType = iota
	GC
	GBA
)

func (c ControllerType) String() string {
	switch c {
	case None:
		return "none"
	case GC:
		return "gc"
	case GBA:
		return "gba"
	}
	return "unknown"
}

// The number of controller ports of each kind.
const (
	MaxPads   = 4
	MaxMotion = 4
)

// Devices is the participation table of a movie.
type Devices struct {
	Pads   [MaxPads]ControllerType
	Motion [MaxMotion]bool
}

// Any returns true if at least one device participates.
func (d Devices) Any() bool {
	return d.AnyPad() || d.AnyMotion()
}

// AnyPad returns true if at least one controller port is in use.
func (d Devices) AnyPad() bool {
	for _, p := range d.Pads {
		if p != None {
			return true
		}
	}
	return false
}

// AnyMotion returns true if at least one motion controller is in use.
func (d Devices) AnyMotion() bool {
	for _, m := range d.Motion {
		if m {
			return true
		}
	}
	return false
}

// UsingPad returns true if the controller port is in use by either a standard
// controller or a GBA.
func (d Devices) UsingPad(port int) bool {
	if port < 0 || port >= MaxPads {
		return false
	}
	return d.Pads[port] != None
}

// UsingGBA returns true if the controller port is in use by a GBA.
func (d Devices) UsingGBA(port int) bool {
	if port < 0 || port >= MaxPads {
		return false
	}
	return d.Pads[port] == GBA
}

// UsingMotion returns true if the motion controller is in use.
func (d Devices) UsingMotion(idx int) bool {
	if idx < 0 || idx >= MaxMotion {
		return false
	}
	return d.Motion[idx]
}
