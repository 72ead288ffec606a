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

package dtm

import "github.com/jetsetilly/dtmovie/inputs"

// Devices returns the participation table described by the header. A port
// with its GBA bit set is a GBA regardless of the standard controller bit.
func (h Header) Devices() inputs.Devices {
	var d inputs.Devices
	for i := range inputs.MaxPads {
		switch {
		case h.GBAControllers&(1<<i) != 0:
			d.Pads[i] = inputs.GBA
		case h.Controllers&(1<<i) != 0:
			d.Pads[i] = inputs.GC
		default:
			d.Pads[i] = inputs.None
		}
	}
	for i := range inputs.MaxMotion {
		d.Motion[i] = h.Controllers&(1<<(i+4)) != 0
	}
	return d
}

// SetDevices sets the controller fields of the header. Motion controllers are
// only recorded for the Wii platform.
func (h *Header) SetDevices(d inputs.Devices) {
	h.Controllers = 0
	h.GBAControllers = 0
	for i := range inputs.MaxPads {
		if d.UsingGBA(i) {
			h.GBAControllers |= 1 << i
		}
		if d.UsingPad(i) {
			h.Controllers |= 1 << i
		}
	}
	if h.IsWii {
		for i := range inputs.MaxMotion {
			if d.UsingMotion(i) {
				h.Controllers |= 1 << (i + 4)
			}
		}
	}
}
