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

import "fmt"

// Position is the location of a byte in the stream translated by a Layout.
type Position struct {
	// offset of the byte in the stream
	Offset int

	// index of the pad record containing the byte. only valid if PadOnly is
	// true
	Frame int

	PadOnly bool
}

func (p Position) String() string {
	if p.PadOnly {
		return fmt.Sprintf("frame %d", p.Frame)
	}
	return fmt.Sprintf("byte %d (%#x)", p.Offset, p.Offset)
}

// Layout is the decode table of a movie. It is derived once from the devices
// participating in the movie.
type Layout struct {
	devices Devices
	padOnly bool
}

// NewLayout creates the Layout for the participating devices.
func NewLayout(d Devices) Layout {
	return Layout{
		devices: d,
		padOnly: !d.AnyMotion(),
	}
}

// Devices returns the participating devices the layout was derived from.
func (l Layout) Devices() Devices {
	return l.devices
}

// PadOnly returns true if every record in the stream is a pad record. Only
// in that case can an offset be translated into a record index.
func (l Layout) PadOnly() bool {
	return l.padOnly
}

// Locate translates a stream offset into a Position.
func (l Layout) Locate(offset int) Position {
	p := Position{Offset: offset, PadOnly: l.padOnly}
	if l.padOnly {
		p.Frame = offset / PadRecordSize
	}
	return p
}

// PadAt decodes the pad record that contains the byte at offset. It is only
// meaningful for pad-only layouts. The boolean result is false if the record
// does not fit in the data.
func (l Layout) PadAt(data []byte, offset int) (PadState, bool) {
	if !l.padOnly {
		return PadState{}, false
	}
	start := (offset / PadRecordSize) * PadRecordSize
	if start < 0 || start+PadRecordSize > len(data) {
		return PadState{}, false
	}
	return DecodePad(data[start:]), true
}

// Records returns the number of whole records in a pad-only stream of the
// given length. For other layouts the result is -1.
func (l Layout) Records(length int) int {
	if !l.padOnly {
		return -1
	}
	return length / PadRecordSize
}
