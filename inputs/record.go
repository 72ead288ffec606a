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

import (
	"fmt"

	"github.com/jetsetilly/dtmovie/curated"
)

// Kind distinguishes the two kinds of input record.
type Kind int

// List of valid Kind values.
const (
	KindPad Kind = iota
	KindMotion
)

func (k Kind) String() string {
	switch k {
	case KindPad:
		return "pad"
	case KindMotion:
		return "motion"
	}
	return "unknown"
}

// MaxMotionSize is the largest motion report that can be recorded. The length
// prefix of a motion record is a single byte.
const MaxMotionSize = 255

// Record is a single input record of either kind. For KindPad records the Pad
// field is valid and for KindMotion records the Motion field is valid.
type Record struct {
	Kind   Kind
	Pad    PadState
	Motion []byte
}

// PadRecord returns a Record of KindPad.
func PadRecord(s PadState) Record {
	return Record{Kind: KindPad, Pad: s}
}

// MotionRecord returns a Record of KindMotion. The data is not copied.
func MotionRecord(data []byte) Record {
	return Record{Kind: KindMotion, Motion: data}
}

// Width returns the number of bytes the record occupies in the stream.
func (r Record) Width() int {
	if r.Kind == KindMotion {
		return 1 + len(r.Motion)
	}
	return PadRecordSize
}

// Append the encoded record to the slice.
func (r Record) Append(b []byte) ([]byte, error) {
	switch r.Kind {
	case KindPad:
		e := r.Pad.Encode()
		return append(b, e[:]...), nil
	case KindMotion:
		if len(r.Motion) > MaxMotionSize {
			return b, curated.Errorf(MotionTooLarge, len(r.Motion))
		}
		b = append(b, uint8(len(r.Motion)))
		return append(b, r.Motion...), nil
	}
	return b, fmt.Errorf("inputs: unknown record kind (%d)", r.Kind)
}

func (r Record) String() string {
	if r.Kind == KindMotion {
		return fmt.Sprintf("motion[%d] % x", len(r.Motion), r.Motion)
	}
	return r.Pad.String()
}
