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

package reconcile

import (
	"fmt"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/inputs"
)

// Input is everything needed to reconcile a loaded movie with a session.
type Input struct {
	// cursor of the session as restored from the save state
	Cursor int

	ReadOnly bool

	// the stream held by the session and the stream read from the file
	Cached []byte
	Loaded []byte

	Layout inputs.Layout

	// input counts used in diagnostic messages
	CurrentInput uint64
	TotalInput   uint64
}

// Outcome is the result of reconciliation.
type Outcome int

// List of valid Outcome values.
const (
	// the loaded stream replaces the cached stream
	Adopted Outcome = iota

	// the cached stream and loaded stream agree up to the cursor
	Consistent

	Mismatched
	AfterEnd
)

func (o Outcome) String() string {
	switch o {
	case Adopted:
		return "adopted"
	case Consistent:
		return "consistent"
	case Mismatched:
		return "mismatched"
	case AfterEnd:
		return "after end"
	}
	return "unknown"
}

// Result of Check().
type Result struct {
	Outcome Outcome

	// the stream the session should continue with
	Payload []byte

	// the loaded stream was taken as the session's stream. the session should
	// also take the totals from the loaded header
	Adopt bool

	// location of the first mismatching byte. only valid for the Mismatched
	// outcome
	Position inputs.Position

	// the decoded pad records at Position. Before is from the cached stream
	// and After is from the loaded stream. only valid for pad-only layouts
	Before inputs.PadState
	After  inputs.PadState

	// the mismatching bytes. Before is from the cached stream
	BeforeByte byte
	AfterByte  byte

	// a curated error for the AfterEnd and Mismatched outcomes
	Err error
}

// Terminate returns true if the movie should end.
func (r Result) Terminate() bool {
	return r.Outcome == AfterEnd
}

// Detail returns a description of a mismatch suitable for a warning message.
func (r Result) Detail() string {
	if r.Outcome != Mismatched {
		return ""
	}
	if r.Position.PadOnly {
		return fmt.Sprintf("On frame %d, the current movie presses:\n%s\n\nOn frame %d, the save state's movie presses:\n%s",
			r.Position.Frame, r.Before, r.Position.Frame, r.After)
	}
	return fmt.Sprintf("Byte %d (%#x) of the file is %#02x in the current movie and %#02x in the save state's movie",
		r.Position.Offset+dtm.HeaderSize, r.Position.Offset+dtm.HeaderSize, r.BeforeByte, r.AfterByte)
}

// Check reconciles the loaded stream with the cached stream.
func Check(in Input) Result {
	var res Result

	// a writable session, or one with nothing cached, takes the loaded stream
	// and the totals of the loaded header
	res.Adopt = !in.ReadOnly || len(in.Cached) == 0
	if res.Adopt {
		res.Payload = in.Loaded
	} else {
		res.Payload = in.Cached
	}

	if in.Cursor > len(in.Loaded) {
		res.Outcome = AfterEnd
		res.Err = curated.Errorf(AfterEndShort, in.Cursor+dtm.HeaderSize, len(in.Loaded)+dtm.HeaderSize)
		return res
	}

	if res.Adopt {
		res.Outcome = Adopted
		return res
	}

	if in.Cursor > len(in.Cached) {
		res.Outcome = AfterEnd
		res.Err = curated.Errorf(AfterEndLong, in.Cursor+dtm.HeaderSize, len(in.Cached)+dtm.HeaderSize,
			in.CurrentInput, in.TotalInput)
		return res
	}

	res.Outcome = Consistent

	for i := 0; i < in.Cursor; i++ {
		if in.Loaded[i] == in.Cached[i] {
			continue
		}

		res.Outcome = Mismatched
		res.Position = in.Layout.Locate(i)
		res.BeforeByte = in.Cached[i]
		res.AfterByte = in.Loaded[i]
		if res.Position.PadOnly {
			res.Before, _ = in.Layout.PadAt(in.Cached, i)
			res.After, _ = in.Layout.PadAt(in.Loaded, i)
		}
		res.Err = curated.Errorf(Mismatch, res.Position)
		break
	}

	return res
}
