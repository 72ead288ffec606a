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

package reconcile_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/reconcile"
	"github.com/jetsetilly/dtmovie/test"
)

func padLayout() inputs.Layout {
	var d inputs.Devices
	d.Pads[0] = inputs.GC
	return inputs.NewLayout(d)
}

func motionLayout() inputs.Layout {
	var d inputs.Devices
	d.Motion[0] = true
	return inputs.NewLayout(d)
}

// stream of n pad records where the analog X of record i is i. records from
// diverge onwards have the A button pressed.
func padStream(n int, diverge int) []byte {
	s := inputs.NewStream(nil)
	for i := range n {
		s.AppendPad(inputs.PadState{AnalogStickX: uint8(i), A: i >= diverge})
	}
	return s.Bytes()
}

func TestAdopted(t *testing.T) {
	cached := padStream(10, 10)
	loaded := padStream(12, 3)

	// writable sessions take the loaded stream regardless of content
	res := reconcile.Check(reconcile.Input{
		Cursor: 9 * inputs.PadRecordSize,
		Cached: cached,
		Loaded: loaded,
		Layout: padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.Adopted)
	test.ExpectSuccess(t, res.Adopt)
	test.ExpectEquality(t, len(res.Payload), len(loaded))
	test.ExpectSuccess(t, res.Err)
	test.ExpectFailure(t, res.Terminate())

	// read-only sessions with nothing cached take the loaded stream too
	res = reconcile.Check(reconcile.Input{
		Cursor:   9 * inputs.PadRecordSize,
		ReadOnly: true,
		Loaded:   loaded,
		Layout:   padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.Adopted)
}

func TestConsistent(t *testing.T) {
	cached := padStream(10, 10)
	loaded := padStream(12, 10)

	res := reconcile.Check(reconcile.Input{
		Cursor:   10 * inputs.PadRecordSize,
		ReadOnly: true,
		Cached:   cached,
		Loaded:   loaded,
		Layout:   padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.Consistent)
	test.ExpectFailure(t, res.Adopt)
	test.ExpectEquality(t, len(res.Payload), len(cached))
	test.ExpectEquality(t, res.Detail(), "")
}

// two recordings diverge at poll 7. reloading the second over a cursor of 9
// polls flags the mismatch at 7
func TestMismatchFrame(t *testing.T) {
	cached := padStream(12, 12)
	loaded := padStream(12, 7)

	res := reconcile.Check(reconcile.Input{
		Cursor:   9 * inputs.PadRecordSize,
		ReadOnly: true,
		Cached:   cached,
		Loaded:   loaded,
		Layout:   padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.Mismatched)
	test.ExpectFailure(t, res.Terminate())
	test.ExpectEquality(t, res.Position.Frame, 7)
	test.ExpectEquality(t, res.Position.Offset, 7*inputs.PadRecordSize)
	test.ExpectFailure(t, res.Before.A)
	test.ExpectSuccess(t, res.After.A)
	test.ExpectEquality(t, res.Before.AnalogStickX, 7)
	test.ExpectSuccess(t, curated.Is(res.Err, reconcile.Mismatch))
	test.ExpectEquality(t, res.Err.Error(), "save state movie mismatches on frame 7")

	// cached bytes remain authoritative
	test.ExpectEquality(t, &res.Payload[0], &cached[0])
	test.ExpectSuccess(t, strings.Contains(res.Detail(), "On frame 7, the current movie presses:\nStart=0, A=0"))
}

// buffers identical for the first B bytes and differing at byte B
func TestMismatchOffset(t *testing.T) {
	for _, b := range []int{0, 1, 8, 13, 31} {
		cached := make([]byte, 32)
		loaded := make([]byte, 32)
		loaded[b] = 0xff

		res := reconcile.Check(reconcile.Input{
			Cursor:   32,
			ReadOnly: true,
			Cached:   cached,
			Loaded:   loaded,
			Layout:   padLayout(),
		})
		test.ExpectEquality(t, res.Outcome, reconcile.Mismatched, b)
		test.ExpectEquality(t, res.Position.Offset, b, b)
		test.ExpectEquality(t, res.Position.Frame, b/inputs.PadRecordSize, b)

		res = reconcile.Check(reconcile.Input{
			Cursor:   32,
			ReadOnly: true,
			Cached:   cached,
			Loaded:   loaded,
			Layout:   motionLayout(),
		})
		test.ExpectEquality(t, res.Outcome, reconcile.Mismatched, b)
		test.ExpectEquality(t, res.Position.Offset, b, b)
		test.ExpectFailure(t, res.Position.PadOnly, b)
		test.ExpectEquality(t, res.AfterByte, 0xff, b)
	}
}

// bytes after the cursor are never compared
func TestMismatchAfterCursor(t *testing.T) {
	cached := make([]byte, 32)
	loaded := make([]byte, 32)
	loaded[16] = 1

	res := reconcile.Check(reconcile.Input{
		Cursor:   16,
		ReadOnly: true,
		Cached:   cached,
		Loaded:   loaded,
		Layout:   padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.Consistent)
}

func TestAfterEnd(t *testing.T) {
	// cursor beyond the loaded stream
	res := reconcile.Check(reconcile.Input{
		Cursor:   24,
		ReadOnly: true,
		Cached:   make([]byte, 32),
		Loaded:   make([]byte, 16),
		Layout:   padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.AfterEnd)
	test.ExpectSuccess(t, res.Terminate())
	test.ExpectSuccess(t, curated.Is(res.Err, reconcile.AfterEndShort))

	// short takes priority over long
	res = reconcile.Check(reconcile.Input{
		Cursor:   24,
		ReadOnly: true,
		Cached:   make([]byte, 8),
		Loaded:   make([]byte, 16),
		Layout:   padLayout(),
	})
	test.ExpectSuccess(t, curated.Is(res.Err, reconcile.AfterEndShort))

	// cursor beyond the cached stream
	res = reconcile.Check(reconcile.Input{
		Cursor:   24,
		ReadOnly: true,
		Cached:   make([]byte, 16),
		Loaded:   make([]byte, 32),
		Layout:   padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.AfterEnd)
	test.ExpectSuccess(t, curated.Is(res.Err, reconcile.AfterEndLong))

	// a writable session is only concerned with the loaded stream
	res = reconcile.Check(reconcile.Input{
		Cursor: 24,
		Cached: make([]byte, 16),
		Loaded: make([]byte, 32),
		Layout: padLayout(),
	})
	test.ExpectEquality(t, res.Outcome, reconcile.Adopted)
}
