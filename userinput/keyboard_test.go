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

package userinput_test

import (
	"testing"

	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/test"
	"github.com/jetsetilly/dtmovie/userinput"
)

func TestIdle(t *testing.T) {
	kb := userinput.NewKeyboard(0)
	st := kb.Poll()
	test.ExpectEquality(t, st.Button, inputs.Buttons(0))
	test.ExpectEquality(t, st.StickX, uint8(0x80))
	test.ExpectEquality(t, st.StickY, uint8(0x80))
	test.ExpectSuccess(t, st.IsConnected)
	test.ExpectFailure(t, kb.Quit)
}

func TestHold(t *testing.T) {
	kb := userinput.NewKeyboard(3)
	kb.Feed([]byte("z"))

	for i := 0; i < 3; i++ {
		test.ExpectEquality(t, kb.Poll().Button, inputs.ButtonA, i)
	}
	test.ExpectEquality(t, kb.Poll().Button, inputs.Buttons(0))

	// typing the key again restarts the hold
	kb.Feed([]byte("z"))
	kb.Poll()
	kb.Feed([]byte("zx"))
	for i := 0; i < 3; i++ {
		test.ExpectEquality(t, kb.Poll().Button, inputs.ButtonA|inputs.ButtonB, i)
	}
	test.ExpectEquality(t, kb.Poll().Button, inputs.Buttons(0))
}

func TestCursorKeys(t *testing.T) {
	kb := userinput.NewKeyboard(1)
	kb.Feed([]byte{userinput.KeyEsc, userinput.EscCursor, userinput.CursorUp})
	test.ExpectEquality(t, kb.Poll().Button, inputs.ButtonUp)

	// an escape sequence split over two reads
	kb.Feed([]byte{userinput.KeyEsc})
	kb.Feed([]byte{userinput.EscCursor, userinput.CursorBackward})
	test.ExpectEquality(t, kb.Poll().Button, inputs.ButtonLeft)

	// an unknown escape sequence does not press anything
	kb.Feed([]byte{userinput.KeyEsc, 'O', 'P'})
	test.ExpectEquality(t, kb.Poll().Button, inputs.Buttons(0))
}

func TestStickAndTriggers(t *testing.T) {
	kb := userinput.NewKeyboard(2)
	kb.Feed([]byte("ja"))

	st := kb.Poll()
	test.ExpectEquality(t, st.StickX, uint8(0x00))
	test.ExpectEquality(t, st.StickY, uint8(0x80))
	test.ExpectEquality(t, st.Button, inputs.TriggerL)
	test.ExpectEquality(t, st.TriggerLeft, uint8(0xff))
	test.ExpectEquality(t, st.TriggerRight, uint8(0))

	kb.Poll()
	st = kb.Poll()
	test.ExpectEquality(t, st.StickX, uint8(0x80))
	test.ExpectEquality(t, st.TriggerLeft, uint8(0))

	// the recorded state matches the keys
	kb.Feed([]byte("i\r"))
	p := inputs.NewPadState(kb.Poll(), false, false)
	test.ExpectEquality(t, p.AnalogStickY, uint8(0xff))
	test.ExpectSuccess(t, p.Start)
}

func TestQuitAndReset(t *testing.T) {
	kb := userinput.NewKeyboard(0)
	kb.Feed([]byte("R"))
	test.ExpectSuccess(t, kb.TakeReset())
	test.ExpectFailure(t, kb.TakeReset())

	kb.Feed([]byte{userinput.KeyInterrupt})
	test.ExpectSuccess(t, kb.Quit)

	kb = userinput.NewKeyboard(0)
	kb.Feed([]byte("q"))
	test.ExpectSuccess(t, kb.Quit)
}
