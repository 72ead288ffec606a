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

package userinput

import (
	"github.com/jetsetilly/dtmovie/inputs"
)

// DefaultHold is the number of frames a typed key is held for.
const DefaultHold = 6

// stick positions
const (
	stickCentre = 0x80
	stickMin    = 0x00
	stickMax    = 0xff
)

// progress through an escape sequence
type escape int

const (
	escNone escape = iota
	escStarted
	escCursor
)

// Keyboard keeps track of the keys typed at a terminal.
type Keyboard struct {
	hold int
	esc  escape

	// number of frames remaining for each held button
	buttons map[inputs.Buttons]int

	// number of frames remaining for a deflection of the main stick
	stickX     uint8
	stickY     uint8
	stickFrame int

	reset bool

	// Quit is true once the stop key has been typed
	Quit bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type. A hold value of zero or less means DefaultHold.
func NewKeyboard(hold int) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{
		hold:    hold,
		buttons: make(map[inputs.Buttons]int),
		stickX:  stickCentre,
		stickY:  stickCentre,
	}
}

var buttonKeys = map[byte]inputs.Buttons{
	'z':               inputs.ButtonA,
	'x':               inputs.ButtonB,
	'c':               inputs.ButtonX,
	'v':               inputs.ButtonY,
	'a':               inputs.TriggerL,
	's':               inputs.TriggerR,
	'd':               inputs.TriggerZ,
	KeyCarriageReturn: inputs.ButtonStart,
	KeyLineFeed:       inputs.ButtonStart,
}

var cursorKeys = map[byte]inputs.Buttons{
	CursorUp:       inputs.ButtonUp,
	CursorDown:     inputs.ButtonDown,
	CursorForward:  inputs.ButtonRight,
	CursorBackward: inputs.ButtonLeft,
}

// Feed the keyboard with bytes read from the terminal. Escape sequences can
// be split over more than one call.
func (kb *Keyboard) Feed(data []byte) {
	for _, b := range data {
		kb.key(b)
	}
}

func (kb *Keyboard) key(b byte) {
	switch kb.esc {
	case escStarted:
		if b == EscCursor {
			kb.esc = escCursor
		} else {
			kb.esc = escNone
		}
		return
	case escCursor:
		kb.esc = escNone
		if m, ok := cursorKeys[b]; ok {
			kb.buttons[m] = kb.hold
		}
		return
	}

	switch b {
	case KeyEsc:
		kb.esc = escStarted
	case KeyInterrupt, 'q':
		kb.Quit = true
	case 'R':
		kb.reset = true
	case 'i':
		kb.deflect(stickCentre, stickMax)
	case 'k':
		kb.deflect(stickCentre, stickMin)
	case 'j':
		kb.deflect(stickMin, stickCentre)
	case 'l':
		kb.deflect(stickMax, stickCentre)
	default:
		if m, ok := buttonKeys[b]; ok {
			kb.buttons[m] = kb.hold
		}
	}
}

func (kb *Keyboard) deflect(x, y uint8) {
	kb.stickX = x
	kb.stickY = y
	kb.stickFrame = kb.hold
}

// Poll returns the status of the controller for the current frame and
// advances the keyboard by one frame.
func (kb *Keyboard) Poll() inputs.PadStatus {
	st := inputs.PadStatus{
		StickX:      stickCentre,
		StickY:      stickCentre,
		SubstickX:   stickCentre,
		SubstickY:   stickCentre,
		IsConnected: true,
	}

	for m, n := range kb.buttons {
		st.Button |= m
		if n <= 1 {
			delete(kb.buttons, m)
		} else {
			kb.buttons[m] = n - 1
		}
	}

	if kb.stickFrame > 0 {
		st.StickX = kb.stickX
		st.StickY = kb.stickY
		kb.stickFrame--
	}

	if st.Button&inputs.TriggerL != 0 {
		st.TriggerLeft = 0xff
	}
	if st.Button&inputs.TriggerR != 0 {
		st.TriggerRight = 0xff
	}

	return st
}

// TakeReset returns true once for every time the reset key has been typed.
func (kb *Keyboard) TakeReset() bool {
	r := kb.reset
	kb.reset = false
	return r
}
