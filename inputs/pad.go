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
	"encoding/binary"
	"fmt"
	"strings"
)

// Buttons is the button mask of a live controller poll.
type Buttons uint16

// List of button bits in the live button mask.
const (
	ButtonLeft      Buttons = 0x0001
	ButtonRight     Buttons = 0x0002
	ButtonDown      Buttons = 0x0004
	ButtonUp        Buttons = 0x0008
	TriggerZ        Buttons = 0x0010
	TriggerR        Buttons = 0x0020
	TriggerL        Buttons = 0x0040
	ButtonUseOrigin Buttons = 0x0080
	ButtonA         Buttons = 0x0100
	ButtonB         Buttons = 0x0200
	ButtonX         Buttons = 0x0400
	ButtonY         Buttons = 0x0800
	ButtonStart     Buttons = 0x1000
	ButtonGetOrigin Buttons = 0x2000
)

// PadStatus is the state of a standard controller as seen by the emulated
// hardware when it is polled.
type PadStatus struct {
	Button       Buttons
	StickX       uint8
	StickY       uint8
	SubstickX    uint8
	SubstickY    uint8
	TriggerLeft  uint8
	TriggerRight uint8
	AnalogA      uint8
	AnalogB      uint8
	IsConnected  bool
}

// PadRecordSize is the number of bytes in an encoded PadState.
const PadRecordSize = 8

// bits of the first 16 bits of an encoded PadState
const (
	bitStart = 1 << iota
	bitA
	bitB
	bitX
	bitY
	bitZ
	bitDPadUp
	bitDPadDown
	bitDPadLeft
	bitDPadRight
	bitL
	bitR
	bitDisc
	bitReset
	bitConnected
	bitGetOrigin
)

// PadState is the recorded state of a standard controller.
type PadState struct {
	Start     bool
	A         bool
	B         bool
	X         bool
	Y         bool
	Z         bool
	DPadUp    bool
	DPadDown  bool
	DPadLeft  bool
	DPadRight bool
	L         bool
	R         bool

	// one-shot events that happened since the previous poll
	Disc  bool
	Reset bool

	IsConnected bool
	GetOrigin   bool

	TriggerL     uint8
	TriggerR     uint8
	AnalogStickX uint8
	AnalogStickY uint8
	CStickX      uint8
	CStickY      uint8
}

// NewPadState creates a PadState from a live poll. The disc and reset flags
// are not part of the live poll and must be supplied separately.
func NewPadState(st PadStatus, disc bool, reset bool) PadState {
	return PadState{
		Start:        st.Button&ButtonStart != 0,
		A:            st.Button&ButtonA != 0,
		B:            st.Button&ButtonB != 0,
		X:            st.Button&ButtonX != 0,
		Y:            st.Button&ButtonY != 0,
		Z:            st.Button&TriggerZ != 0,
		DPadUp:       st.Button&ButtonUp != 0,
		DPadDown:     st.Button&ButtonDown != 0,
		DPadLeft:     st.Button&ButtonLeft != 0,
		DPadRight:    st.Button&ButtonRight != 0,
		L:            st.Button&TriggerL != 0,
		R:            st.Button&TriggerR != 0,
		Disc:         disc,
		Reset:        reset,
		IsConnected:  st.IsConnected,
		GetOrigin:    st.Button&ButtonGetOrigin != 0,
		TriggerL:     st.TriggerLeft,
		TriggerR:     st.TriggerRight,
		AnalogStickX: st.StickX,
		AnalogStickY: st.StickY,
		CStickX:      st.SubstickX,
		CStickY:      st.SubstickY,
	}
}

// Status converts the recorded state into the live poll presented to the
// emulated hardware. The use-origin bit is always set and the analog A and B
// values are fully pressed when the button is pressed.
func (s PadState) Status() PadStatus {
	st := PadStatus{
		Button:       ButtonUseOrigin,
		StickX:       s.AnalogStickX,
		StickY:       s.AnalogStickY,
		SubstickX:    s.CStickX,
		SubstickY:    s.CStickY,
		TriggerLeft:  s.TriggerL,
		TriggerRight: s.TriggerR,
		IsConnected:  s.IsConnected,
	}

	set := func(b bool, m Buttons) {
		if b {
			st.Button |= m
		}
	}

	set(s.A, ButtonA)
	set(s.B, ButtonB)
	set(s.X, ButtonX)
	set(s.Y, ButtonY)
	set(s.Z, TriggerZ)
	set(s.Start, ButtonStart)
	set(s.DPadUp, ButtonUp)
	set(s.DPadDown, ButtonDown)
	set(s.DPadLeft, ButtonLeft)
	set(s.DPadRight, ButtonRight)
	set(s.L, TriggerL)
	set(s.R, TriggerR)
	set(s.GetOrigin, ButtonGetOrigin)

	if s.A {
		st.AnalogA = 0xff
	}
	if s.B {
		st.AnalogB = 0xff
	}

	return st
}

func (s PadState) bits() uint16 {
	var w uint16
	set := func(b bool, m uint16) {
		if b {
			w |= m
		}
	}
	set(s.Start, bitStart)
	set(s.A, bitA)
	set(s.B, bitB)
	set(s.X, bitX)
	set(s.Y, bitY)
	set(s.Z, bitZ)
	set(s.DPadUp, bitDPadUp)
	set(s.DPadDown, bitDPadDown)
	set(s.DPadLeft, bitDPadLeft)
	set(s.DPadRight, bitDPadRight)
	set(s.L, bitL)
	set(s.R, bitR)
	set(s.Disc, bitDisc)
	set(s.Reset, bitReset)
	set(s.IsConnected, bitConnected)
	set(s.GetOrigin, bitGetOrigin)
	return w
}

// Encode the PadState into its fixed width form.
func (s PadState) Encode() [PadRecordSize]byte {
	var b [PadRecordSize]byte
	binary.LittleEndian.PutUint16(b[0:], s.bits())
	b[2] = s.TriggerL
	b[3] = s.TriggerR
	b[4] = s.AnalogStickX
	b[5] = s.AnalogStickY
	b[6] = s.CStickX
	b[7] = s.CStickY
	return b
}

// DecodePad decodes the first PadRecordSize bytes of the slice. The slice must
// be at least PadRecordSize long.
func DecodePad(b []byte) PadState {
	w := binary.LittleEndian.Uint16(b)
	return PadState{
		Start:        w&bitStart != 0,
		A:            w&bitA != 0,
		B:            w&bitB != 0,
		X:            w&bitX != 0,
		Y:            w&bitY != 0,
		Z:            w&bitZ != 0,
		DPadUp:       w&bitDPadUp != 0,
		DPadDown:     w&bitDPadDown != 0,
		DPadLeft:     w&bitDPadLeft != 0,
		DPadRight:    w&bitDPadRight != 0,
		L:            w&bitL != 0,
		R:            w&bitR != 0,
		Disc:         w&bitDisc != 0,
		Reset:        w&bitReset != 0,
		IsConnected:  w&bitConnected != 0,
		GetOrigin:    w&bitGetOrigin != 0,
		TriggerL:     b[2],
		TriggerR:     b[3],
		AnalogStickX: b[4],
		AnalogStickY: b[5],
		CStickX:      b[6],
		CStickY:      b[7],
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String returns every field of the PadState in a form suitable for
// diagnostic messages.
func (s PadState) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Start=%d, A=%d, B=%d, X=%d, Y=%d, Z=%d, ",
		btoi(s.Start), btoi(s.A), btoi(s.B), btoi(s.X), btoi(s.Y), btoi(s.Z)))
	b.WriteString(fmt.Sprintf("DUp=%d, DDown=%d, DLeft=%d, DRight=%d, L=%d, R=%d, ",
		btoi(s.DPadUp), btoi(s.DPadDown), btoi(s.DPadLeft), btoi(s.DPadRight), btoi(s.L), btoi(s.R)))
	b.WriteString(fmt.Sprintf("LT=%d, RT=%d, AnalogX=%d, AnalogY=%d, CX=%d, CY=%d, Connected=%d",
		s.TriggerL, s.TriggerR, s.AnalogStickX, s.AnalogStickY, s.CStickX, s.CStickY, btoi(s.IsConnected)))
	return b.String()
}
