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

package headless

import (
	"sync"
	"time"

	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/version"
)

// Environment implements the emulation.Environment interface.
type Environment struct {
	crit sync.Mutex

	fingerprint dtm.Fingerprint
	applied     int

	startTime uint64
	netPlay   bool
	bongos    uint8
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. The recording start time is the current time.
func NewEnvironment() *Environment {
	return &Environment{
		fingerprint: dtm.Fingerprint{
			VideoBackend:  "Null",
			AudioEmulator: "HLE",
			CPUCore:       1,
			DSPHLE:        true,
			Revision:      dtm.RevisionBytes(version.Revision()),
		},
		startTime: uint64(time.Now().Unix()),
	}
}

// Fingerprint implements the emulation.Environment interface.
func (e *Environment) Fingerprint() dtm.Fingerprint {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.fingerprint
}

// ApplyFingerprint implements the emulation.Environment interface.
func (e *Environment) ApplyFingerprint(f dtm.Fingerprint) {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.fingerprint = f
	e.applied++
}

// Applied returns the number of calls to ApplyFingerprint().
func (e *Environment) Applied() int {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.applied
}

// RecordingStartTime implements the emulation.Environment interface.
func (e *Environment) RecordingStartTime() uint64 {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.startTime
}

// SetRecordingStartTime fixes the value returned by RecordingStartTime().
func (e *Environment) SetRecordingStartTime(t uint64) {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.startTime = t
}

// NetPlay implements the emulation.Environment interface.
func (e *Environment) NetPlay() bool {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.netPlay
}

// SetNetPlay changes the value returned by NetPlay().
func (e *Environment) SetNetPlay(v bool) {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.netPlay = v
}

// Bongos implements the emulation.Environment interface.
func (e *Environment) Bongos() uint8 {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.bongos
}

// SetBongos changes the value returned by Bongos().
func (e *Environment) SetBongos(v uint8) {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.bongos = v
}
