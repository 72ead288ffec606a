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

// Package emulation defines the parts of the emulator that the movie engine
// depends on. The engine never drives the emulator itself. It is called by
// the emulator when a device is polled and at the end of every frame, and it
// calls back into the emulator through the Core interface.
//
// The Core interface includes an exclusive execution barrier, RunExclusive().
// While the function given to RunExclusive() is running, no device is being
// polled and no frame is being emulated. Lifecycle operations of the movie
// engine acquire the barrier themselves. Poll-time operations are called by
// the emulator while it is already inside the barrier. For this reason
// RunExclusive() must be re-entrant for the goroutine that holds it.
//
// The headless package contains an implementation of all the interfaces in
// this package. It is used by the command line tools and by tests.
package emulation

import (
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/inputs"
)

// State indicates the emulation's state.
//
// Values are ordered so that order comparisons are meaningful. For example,
// Running is "greater than" Paused.
type State int

// List of possible emulation states.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "start"
	case Initialising:
		return "initialising"
	case Paused:
		return "paused"
	case Running:
		return "running"
	case Ending:
		return "ending"
	}
	return "unknown"
}

// Game describes the game image that is loaded.
type Game struct {
	// six character game ID
	ID string

	// path to the game image. used for checksum verification
	Path string

	IsWii bool
}

// Core is the emulator as seen by the movie engine.
type Core interface {
	// The current state of the emulation.
	State() State

	// Run the function while no device is being polled. Must be re-entrant
	// for the goroutine that is already inside the barrier.
	RunExclusive(f func())

	// Ticks returns the emulated CPU tick counter.
	Ticks() uint64

	// Break pauses the emulation. Returns true if the emulation was running.
	Break() bool

	// Resume continuous emulation after a Break().
	Resume()

	// QueueHostJob schedules a function to run on the host goroutine. It
	// must not run the function before returning.
	QueueHostJob(f func())

	// The game that is currently loaded.
	Game() Game

	// ConfigureDevices reconfigures the controller ports to match the
	// devices of a movie. Bongos is a bitmask of the ports that should be
	// bongo controllers.
	ConfigureDevices(d inputs.Devices, bongos uint8)

	// ResetMotionControllers puts all motion controllers into their initial
	// state.
	ResetMotionControllers()

	// ChangeDisc changes to the named disc. Returns false if the disc could
	// not be changed automatically.
	ChangeDisc(name string) bool

	// TapReset presses and releases the reset button.
	TapReset()
}

// SaveStates is the save state facility of the emulator. The content of a
// save state is opaque to the movie engine.
type SaveStates interface {
	SaveAs(path string) error
	Load(path string) error
}

// Environment is the configuration of the emulator that affects
// determinism.
type Environment interface {
	// Fingerprint returns the current configuration.
	Fingerprint() dtm.Fingerprint

	// ApplyFingerprint configures the emulator for the playback of a movie.
	ApplyFingerprint(f dtm.Fingerprint)

	// RecordingStartTime returns the time to store in a new movie, in
	// seconds since 1970. During net-play this is the emulated time of the
	// net-play session.
	RecordingStartTime() uint64

	// NetPlay returns true if a net-play session is active.
	NetPlay() bool

	// Bongos returns the bitmask of ports configured as bongo controllers.
	Bongos() uint8
}
