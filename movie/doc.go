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

// Package movie records the input of an emulation to a DTM movie and plays a
// DTM movie back into an emulation.
//
// A Session is created with NewSession() and is the only owner of the input
// stream of a movie. The session is Idle, Recording or Playing.
//
// The operations of a Session fall into two groups. Lifecycle operations
// (BeginRecordingInput(), PlayInput(), LoadInput(), EndPlayInput(),
// SaveRecording(), Init() and Shutdown()) are called by the host. They
// acquire the exclusive execution barrier of the emulation.Core themselves so
// that no device is polled while the state of the session changes.
//
// Poll-time operations (RecordInput(), RecordWiimote(), PlayController(),
// PlayWiimote(), InputUpdate(), SetPolledDevice() and FrameUpdate()) are
// called by the emulator while it is already inside the barrier. Poll-time
// operations never return an error. A problem with the stream ends the movie
// and a message is sent to the notification sink.
//
// The PollPad() and PollMotion() functions are conveniences that perform the
// full sequence of poll-time operations for a single device poll, in the
// order that the emulated serial interface performs them.
//
// Save states made while a movie is active carry a Checkpoint of the session
// (see the emulation/headless package for how a Session is registered with a
// save state facility). Loading such a save state should be followed by a
// call to LoadInput() with the movie that was saved alongside the state. The
// SaveState() and LoadState() functions do both.
package movie
