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

package movie_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/emulation/headless"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/movie"
	"github.com/jetsetilly/dtmovie/notifications"
	"github.com/jetsetilly/dtmovie/prefs"
	"github.com/jetsetilly/dtmovie/test"
)

const gameID = "GALE01"

var gamecube = emulation.Game{ID: gameID}

// rig is a session attached to a headless emulation
type rig struct {
	dir     string
	core    *headless.Core
	env     *headless.Environment
	states  *headless.States
	sink    *notifications.Recorder
	prefs   *movie.Preferences
	session *movie.Session
}

func newRig(t *testing.T, game emulation.Game) *rig {
	t.Helper()

	r := &rig{dir: t.TempDir()}
	r.core = headless.NewCore(game)
	r.env = headless.NewEnvironment()
	r.env.SetRecordingStartTime(1700000000)

	var err error
	r.states, err = headless.NewStates(r.core)
	test.DemandSuccess(t, err)
	t.Cleanup(r.states.Close)

	r.prefs, err = movie.NewPreferences("", nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, r.prefs.StateSaveDir.Set(filepath.Join(r.dir, "states")))
	test.DemandSuccess(t, r.prefs.VerifyChecksum.Set(false))

	r.sink = &notifications.Recorder{}

	r.session, err = movie.NewSession(movie.Config{
		Core:        r.core,
		Environment: r.env,
		States:      r.states,
		Sink:        r.sink,
		Prefs:       r.prefs,
	})
	test.DemandSuccess(t, err)
	t.Cleanup(r.session.Close)

	r.states.Register("movie", r.session)

	return r
}

func (r *rig) path(name string) string {
	return filepath.Join(r.dir, name)
}

// frame emulates a frame in which the controller in port 0 is polled. the
// status after the poll is returned
func (r *rig) frame(st inputs.PadStatus) inputs.PadStatus {
	r.core.Frame(func() {
		r.session.PollPad(0, &st)
		r.session.FrameUpdate()
	})
	return st
}

// lagFrame emulates a frame in which no controller is polled
func (r *rig) lagFrame() {
	r.core.Frame(func() {
		r.session.FrameUpdate()
	})
}

func padOnly() inputs.Devices {
	var d inputs.Devices
	d.Pads[0] = inputs.GC
	return d
}

func stick(x uint8) inputs.PadStatus {
	return inputs.PadStatus{StickX: x, StickY: 0x80, IsConnected: true}
}

func encode(pads []inputs.PadState) []byte {
	var b []byte
	for _, p := range pads {
		e := p.Encode()
		b = append(b, e[:]...)
	}
	return b
}

// writeMovie creates a pad-only movie. the tick count is large enough that
// the movie never ends because of it
func writeMovie(t *testing.T, path string, id string, pads []inputs.PadState) {
	t.Helper()
	var h dtm.Header
	h.SetGameID(id)
	h.SetDevices(padOnly())
	h.FrameCount = uint64(len(pads))
	h.InputCount = uint64(len(pads))
	h.TickCount = 1 << 40
	test.DemandSuccess(t, dtm.WriteFile(path, h, encode(pads)))
}

func readHeader(t *testing.T, path string) dtm.Header {
	t.Helper()
	h, _, err := dtm.ReadFile(path)
	test.DemandSuccess(t, err)
	return h
}

func TestNewSession(t *testing.T) {
	_, err := movie.NewSession(movie.Config{})
	test.ExpectFailure(t, err)

	core := headless.NewCore(gamecube)
	_, err = movie.NewSession(movie.Config{Core: core})
	test.ExpectFailure(t, err)

	s, err := movie.NewSession(movie.Config{Core: core, Environment: headless.NewEnvironment()})
	test.DemandSuccess(t, err)
	defer s.Close()

	test.ExpectEquality(t, s.Mode(), movie.Idle)
	test.ExpectSuccess(t, s.IsReadOnly())
	test.ExpectSuccess(t, s.Preferences().VerifyChecksum.Bool())
}

func TestBeginEnd(t *testing.T) {
	var gba inputs.Devices
	gba.Pads[1] = inputs.GBA

	var motion inputs.Devices
	motion.Motion[0] = true

	all := inputs.Devices{
		Pads:   [inputs.MaxPads]inputs.ControllerType{inputs.GC, inputs.GC, inputs.GBA, inputs.GC},
		Motion: [inputs.MaxMotion]bool{true, true, true, true},
	}

	for i, d := range []inputs.Devices{padOnly(), gba, motion, all} {
		r := newRig(t, emulation.Game{ID: "RMCE01", IsWii: true})

		test.DemandSuccess(t, r.session.BeginRecordingInput(d), i)
		test.ExpectEquality(t, r.session.Mode(), movie.Recording, i)
		test.ExpectSuccess(t, r.session.IsRecording(), i)
		test.ExpectSuccess(t, r.session.IsActive(), i)
		test.ExpectEquality(t, r.session.Author(), "", i)
		test.ExpectEquality(t, r.session.RecordingStartTime(), uint64(1700000000), i)

		r.frame(stick(1))
		r.frame(stick(2))

		r.session.EndPlayInput(false)
		test.ExpectEquality(t, r.session.Mode(), movie.Idle, i)
		test.ExpectEquality(t, r.session.Rerecords(), uint32(0), i)
		test.ExpectEquality(t, r.session.Cursor(), 0, i)
		test.ExpectSuccess(t, r.sink.Contains(string(notifications.NotifyMovieEnd)), i)
	}
}

func TestEndKeepsTotals(t *testing.T) {
	// recording
	r := newRig(t, gamecube)
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))
	for i := 1; i <= 5; i++ {
		r.frame(stick(uint8(i)))
	}
	r.lagFrame()

	r.session.EndPlayInput(false)
	test.ExpectEquality(t, r.session.Mode(), movie.Idle)
	test.ExpectEquality(t, r.session.TotalFrames(), uint64(6))
	test.ExpectEquality(t, r.session.TotalLagCount(), uint64(1))
	test.ExpectEquality(t, r.session.TotalInputCount(), uint64(5))
	test.ExpectEquality(t, len(r.session.Payload()), 5*inputs.PadRecordSize)
	test.ExpectEquality(t, r.session.Cursor(), 0)

	// playback
	p := newRig(t, gamecube)
	path := p.path("totals.dtm")
	pads := make([]inputs.PadState, 4)
	writeMovie(t, path, gameID, pads)
	test.DemandSuccess(t, p.session.PlayInput(path))
	p.frame(inputs.PadStatus{})

	p.session.EndPlayInput(false)
	test.ExpectEquality(t, p.session.Mode(), movie.Idle)
	test.ExpectEquality(t, p.session.TotalFrames(), uint64(4))
	test.ExpectEquality(t, p.session.TotalInputCount(), uint64(4))
	test.ExpectSuccess(t, bytes.Equal(p.session.Payload(), encode(pads)))

	// Shutdown clears them
	p.session.Shutdown()
	test.ExpectEquality(t, p.session.TotalFrames(), uint64(0))
	test.ExpectEquality(t, p.session.TotalInputCount(), uint64(0))
	test.ExpectEquality(t, len(p.session.Payload()), 0)
}

func TestBeginErrors(t *testing.T) {
	r := newRig(t, gamecube)

	err := r.session.BeginRecordingInput(inputs.Devices{})
	test.ExpectSuccess(t, curated.Is(err, movie.NoDevicesError))
	test.ExpectEquality(t, r.session.Mode(), movie.Idle)

	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))
	test.ExpectSuccess(t, r.core.MotionResets() == 1)

	err = r.session.BeginRecordingInput(padOnly())
	test.ExpectSuccess(t, curated.Is(err, movie.ActiveError))

	err = r.session.PlayInput(r.path("none.dtm"))
	test.ExpectSuccess(t, curated.Is(err, movie.ActiveError))
	test.ExpectEquality(t, r.session.Mode(), movie.Recording)

	r.session.EndPlayInput(false)
	test.ExpectEquality(t, r.session.Mode(), movie.Idle)

	// recording cannot be continued when there is no movie
	r.session.EndPlayInput(true)
	test.ExpectEquality(t, r.session.Mode(), movie.Idle)
}

func TestAuthor(t *testing.T) {
	r := newRig(t, gamecube)
	test.DemandSuccess(t, r.prefs.Author.Set("tasvideos"))
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))
	r.frame(stick(1))

	path := r.path("author.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	test.ExpectEquality(t, readHeader(t, path).AuthorString(), "tasvideos")
}

func TestFrameAndLag(t *testing.T) {
	r := newRig(t, gamecube)
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))

	r.frame(stick(1))
	r.lagFrame()
	r.frame(stick(2))

	test.ExpectEquality(t, r.session.CurrentFrame(), uint64(3))
	test.ExpectEquality(t, r.session.TotalFrames(), uint64(3))
	test.ExpectEquality(t, r.session.CurrentLagCount(), uint64(1))
	test.ExpectEquality(t, r.session.TotalLagCount(), uint64(1))
	test.ExpectEquality(t, r.session.CurrentInputCount(), uint64(2))
	test.ExpectEquality(t, r.session.TotalInputCount(), uint64(2))

	// the second input was polled at the start of the third frame
	test.ExpectEquality(t, r.session.TotalTicks(), uint64(2*headless.TicksPerFrame))

	path := r.path("lag.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	h := readHeader(t, path)
	test.ExpectEquality(t, h.FrameCount, uint64(3))
	test.ExpectEquality(t, h.LagCount, uint64(1))
	test.ExpectEquality(t, h.InputCount, uint64(2))
	test.ExpectEquality(t, h.TickCount, uint64(2*headless.TicksPerFrame))

	// totals survive the end of the movie but counters are reset by Init()
	// when there is no movie
	r.session.EndPlayInput(false)
	test.ExpectEquality(t, r.session.TotalFrames(), uint64(3))
	test.DemandSuccess(t, r.session.Init())
	test.ExpectEquality(t, r.session.CurrentFrame(), uint64(0))
	test.ExpectEquality(t, r.session.CurrentInputCount(), uint64(0))
	test.ExpectEquality(t, r.session.TotalFrames(), uint64(3))

	r.session.Shutdown()
	test.ExpectEquality(t, r.session.TotalFrames(), uint64(0))
	test.ExpectEquality(t, r.session.TotalInputCount(), uint64(0))
	test.ExpectEquality(t, len(r.session.Payload()), 0)
}

func TestManip(t *testing.T) {
	r := newRig(t, gamecube)
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))

	r.session.SetPadManip(func(st *inputs.PadStatus, port int) {
		st.Button |= inputs.ButtonB
	})
	r.frame(stick(1))
	r.session.SetPadManip(nil)
	r.frame(stick(2))

	payload := r.session.Payload()
	test.DemandEquality(t, len(payload), 2*inputs.PadRecordSize)
	test.ExpectSuccess(t, inputs.DecodePad(payload).B)
	test.ExpectFailure(t, inputs.DecodePad(payload[inputs.PadRecordSize:]).B)

	r.session.SetMotionManip(func(report []byte, idx int) {
		report[0] = byte(idx)
	})
	report := []byte{0xff, 0xff}
	r.session.CallMotionManip(report, 3)
	test.ExpectEquality(t, report[0], byte(3))
	test.ExpectEquality(t, report[1], byte(0xff))
}

func TestDiscChangeAndReset(t *testing.T) {
	r := newRig(t, gamecube)

	// disc changes are only recorded while recording
	test.ExpectFailure(t, r.session.SignalDiscChange("disc2.iso"))

	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))
	test.ExpectSuccess(t, r.session.SignalDiscChange(`C:\games\disc2.iso`))
	test.ExpectFailure(t, r.session.SignalDiscChange("/games/"+strings.Repeat("x", 41)))
	test.ExpectSuccess(t, r.sink.Contains(string(notifications.NotifyDiscChangeLong)))
	r.session.SetReset(true)

	r.frame(stick(1))
	r.frame(stick(2))

	payload := r.session.Payload()
	first := inputs.DecodePad(payload)
	second := inputs.DecodePad(payload[inputs.PadRecordSize:])
	test.ExpectSuccess(t, first.Disc)
	test.ExpectSuccess(t, first.Reset)
	test.ExpectFailure(t, second.Disc)
	test.ExpectFailure(t, second.Reset)

	path := r.path("disc.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	test.ExpectEquality(t, readHeader(t, path).DiscChangeString(), "disc2.iso")

	// the disc can be changed automatically
	p := newRig(t, gamecube)
	p.core.AddDisc("disc2.iso")
	p.core.Boot()
	test.DemandSuccess(t, p.session.PlayInput(path))
	test.DemandSuccess(t, p.session.Init())
	p.frame(inputs.PadStatus{})
	test.ExpectEquality(t, p.core.Disc(), "disc2.iso")
	test.ExpectEquality(t, p.core.Resets(), 1)
	test.ExpectEquality(t, p.core.State(), emulation.Running)

	// the disc cannot be changed automatically
	q := newRig(t, gamecube)
	q.core.Boot()
	test.DemandSuccess(t, q.session.PlayInput(path))
	test.DemandSuccess(t, q.session.Init())
	q.frame(inputs.PadStatus{})
	test.ExpectEquality(t, q.core.State(), emulation.Paused)
	test.ExpectSuccess(t, q.sink.Contains("Change the disc to disc2.iso"))
	test.ExpectEquality(t, q.core.Resets(), 1)
}

func TestSetReadOnly(t *testing.T) {
	r := newRig(t, gamecube)
	test.ExpectSuccess(t, r.session.IsReadOnly())

	r.session.SetReadOnly(true)
	test.ExpectEquality(t, len(r.sink.Messages), 0)

	r.session.SetReadOnly(false)
	test.ExpectFailure(t, r.session.IsReadOnly())
	test.ExpectEquality(t, r.sink.Last(), "Read+Write mode.")

	r.session.SetReadOnly(true)
	test.ExpectEquality(t, r.sink.Last(), "Read-only mode.")
	test.ExpectEquality(t, len(r.sink.Messages), 2)
}

func TestPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")

	p, err := movie.NewPreferences(path, prefs.ParseOverrides("movie.readOnly::false"))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, p.ReadOnly.Bool())
	test.ExpectSuccess(t, p.VerifyChecksum.Bool())
	test.ExpectFailure(t, p.PauseAtEnd.Bool())

	test.DemandSuccess(t, p.Author.Set(strings.Repeat("a", 40)))
	test.ExpectEquality(t, len(p.Author.String()), 32)
	test.DemandSuccess(t, p.PauseAtEnd.Set(true))
	test.DemandSuccess(t, p.Save())

	q, err := movie.NewPreferences(path, nil)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, q.ReadOnly.Bool())
	test.ExpectSuccess(t, q.PauseAtEnd.Bool())
	test.ExpectEquality(t, q.Author.String(), strings.Repeat("a", 32))

	// preferences without a file
	m, err := movie.NewPreferences("", nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, m.ReadOnly.Bool())
	test.ExpectSuccess(t, m.Save())
	test.ExpectSuccess(t, m.Load())
}

func TestCheckpoint(t *testing.T) {
	c := movie.Checkpoint{
		CurrentFrame:    10,
		Cursor:          80,
		CurrentLag:      2,
		CurrentInput:    12,
		Polled:          true,
		TickAtLastInput: 99,
	}

	b, err := c.MarshalBinary()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(b), movie.CheckpointSize)
	test.ExpectEquality(t, movie.CheckpointSize, 41)

	var d movie.Checkpoint
	test.DemandSuccess(t, d.UnmarshalBinary(b))
	test.ExpectEquality(t, d, c)
	test.ExpectFailure(t, d.UnmarshalBinary(b[:10]))

	// the cursor of a restored checkpoint can be beyond the end of the stream
	r := newRig(t, gamecube)
	r.session.RestoreCheckpoint(c)
	test.ExpectEquality(t, r.session.Cursor(), 80)
	test.ExpectEquality(t, r.session.CurrentFrame(), uint64(10))
	test.ExpectEquality(t, r.session.Checkpoint(), c)
}
