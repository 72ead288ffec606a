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
	"context"
	"crypto/md5"
	"os"
	"testing"
	"time"

	"github.com/jetsetilly/dtmovie/checksum"
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/emulation/headless"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/movie"
	"github.com/jetsetilly/dtmovie/notifications"
	"github.com/jetsetilly/dtmovie/test"
)

func TestRecordingRoundTrip(t *testing.T) {
	const n = 30

	r := newRig(t, gamecube)
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))

	var want []inputs.PadState
	for i := 0; i < n; i++ {
		st := inputs.PadStatus{
			Button:       inputs.Buttons(i * 0x0111),
			StickX:       uint8(i * 7),
			StickY:       uint8(255 - i),
			SubstickX:    uint8(i),
			SubstickY:    uint8(i * 3),
			TriggerLeft:  uint8(i * 5),
			TriggerRight: uint8(i * 11),
			IsConnected:  i%2 == 0,
		}
		r.frame(st)
		want = append(want, inputs.NewPadState(st, false, false))
	}

	recordedDigest, records := r.session.InputDigest()
	test.ExpectEquality(t, records, n)

	path := r.path("roundtrip.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	test.ExpectSuccess(t, r.sink.Contains("DTM "+path+" saved"))

	h, payload, err := dtm.ReadFile(path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h.GameIDString(), gameID)
	test.ExpectEquality(t, h.FrameCount, uint64(n))
	test.ExpectEquality(t, h.InputCount, uint64(n))
	test.ExpectEquality(t, h.TickCount, uint64((n-1)*headless.TicksPerFrame))
	test.ExpectEquality(t, h.RecordingStartTime, uint64(1700000000))
	test.ExpectSuccess(t, h.SaveConfig)
	test.ExpectFailure(t, h.FromSaveState)
	test.ExpectInequality(t, h.UniqueID, uint64(0))
	test.DemandEquality(t, len(payload), n*inputs.PadRecordSize)

	for i := 0; i < n; i++ {
		test.ExpectEquality(t, inputs.DecodePad(payload[i*inputs.PadRecordSize:]), want[i], i)
	}

	// playback on a fresh emulation
	p := newRig(t, gamecube)
	test.DemandSuccess(t, p.session.PlayInput(path))
	test.ExpectEquality(t, p.session.TotalFrames(), uint64(n))
	test.ExpectEquality(t, p.session.RecordingStartTime(), uint64(1700000000))
	test.ExpectSuccess(t, p.session.IsConfigSaved())
	test.ExpectSuccess(t, p.env.Applied() > 0)

	d, _ := p.core.Devices()
	test.ExpectEquality(t, d, padOnly())

	for i := 0; i < n; i++ {
		test.ExpectEquality(t, p.session.Mode(), movie.Playing, i)
		st := p.frame(inputs.PadStatus{})
		test.ExpectEquality(t, inputs.NewPadState(st, false, false), want[i], i)
	}

	test.ExpectEquality(t, p.session.Mode(), movie.Idle)
	playedDigest, _ := p.session.InputDigest()
	test.ExpectEquality(t, playedDigest, recordedDigest)
}

// recordButtonA records ten frames with the A button pressed on frame five
func recordButtonA(t *testing.T) string {
	t.Helper()

	r := newRig(t, gamecube)
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))
	r.core.Boot()
	test.DemandSuccess(t, r.session.Init())

	for f := 1; f <= 10; f++ {
		st := stick(0x80)
		if f == 5 {
			st.Button |= inputs.ButtonA
		}
		r.frame(st)
	}

	path := r.path("buttonA.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	return path
}

func TestPlaybackScenario(t *testing.T) {
	path := recordButtonA(t)

	h := readHeader(t, path)
	test.ExpectEquality(t, h.FrameCount, uint64(10))
	test.ExpectEquality(t, h.InputCount, uint64(10))

	for _, pauseAtEnd := range []bool{false, true} {
		p := newRig(t, gamecube)
		test.DemandSuccess(t, p.prefs.PauseAtEnd.Set(pauseAtEnd))
		test.DemandSuccess(t, p.session.PlayInput(path))
		p.core.Boot()
		test.DemandSuccess(t, p.session.Init())

		for f := 1; f <= 10; f++ {
			test.ExpectEquality(t, p.session.Mode(), movie.Playing, f)
			st := p.frame(inputs.PadStatus{})
			test.ExpectEquality(t, st.Button&inputs.ButtonA != 0, f == 5, f)
			test.ExpectSuccess(t, st.IsConnected, f)
		}

		// the movie ends automatically after the last input and the emulation
		// is paused
		test.ExpectEquality(t, p.session.Mode(), movie.Idle)
		test.ExpectSuccess(t, p.sink.Contains(string(notifications.NotifyMovieEnd)))
		test.ExpectEquality(t, p.core.State(), emulation.Paused)

		// emulation is resumed by the host unless it should pause at the end
		test.ExpectEquality(t, p.core.RunHostJobs(), 1)
		if pauseAtEnd {
			test.ExpectEquality(t, p.core.State(), emulation.Paused)
		} else {
			test.ExpectEquality(t, p.core.State(), emulation.Running)
		}
	}
}

func TestGameMismatch(t *testing.T) {
	path := recordButtonA(t)

	p := newRig(t, emulation.Game{ID: "GMSE01"})
	test.DemandSuccess(t, p.session.PlayInput(path))
	p.core.Boot()

	err := p.session.Init()
	test.ExpectSuccess(t, curated.Is(err, movie.GameMismatch))
	test.ExpectEquality(t, p.session.Mode(), movie.Idle)
	test.ExpectSuccess(t, p.sink.ContainsPart("is not the same as the selected game"))
}

func TestInvalidMovie(t *testing.T) {
	path := recordButtonA(t)

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	test.DemandSuccess(t, err)
	_, err = f.WriteAt([]byte{0, 0, 0, 0}, 0)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.Close())

	p := newRig(t, gamecube)
	err = p.session.PlayInput(path)
	test.ExpectSuccess(t, curated.Is(err, dtm.FormatError))
	test.ExpectEquality(t, p.session.Mode(), movie.Idle)
	test.ExpectSuccess(t, p.sink.Contains("Invalid recording file"))

	// a file shorter than the header
	short := p.path("short.dtm")
	test.DemandSuccess(t, os.WriteFile(short, make([]byte, 100), 0o644))
	err = p.session.PlayInput(short)
	test.ExpectSuccess(t, curated.Is(err, dtm.TruncatedError))
	test.ExpectEquality(t, p.session.Mode(), movie.Idle)

	// a file that does not exist
	test.ExpectFailure(t, p.session.PlayInput(p.path("missing.dtm")))
	test.ExpectEquality(t, p.session.Mode(), movie.Idle)
}

func TestPrematureEnd(t *testing.T) {
	pads := []inputs.PadState{
		inputs.NewPadState(stick(1), false, false),
		inputs.NewPadState(stick(2), false, false),
		inputs.NewPadState(stick(3), false, false),
	}

	// three complete records and a partial record
	var h dtm.Header
	h.SetGameID(gameID)
	h.SetDevices(padOnly())
	h.FrameCount = 4
	h.InputCount = 4
	h.TickCount = 1 << 40

	for _, readOnly := range []bool{true, false} {
		p := newRig(t, gamecube)
		path := p.path("premature.dtm")
		test.DemandSuccess(t, dtm.WriteFile(path, h, append(encode(pads), 0xaa, 0xbb, 0xcc)))

		p.session.SetReadOnly(readOnly)
		test.DemandSuccess(t, p.session.PlayInput(path))

		for k := 1; k <= 3; k++ {
			st := p.frame(inputs.PadStatus{})
			test.ExpectEquality(t, st.StickX, uint8(k), k)
			test.ExpectEquality(t, p.session.Cursor(), k*inputs.PadRecordSize, k)
			test.ExpectEquality(t, p.session.Mode(), movie.Playing, k)
		}

		// the fourth poll does not have enough bytes. the movie ends during
		// the poll
		p.frame(inputs.PadStatus{})
		test.ExpectSuccess(t, p.sink.ContainsPart("premature movie end"))

		if readOnly {
			test.ExpectEquality(t, p.session.Mode(), movie.Idle)
			test.ExpectEquality(t, p.session.Cursor(), 0)
		} else {
			test.ExpectEquality(t, p.session.Mode(), movie.Recording)
			test.ExpectEquality(t, p.session.Cursor(), 3*inputs.PadRecordSize)
			test.ExpectSuccess(t, p.sink.Contains(string(notifications.NotifyResumeRecording)))
		}
	}
}

func TestContinueRecording(t *testing.T) {
	pads := []inputs.PadState{
		inputs.NewPadState(stick(1), false, false),
		inputs.NewPadState(stick(2), false, false),
		inputs.NewPadState(stick(3), false, false),
	}

	p := newRig(t, gamecube)
	path := p.path("continue.dtm")
	writeMovie(t, path, gameID, pads)

	p.session.SetReadOnly(false)
	test.DemandSuccess(t, p.session.PlayInput(path))
	for range pads {
		p.frame(inputs.PadStatus{})
	}

	// the end of a writable movie continues as a recording
	test.ExpectEquality(t, p.session.Mode(), movie.Recording)
	test.ExpectSuccess(t, p.sink.Contains(string(notifications.NotifyResumeRecording)))

	st := stick(4)
	st.Button = inputs.ButtonA
	p.frame(st)

	payload := p.session.Payload()
	test.DemandEquality(t, len(payload), 4*inputs.PadRecordSize)
	last := inputs.DecodePad(payload[3*inputs.PadRecordSize:])
	test.ExpectSuccess(t, last.A)
	test.ExpectEquality(t, last.AnalogStickX, uint8(4))
	test.ExpectEquality(t, p.session.TotalInputCount(), uint64(4))
}

func TestMotion(t *testing.T) {
	wii := emulation.Game{ID: "RMCE01", IsWii: true}

	var d inputs.Devices
	d.Motion[0] = true

	reports := [][]byte{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
		{13, 14, 15, 16, 17, 18},
	}

	r := newRig(t, wii)
	test.DemandSuccess(t, r.session.BeginRecordingInput(d))
	test.ExpectSuccess(t, r.session.IsUsingWiimote(0))
	test.ExpectFailure(t, r.session.IsUsingPad(0))

	for _, rep := range reports {
		rep := append([]byte{}, rep...)
		r.core.Frame(func() {
			test.ExpectSuccess(t, r.session.PollMotion(0, rep))
			r.session.FrameUpdate()
		})
	}

	test.ExpectEquality(t, len(r.session.Payload()), 3*7)
	test.ExpectEquality(t, r.session.TotalInputCount(), uint64(3))
	test.ExpectEquality(t, r.session.TotalLagCount(), uint64(0))

	path := r.path("motion.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	h := readHeader(t, path)
	test.ExpectSuccess(t, h.IsWii)
	test.ExpectSuccess(t, h.Devices().Motion[0])

	// playback
	p := newRig(t, wii)
	test.DemandSuccess(t, p.session.PlayInput(path))
	for i, want := range reports {
		n, ok := p.session.PeekMotionSize()
		test.ExpectSuccess(t, ok, i)
		test.ExpectEquality(t, n, len(want), i)

		rep := make([]byte, len(want))
		p.core.Frame(func() {
			test.ExpectSuccess(t, p.session.PollMotion(0, rep), i)
			p.session.FrameUpdate()
		})
		test.ExpectSuccess(t, bytes.Equal(rep, want), i)
	}
	test.ExpectEquality(t, p.session.Mode(), movie.Idle)
	_, ok := p.session.PeekMotionSize()
	test.ExpectFailure(t, ok)

	// a record that is not the size expected by the device ends the movie
	// even if the session is writable
	q := newRig(t, wii)
	q.session.SetReadOnly(false)
	test.DemandSuccess(t, q.session.PlayInput(path))
	q.core.Frame(func() {
		test.ExpectFailure(t, q.session.PollMotion(0, make([]byte, 5)))
	})
	test.ExpectEquality(t, q.session.Mode(), movie.Idle)
	test.ExpectSuccess(t, q.sink.ContainsPart("fatal desync"))
	test.ExpectSuccess(t, q.sink.ContainsPart("standard controllers disabled"))
}

func TestOversizedMotionReport(t *testing.T) {
	var d inputs.Devices
	d.Motion[0] = true

	r := newRig(t, emulation.Game{ID: "RMCE01", IsWii: true})
	test.DemandSuccess(t, r.session.BeginRecordingInput(d))

	r.core.Frame(func() {
		r.session.PollMotion(0, make([]byte, inputs.MaxMotionSize+1))
		r.session.FrameUpdate()
	})

	// nothing is recorded and the input count agrees with the payload
	test.ExpectEquality(t, r.session.Mode(), movie.Recording)
	test.ExpectEquality(t, len(r.session.Payload()), 0)
	test.ExpectEquality(t, r.session.TotalInputCount(), uint64(0))
	test.ExpectEquality(t, r.session.TotalTicks(), uint64(0))
	test.ExpectSuccess(t, r.sink.ContainsPart("cannot be recorded"))

	// the largest report that fits is recorded
	r.core.Frame(func() {
		r.session.PollMotion(0, make([]byte, inputs.MaxMotionSize))
		r.session.FrameUpdate()
	})
	test.ExpectEquality(t, len(r.session.Payload()), 1+inputs.MaxMotionSize)
	test.ExpectEquality(t, r.session.TotalInputCount(), uint64(1))

	path := r.path("oversized.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	h := readHeader(t, path)
	test.ExpectEquality(t, h.InputCount, uint64(1))
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()

	data := bytes.Repeat([]byte("gamecube"), 4096)
	image := dir + "/game.iso"
	test.DemandSuccess(t, os.WriteFile(image, data, 0o644))

	other := dir + "/other.iso"
	test.DemandSuccess(t, os.WriteFile(other, data[1:], 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	game := emulation.Game{ID: gameID, Path: image}

	r := newRig(t, game)
	test.DemandSuccess(t, r.prefs.VerifyChecksum.Set(true))
	test.DemandSuccess(t, r.session.BeginRecordingInput(padOnly()))
	r.core.Boot()
	test.DemandSuccess(t, r.session.Init())

	res, err := r.session.WaitChecksum(ctx)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Mode, checksum.Store)
	test.ExpectEquality(t, res.Sum, md5.Sum(data))

	r.frame(stick(1))
	r.frame(stick(2))

	path := r.path("checksum.dtm")
	test.DemandSuccess(t, r.session.SaveRecording(path))
	test.ExpectEquality(t, readHeader(t, path).MD5, md5.Sum(data))

	// the same game image
	p := newRig(t, game)
	test.DemandSuccess(t, p.prefs.VerifyChecksum.Set(true))
	test.DemandSuccess(t, p.session.PlayInput(path))
	p.core.Boot()
	test.DemandSuccess(t, p.session.Init())

	res, err = p.session.WaitChecksum(ctx)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Mode, checksum.Compare)
	test.ExpectSuccess(t, res.Match)
	test.ExpectSuccess(t, p.sink.Contains(string(notifications.NotifyChecksumMatch)))

	// a different game image with the same ID
	q := newRig(t, emulation.Game{ID: gameID, Path: other})
	test.DemandSuccess(t, q.prefs.VerifyChecksum.Set(true))
	test.DemandSuccess(t, q.session.PlayInput(path))
	q.core.Boot()
	test.DemandSuccess(t, q.session.Init())

	res, err = q.session.WaitChecksum(ctx)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, res.Match)
	test.ExpectSuccess(t, curated.Is(res.Err, checksum.HashMismatch))
	test.ExpectSuccess(t, q.sink.Contains(string(notifications.NotifyChecksumBad)))

	// playback is not affected by a bad checksum
	test.ExpectEquality(t, q.session.Mode(), movie.Playing)
}
