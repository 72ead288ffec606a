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

package movie

import (
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/logger"
	"github.com/jetsetilly/dtmovie/notifications"
)

// FrameUpdate must be called by the emulator at the end of every frame.
func (s *Session) FrameUpdate() {
	s.crit.Lock()
	defer s.crit.Unlock()

	s.currentFrame++
	if !s.polled {
		s.currentLag++
	}

	if s.mode == Recording {
		s.totalFrames = s.currentFrame
		s.totalLag = s.currentLag
	}

	s.polled = false

	s.harvestChecksum()
}

// InputUpdate must be called by the emulator after every poll of a standard
// controller.
func (s *Session) InputUpdate() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.inputUpdate()
}

func (s *Session) inputUpdate() {
	s.currentInput++
	if s.mode == Recording {
		ticks := s.core.Ticks()
		s.totalInput = s.currentInput
		s.totalTicks += ticks - s.tickAtLastInput
		s.tickAtLastInput = ticks
	}
}

// SetPolledDevice must be called by the emulator whenever a device is polled.
// A frame in which no device is polled is a lag frame.
func (s *Session) SetPolledDevice() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.polled = true
}

// RecordInput records the status of the standard controller in the port. It
// does nothing if the session is not recording or if the port is not part of
// the movie.
func (s *Session) RecordInput(port int, st inputs.PadStatus) {
	s.crit.Lock()
	defer s.crit.Unlock()

	if s.mode != Recording || !s.devices.UsingPad(port) {
		return
	}

	p := inputs.NewPadState(st, s.discPending, s.resetPending)
	s.discPending = false
	s.resetPending = false

	s.stream.AppendPad(p)

	b := p.Encode()
	s.inputDigest.Add(b[:])
	s.metrics.Recorded(inputs.KindPad.String())
}

// RecordWiimote records the report of the motion controller. It does nothing
// if the session is not recording or if the motion controller is not part of
// the movie.
func (s *Session) RecordWiimote(idx int, report []byte) {
	s.crit.Lock()
	defer s.crit.Unlock()

	if s.mode != Recording || !s.devices.UsingMotion(idx) {
		return
	}

	// the report is not recorded and the input count does not change
	if len(report) > inputs.MaxMotionSize {
		logger.Log(logger.Allow, "movie", curated.Errorf(inputs.MotionTooLarge, len(report)))
		s.notifyf(notifications.Warning, "Motion controller %d report of %d bytes cannot be recorded", idx+1, len(report))
		return
	}

	if err := s.stream.AppendMotion(report); err != nil {
		logger.Log(logger.Allow, "movie", err)
		return
	}

	s.inputUpdate()
	s.inputDigest.Add(report)
	s.metrics.Recorded(inputs.KindMotion.String())
}

// PlayController replaces the status of the standard controller in the port
// with the next record of the movie. It does nothing if the session is not
// playing or if the port is not part of the movie.
//
// If there is not enough input left for the record then the movie ends. The
// session continues recording from that point if it is not read-only.
func (s *Session) PlayController(port int, st *inputs.PadStatus) {
	s.crit.Lock()
	defer s.crit.Unlock()

	if s.mode != Playing || !s.devices.UsingPad(port) || s.stream.Len() == 0 {
		return
	}

	p, err := s.stream.NextPad()
	if err != nil {
		logger.Log(logger.Allow, "movie", err)
		s.notifyf(notifications.Warning, "%v", err)
		s.metrics.Desync("premature")
		s.endPlayInput(!s.prefs.ReadOnly.Bool())
		return
	}

	*st = p.Status()

	b := p.Encode()
	s.inputDigest.Add(b[:])
	s.metrics.Played(inputs.KindPad.String())

	if p.Disc {
		if !s.core.ChangeDisc(s.discChange) {
			s.core.Break()
			s.notifyf(notifications.Warning, "Change the disc to %s", s.discChange)
		}
	}

	if p.Reset {
		s.core.TapReset()
	}

	s.checkInputEnd()
}

// PlayWiimote replaces the report of the motion controller with the next
// record of the movie. The size of the report is the size of the report
// expected by the emulated device. It returns false if the report was not
// replaced.
//
// A record that is not the same size as the report is a fatal desync and the
// movie ends.
func (s *Session) PlayWiimote(idx int, report []byte) bool {
	s.crit.Lock()
	defer s.crit.Unlock()

	if s.mode != Playing || !s.devices.UsingMotion(idx) || s.stream.Len() == 0 {
		return false
	}

	data, err := s.stream.NextMotion(len(report))
	if err != nil {
		logger.Log(logger.Allow, "movie", err)
		if curated.Is(err, inputs.ShapeMismatch) {
			hint := ""
			if !s.devices.AnyPad() {
				hint = " Try re-creating the recording with all standard controllers disabled."
			}
			s.notifyf(notifications.Warning, "Aborting playback. %v.%s", err, hint)
			s.metrics.Desync("shape")
			s.endPlayInput(false)
		} else {
			s.notifyf(notifications.Warning, "%v", err)
			s.metrics.Desync("premature")
			s.endPlayInput(!s.prefs.ReadOnly.Bool())
		}
		return false
	}

	copy(report, data)
	s.currentInput++

	s.inputDigest.Add(data)
	s.metrics.Played(inputs.KindMotion.String())

	s.checkInputEnd()
	return true
}

// checkInputEnd ends the movie if there is no more input or, for a movie that
// starts from boot, if the emulation is past the last input.
func (s *Session) checkInputEnd() {
	if s.stream.AtEnd() || (s.core.Ticks() > s.totalTicks && !s.fromSaveState) {
		s.endPlayInput(!s.prefs.ReadOnly.Bool())
	}
}

// PollPad performs the full sequence of operations for a poll of a standard
// controller. The status is manipulated and then either replaced by the
// movie or recorded.
func (s *Session) PollPad(port int, st *inputs.PadStatus) {
	s.CallPadManip(st, port)
	s.SetPolledDevice()

	switch s.Mode() {
	case Playing:
		s.PlayController(port, st)
		s.InputUpdate()
	case Recording:
		s.RecordInput(port, *st)
		s.InputUpdate()
	}
}

// PollMotion performs the full sequence of operations for a poll of a motion
// controller. Returns false if the session is playing and the report was not
// replaced.
func (s *Session) PollMotion(idx int, report []byte) bool {
	s.CallMotionManip(report, idx)
	s.SetPolledDevice()

	switch s.Mode() {
	case Playing:
		return s.PlayWiimote(idx, report)
	case Recording:
		s.RecordWiimote(idx, report)
	}
	return true
}
