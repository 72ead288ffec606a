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
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jetsetilly/dtmovie/checksum"
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/logger"
	"github.com/jetsetilly/dtmovie/notifications"
	"github.com/jetsetilly/dtmovie/paths"
	"github.com/jetsetilly/dtmovie/reconcile"
)

// the name of the save state taken when recording starts from a running
// emulation. the file is in the StateSaveDir directory
const recordingStateFile = "dtm.sav"

// getSettings captures the live environment. must be called with the crit
// lock held.
func (s *Session) getSettings() {
	f := s.env.Fingerprint()
	s.fingerprint = f
	s.saveConfig = true
	s.netPlay = s.env.NetPlay()
	s.clearSave = f.ClearSave
	s.memcards |= f.Memcards
	s.revision = f.Revision
	if f.DSPHLE {
		s.dspIROMHash = 0
		s.dspCoefHash = 0
	} else {
		s.dspIROMHash = f.DSPIROMHash
		s.dspCoefHash = f.DSPCoefHash
	}
}

// readHeader takes the state of the session from a header. must be called
// with the crit lock held.
func (s *Session) readHeader(h dtm.Header) {
	s.header = h
	s.devices = h.Devices()
	s.layout = inputs.NewLayout(s.devices)
	s.startTime = h.RecordingStartTime
	if s.rerecords < h.NumRerecords {
		s.rerecords = h.NumRerecords
	}

	if h.SaveConfig {
		s.saveConfig = true
		s.fingerprint = h.Fingerprint()
		s.env.ApplyFingerprint(s.fingerprint)
		s.clearSave = h.ClearSave
		s.memcards = h.Memcards
		s.bongos = h.Bongos
		s.netPlay = h.NetPlay
		s.revision = h.Revision
	} else {
		s.getSettings()
	}

	s.discChange = h.DiscChangeString()
	s.author = h.AuthorString()
	s.md5 = h.MD5
	s.dspIROMHash = h.DSPIROMHash
	s.dspCoefHash = h.DSPCoefHash
	s.uniqueID = h.UniqueID
}

// Init must be called by the emulator when it boots, whether or not a movie
// is active. A GameMismatch error is returned if the movie being played was
// recorded with a different game. The movie will have ended in that case.
func (s *Session) Init() error {
	var err error
	s.core.RunExclusive(func() {
		s.crit.Lock()
		defer s.crit.Unlock()

		s.polled = false
		s.saveConfig = false

		if s.mode == Playing {
			s.readHeader(s.header)
			s.startChecksum(checksum.Compare)

			game := s.core.Game()
			if recorded := s.header.GameIDString(); recorded != game.ID {
				err = curated.Errorf(GameMismatch, recorded, game.ID)
				logger.Log(logger.Allow, "movie", err)
				s.notifyf(notifications.Warning, "The recorded game (%s) is not the same as the selected game (%s)",
					recorded, game.ID)
				s.metrics.Desync("game")
				s.endPlayInput(false)
			}
		}

		if s.mode == Recording {
			s.getSettings()
			s.startChecksum(checksum.Store)
			s.tickAtLastInput = 0
		}

		s.discPending = false
		s.resetPending = false

		if s.mode == Idle {
			s.fromSaveState = false
			s.rerecords = 0
			s.stream.Seek(0)
			s.currentFrame = 0
			s.currentLag = 0
			s.currentInput = 0
		}
	})
	return err
}

// Shutdown must be called by the emulator when emulation stops.
func (s *Session) Shutdown() {
	s.core.RunExclusive(func() {
		s.crit.Lock()
		defer s.crit.Unlock()
		s.currentInput = 0
		s.totalInput = 0
		s.totalFrames = 0
		s.tickAtLastInput = 0
		s.stream.Reset()
		s.hash.Abandon()
		s.hash = nil
	})
}

// BeginRecordingInput starts recording the input of the devices. An error is
// returned if a movie is already active or if there are no devices.
//
// If the emulation is running then a save state is taken and the movie
// starts from that save state.
func (s *Session) BeginRecordingInput(d inputs.Devices) error {
	var err error
	s.core.RunExclusive(func() {
		err = s.beginRecording(d)
	})
	if err != nil {
		return err
	}

	s.notifyf(notifications.Short, "Starting movie recording")
	return nil
}

func (s *Session) beginRecording(d inputs.Devices) error {
	s.crit.Lock()

	if s.mode != Idle {
		defer s.crit.Unlock()
		return curated.Errorf(ActiveError, s.mode)
	}
	if !d.Any() {
		defer s.crit.Unlock()
		return curated.Errorf(NoDevicesError)
	}

	s.devices = d
	s.layout = inputs.NewLayout(d)
	s.currentFrame, s.totalFrames = 0, 0
	s.currentLag, s.totalLag = 0, 0
	s.currentInput, s.totalInput = 0, 0
	s.totalTicks, s.tickAtLastInput = 0, 0
	s.memcards = 0
	s.netPlay = s.env.NetPlay()
	s.startTime = s.env.RecordingStartTime()
	s.rerecords = 0
	s.bongos = s.env.Bongos()
	s.fromSaveState = false
	s.discChange = ""
	s.md5 = checksum.Sum{}
	s.saveConfig = false
	s.stream.Reset()

	running := s.core.State() == emulation.Running
	s.crit.Unlock()

	// the save state includes the checkpoint of the session so the crit lock
	// must not be held
	if running && s.states != nil {
		dir := s.prefs.StateSaveDir.String()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return curated.Errorf(SaveError, dir, err)
		}
		path := filepath.Join(dir, recordingStateFile)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf(SaveError, path, err)
		}
		if err := s.states.SaveAs(path); err != nil {
			return curated.Errorf(SaveError, path, err)
		}
	}

	s.crit.Lock()
	defer s.crit.Unlock()

	if running {
		s.fromSaveState = s.states != nil
		s.startChecksum(checksum.Store)
		s.getSettings()
	} else {
		s.core.ResetMotionControllers()
	}

	id := s.id
	s.uniqueID = binary.LittleEndian.Uint64(id[:8])
	s.author = s.prefs.Author.String()
	s.inputDigest.ResetDigest()
	s.setMode(Recording)
	s.metrics.Started(Recording.String())

	logger.Logf(logger.Allow, "movie", "recording started (%v)", s.layout.Devices())

	return nil
}

// PlayInput starts playback of the movie at path. An error is returned if a
// movie is already active or if the file is not a movie.
//
// If the movie starts from a save state then the save state alongside the
// movie is loaded and the movie is reconciled with it with LoadInput().
func (s *Session) PlayInput(path string) error {
	var err error
	var fromSaveState bool

	s.core.RunExclusive(func() {
		s.crit.Lock()
		defer s.crit.Unlock()

		if s.mode != Idle {
			err = curated.Errorf(ActiveError, s.mode)
			return
		}

		var h dtm.Header
		var payload []byte
		h, payload, err = dtm.ReadFile(path)
		if err != nil {
			logger.Log(logger.Allow, "movie", err)
			if curated.Is(err, dtm.FormatError) || curated.Is(err, dtm.TruncatedError) {
				s.notifyf(notifications.Warning, "Invalid recording file")
			}
			return
		}

		s.readHeader(h)
		s.totalFrames = h.FrameCount
		s.totalLag = h.LagCount
		s.totalInput = h.InputCount
		s.totalTicks = h.TickCount
		s.currentFrame = 0
		s.currentLag = 0
		s.currentInput = 0

		s.setMode(Playing)
		s.metrics.Started(Playing.String())

		s.core.ConfigureDevices(s.devices, s.bongos)
		s.core.ResetMotionControllers()

		s.stream = inputs.NewStream(payload)
		s.inputDigest.ResetDigest()

		fromSaveState = h.FromSaveState
		s.fromSaveState = fromSaveState

		logger.Logf(logger.Allow, "movie", "playing %s (%d bytes)", path, len(payload))
	})

	if err != nil || !fromSaveState {
		return err
	}

	companion := paths.CompanionPath(path)
	if s.states != nil {
		if _, statErr := os.Stat(companion); statErr == nil {
			if err := s.states.Load(companion); err != nil {
				logger.Log(logger.Allow, "movie", err)
			}
		}
	}

	_, err = s.LoadInput(path)
	return err
}

// LoadInput reattaches the session to the movie at path. It should be called
// after a save state has been loaded, with the movie that was saved alongside
// the save state.
//
// If the session is writable (not read-only) then the rerecord count is
// incremented and the header of the file is rewritten. The session continues
// in the Recording mode.
//
// If the session is read-only then the session continues in the Playing mode.
// Input already in the session is checked against the movie. A mismatch is
// reported but is not fatal and the input already in the session is kept.
//
// The returned Result describes the reconciliation. Its Payload is a copy of
// the input stream and is not changed by the session. An error is returned if
// the file cannot be read or is not a movie, or if the save state is after
// the end of the movie. The movie will have ended in those cases.
func (s *Session) LoadInput(path string) (reconcile.Result, error) {
	var res reconcile.Result
	var err error
	s.core.RunExclusive(func() {
		s.crit.Lock()
		defer s.crit.Unlock()
		res, err = s.loadInput(path)
	})
	return res, err
}

func (s *Session) loadInput(path string) (reconcile.Result, error) {
	h, payload, err := dtm.ReadFile(path)
	if err != nil {
		logger.Log(logger.Allow, "movie", err)
		if curated.Is(err, dtm.FormatError) || curated.Is(err, dtm.TruncatedError) {
			s.notifyf(notifications.Warning, "Savestate movie %s is corrupted, movie recording stopping...", path)
		} else {
			s.notifyf(notifications.Warning, "Failed to read %s", path)
		}
		s.endPlayInput(false)
		return reconcile.Result{}, curated.Errorf(LoadError, err)
	}

	s.readHeader(h)

	readOnly := s.prefs.ReadOnly.Bool()
	if !readOnly {
		s.rerecords++
		h.NumRerecords = s.rerecords
		s.header = h
		if err := dtm.RewriteHeader(path, h); err != nil {
			logger.Log(logger.Allow, "movie", err)
		}
		s.metrics.Rerecord()
	}

	s.core.ConfigureDevices(s.devices, s.bongos)

	res := reconcile.Check(reconcile.Input{
		Cursor:       s.stream.Cursor(),
		ReadOnly:     readOnly,
		Cached:       s.stream.Bytes(),
		Loaded:       payload,
		Layout:       s.layout,
		CurrentInput: s.currentInput,
		TotalInput:   s.totalInput,
	})

	if res.Adopt {
		s.totalFrames = h.FrameCount
		s.totalLag = h.LagCount
		s.totalInput = h.InputCount
		s.totalTicks = h.TickCount
		s.tickAtLastInput = h.TickCount
		s.stream.Replace(res.Payload)
	}

	// the caller gets a copy because the stream changes as the movie continues
	res.Payload = bytes.Clone(res.Payload)

	s.saveConfig = h.SaveConfig

	switch res.Outcome {
	case reconcile.AfterEnd:
		logger.Log(logger.Allow, "movie", res.Err)
		s.notifyf(notifications.Warning, "Warning: %v. You should load another save before continuing.", res.Err)
		s.metrics.Desync("after end")
		s.endPlayInput(false)
		return res, curated.Errorf(LoadError, res.Err)

	case reconcile.Mismatched:
		logger.Log(logger.Allow, "movie", res.Err)
		s.notifyf(notifications.Warning, "Warning: You loaded a save whose movie mismatches on %v. "+
			"You should load another save before continuing, or load this state with read-only mode off. "+
			"Otherwise you'll probably get a desync.\n\n%s", res.Position, res.Detail())
		s.metrics.Desync("mismatch")
	}

	if readOnly {
		if s.mode != Playing {
			s.setMode(Playing)
			s.notifyf(notifications.Short, "Switched to playback")
		}
	} else {
		if s.mode != Recording {
			s.setMode(Recording)
			s.notifyf(notifications.Short, "Switched to recording")
		}
	}

	logger.Logf(logger.Allow, "movie", "loaded %s: %v at byte %d", path, res.Outcome, s.stream.Cursor())

	return res, nil
}

// EndPlayInput ends the movie. If continueRecording is true and a movie is
// being played then recording continues from the current position. If a
// movie is not active then continueRecording has no effect.
//
// Otherwise the session becomes Idle and the emulation is paused. If the
// PauseAtEnd preference is false then the emulation is resumed by a job
// queued for the host.
//
// The input stream and the totals of the movie are not cleared, so that a
// save state taken during the movie can be loaded later.
func (s *Session) EndPlayInput(continueRecording bool) {
	s.core.RunExclusive(func() {
		s.crit.Lock()
		defer s.crit.Unlock()
		s.endPlayInput(continueRecording)
	})
}

// endPlayInput must be called with the crit lock held and inside the
// barrier.
func (s *Session) endPlayInput(continueRecording bool) {
	if continueRecording {
		if s.mode == Idle {
			return
		}
		s.setMode(Recording)
		s.notify(notifications.NotifyResumeRecording, notifications.Short)
		logger.Logf(logger.Allow, "movie", "recording resumed at byte %d", s.stream.Cursor())
		return
	}

	if s.mode == Idle {
		return
	}

	wasRunning := s.core.Break()
	s.rerecords = 0
	s.stream.Seek(0)
	s.setMode(Idle)
	s.notify(notifications.NotifyMovieEnd, notifications.Short)
	s.fromSaveState = false

	s.harvestChecksum()
	s.hash.Abandon()
	s.hash = nil

	s.core.QueueHostJob(func() {
		if wasRunning && !s.prefs.PauseAtEnd.Bool() {
			s.core.Resume()
		}
	})

	logger.Logf(logger.Allow, "movie", "movie ended")
}

// SaveRecording writes the movie to path. If the movie started from a save
// state then the save state is copied alongside the movie.
func (s *Session) SaveRecording(path string) error {
	var err error
	s.core.RunExclusive(func() {
		s.crit.Lock()
		defer s.crit.Unlock()
		err = s.saveRecording(path)
	})
	return err
}

func (s *Session) saveRecording(path string) error {
	s.harvestChecksum()
	if !s.saveConfig {
		s.getSettings()
	}

	game := s.core.Game()

	var h dtm.Header
	h.SetGameID(game.ID)
	h.IsWii = game.IsWii
	h.SetDevices(s.devices)
	h.FromSaveState = s.fromSaveState
	h.FrameCount = s.totalFrames
	h.LagCount = s.totalLag
	h.InputCount = s.totalInput
	h.NumRerecords = s.rerecords
	h.RecordingStartTime = s.startTime

	h.SetFingerprint(s.fingerprint)
	h.Memcards = s.memcards
	h.ClearSave = s.clearSave
	h.NetPlay = s.netPlay
	h.SetDiscChange(s.discChange)
	h.SetAuthor(s.author)
	h.MD5 = s.md5
	h.Bongos = s.bongos
	h.Revision = s.revision
	h.DSPIROMHash = s.dspIROMHash
	h.DSPCoefHash = s.dspCoefHash
	h.TickCount = s.totalTicks
	h.UniqueID = s.uniqueID

	err := dtm.WriteFile(path, h, s.stream.Bytes())
	if err == nil && s.fromSaveState {
		src := filepath.Join(s.prefs.StateSaveDir.String(), recordingStateFile)
		err = dtm.CopyFile(paths.CompanionPath(path), src)
	}

	if err != nil {
		logger.Log(logger.Allow, "movie", err)
		s.notifyf(notifications.Short, "Failed to save %s", path)
		return curated.Errorf(SaveError, path, err)
	}

	s.notifyf(notifications.Short, "DTM %s saved", path)
	logger.Logf(logger.Allow, "movie", "saved %s (%d bytes, %d frames)", path, s.stream.Len(), h.FrameCount)
	return nil
}
