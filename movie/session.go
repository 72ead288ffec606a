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
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/dtmovie/checksum"
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/digest"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/logger"
	"github.com/jetsetilly/dtmovie/metrics"
	"github.com/jetsetilly/dtmovie/notifications"
)

// Config is the set of collaborators used by a Session.
type Config struct {
	Core        emulation.Core
	Environment emulation.Environment

	// save states are used when recording starts from a running emulation
	// and when playing a movie that starts from a save state. can be nil
	States emulation.SaveStates

	// notification sink. if nil then messages are logged
	Sink notifications.Sink

	// hasher for the game image. if nil then checksum.MD5 is used
	Hasher checksum.Hasher

	// if nil then the default preferences are used. the preferences are not
	// associated with a file in that case
	Prefs *Preferences

	// can be nil
	Metrics *metrics.Metrics
}

// PadManip is a function that can change the status of a standard controller
// before it is recorded or after it has been played back.
type PadManip func(st *inputs.PadStatus, port int)

// MotionManip is a function that can change the report of a motion controller
// before it is recorded or after it has been played back.
type MotionManip func(report []byte, idx int)

// Session is the state of a movie. It must be created with NewSession().
type Session struct {
	id uuid.UUID

	core    emulation.Core
	env     emulation.Environment
	states  emulation.SaveStates
	sink    notifications.Sink
	hasher  checksum.Hasher
	prefs   *Preferences
	metrics *metrics.Metrics

	crit sync.Mutex

	mode    Mode
	devices inputs.Devices
	layout  inputs.Layout
	stream  *inputs.Stream

	// the header most recently read from a file
	header dtm.Header

	// environment of the movie
	fingerprint dtm.Fingerprint
	saveConfig  bool
	bongos      uint8
	memcards    uint8
	clearSave   bool
	netPlay     bool
	revision    [20]byte
	dspIROMHash uint32
	dspCoefHash uint32
	md5         checksum.Sum
	uniqueID    uint64

	author        string
	discChange    string
	startTime     uint64
	fromSaveState bool
	rerecords     uint32

	currentFrame    uint64
	totalFrames     uint64
	currentLag      uint64
	totalLag        uint64
	currentInput    uint64
	totalInput      uint64
	totalTicks      uint64
	tickAtLastInput uint64
	polled          bool

	// one-shot events for the next recorded pad record
	discPending  bool
	resetPending bool

	hash   *checksum.Task
	hashed *checksum.Result

	padManip    PadManip
	motionManip MotionManip

	// digest of every record recorded or played back since the movie started
	inputDigest *digest.Inputs
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Core == nil {
		return nil, fmt.Errorf("movie: no emulation core")
	}
	if cfg.Environment == nil {
		return nil, fmt.Errorf("movie: no emulation environment")
	}

	s := &Session{
		id:          uuid.New(),
		core:        cfg.Core,
		env:         cfg.Environment,
		states:      cfg.States,
		sink:        cfg.Sink,
		hasher:      cfg.Hasher,
		prefs:       cfg.Prefs,
		metrics:     cfg.Metrics,
		stream:      inputs.NewStream(nil),
		inputDigest: digest.NewInputs(),
	}

	if s.sink == nil {
		s.sink = notifications.Logged{Perm: logger.Allow}
	}
	if s.hasher == nil {
		s.hasher = checksum.MD5
	}
	if s.prefs == nil {
		var err error
		s.prefs, err = NewPreferences("", nil)
		if err != nil {
			return nil, err
		}
	}

	s.metrics.SetMode(int(Idle))
	logger.Logf(logger.Allow, "movie", "session %s created", s.id)

	return s, nil
}

// Close abandons any checksum calculation. The session should not be used
// after it has been closed.
func (s *Session) Close() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.hash.Abandon()
	s.hash = nil
	logger.Logf(logger.Allow, "movie", "session %s closed", s.id)
}

// ID returns the unique ID of the session. It is used to identify the session
// in the log.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Preferences returns the preferences used by the session.
func (s *Session) Preferences() *Preferences {
	return s.prefs
}

func (s *Session) notify(n notifications.Notice, d time.Duration) {
	notifications.Display(s.sink, n, d)
}

func (s *Session) notifyf(d time.Duration, format string, args ...any) {
	notifications.Displayf(s.sink, d, format, args...)
}

func (s *Session) setMode(m Mode) {
	s.mode = m
	s.metrics.SetMode(int(m))
}

// startChecksum starts a new checksum task for the game image. the previous
// task is abandoned.
func (s *Session) startChecksum(mode checksum.Mode) {
	s.hash.Abandon()
	s.hash = nil
	s.hashed = nil

	if !s.prefs.VerifyChecksum.Bool() {
		return
	}

	s.hash = checksum.Start(s.hasher, s.core.Game().Path, mode, s.md5, s.sink)
}

// harvestChecksum collects the result of the checksum task if it is ready.
// it never blocks.
func (s *Session) harvestChecksum() {
	res, ok := s.hash.Poll()
	if !ok {
		return
	}
	s.hash = nil
	s.hashed = &res

	switch {
	case res.Mode == checksum.Store && res.Err == nil:
		s.md5 = res.Sum
		s.metrics.Checksum("stored")
	case res.Match:
		s.metrics.Checksum("match")
	case curated.Is(res.Err, checksum.HashMismatch):
		s.metrics.Checksum("mismatch")
	default:
		s.metrics.Checksum("error")
	}
}

// WaitChecksum blocks until the checksum of the game image started by the most
// recent movie has been calculated. If the checksum has already been collected
// then the result is returned immediately.
func (s *Session) WaitChecksum(ctx context.Context) (checksum.Result, error) {
	s.crit.Lock()
	t := s.hash
	if t == nil {
		defer s.crit.Unlock()
		if s.hashed != nil {
			return *s.hashed, nil
		}
		return checksum.Result{}, context.Canceled
	}
	s.crit.Unlock()

	if _, err := t.Wait(ctx); err != nil {
		return checksum.Result{}, err
	}

	s.crit.Lock()
	defer s.crit.Unlock()
	if s.hash == t {
		s.harvestChecksum()
	}
	if s.hashed == nil {
		return checksum.Result{}, context.Canceled
	}
	return *s.hashed, nil
}

// Mode returns the current mode of the session.
func (s *Session) Mode() Mode {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.mode
}

// IsRecording returns true if the session is recording.
func (s *Session) IsRecording() bool {
	return s.Mode() == Recording
}

// IsPlaying returns true if the session is playing back a movie.
func (s *Session) IsPlaying() bool {
	return s.Mode() == Playing
}

// IsActive returns true if the session is recording or playing.
func (s *Session) IsActive() bool {
	return s.Mode() != Idle
}

// IsReadOnly returns true if a movie loaded with a save state is to be
// played back rather than overwritten.
func (s *Session) IsReadOnly() bool {
	return s.prefs.ReadOnly.Bool()
}

// Cursor returns the offset into the input stream of the next record.
func (s *Session) Cursor() int {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.stream.Cursor()
}

// Payload returns a copy of the input stream.
func (s *Session) Payload() []byte {
	s.crit.Lock()
	defer s.crit.Unlock()
	return append([]byte{}, s.stream.Bytes()...)
}

// PeekMotionSize returns the size of the motion record at the cursor. It
// returns false if the session is not playing or if there is no record at
// the cursor. The result is only meaningful when the next record is known to
// be a motion record.
//
// A device that can report in more than one format uses this to emulate the
// format the movie was recorded with.
func (s *Session) PeekMotionSize() (int, bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	if s.mode != Playing || s.stream.Remaining() == 0 {
		return 0, false
	}
	return int(s.stream.Bytes()[s.stream.Cursor()]), true
}

// InputDigest returns the digest of every record recorded or played back since
// the movie started, and the number of records.
func (s *Session) InputDigest() (string, int) {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.inputDigest.Hash(), s.inputDigest.Records()
}

// Rerecords returns the rerecord count.
func (s *Session) Rerecords() uint32 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.rerecords
}

// Author returns the author of the current movie.
func (s *Session) Author() string {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.author
}

// RecordingStartTime returns the time the movie was started, in seconds since
// 1970.
func (s *Session) RecordingStartTime() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.startTime
}

// CurrentFrame returns the number of frames since the movie started.
func (s *Session) CurrentFrame() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.currentFrame
}

// TotalFrames returns the number of frames in the movie.
func (s *Session) TotalFrames() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.totalFrames
}

// CurrentInputCount returns the number of inputs since the movie started.
func (s *Session) CurrentInputCount() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.currentInput
}

// TotalInputCount returns the number of inputs in the movie.
func (s *Session) TotalInputCount() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.totalInput
}

// CurrentLagCount returns the number of lag frames since the movie started.
func (s *Session) CurrentLagCount() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.currentLag
}

// TotalLagCount returns the number of lag frames in the movie.
func (s *Session) TotalLagCount() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.totalLag
}

// TotalTicks returns the tick count of the last input in the movie.
func (s *Session) TotalTicks() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.totalTicks
}

// IsUsingPad returns true if a standard controller (or GBA) in the port is
// part of the movie.
func (s *Session) IsUsingPad(port int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.devices.UsingPad(port)
}

// IsUsingGBA returns true if the port has a GBA that is part of the movie.
func (s *Session) IsUsingGBA(port int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.devices.UsingGBA(port)
}

// IsUsingWiimote returns true if the motion controller is part of the movie.
func (s *Session) IsUsingWiimote(idx int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.devices.UsingMotion(idx)
}

// IsUsingBongo returns true if the port has a bongo controller.
func (s *Session) IsUsingBongo(port int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.bongos&(1<<port) != 0
}

// IsUsingMemcard returns true if the memory card slot was in use when the
// movie was recorded.
func (s *Session) IsUsingMemcard(slot int) bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.memcards&(1<<slot) != 0
}

// IsNetPlayRecording returns true if the movie was recorded during net-play.
func (s *Session) IsNetPlayRecording() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.netPlay
}

// IsConfigSaved returns true if the movie carries the environment it was
// recorded with.
func (s *Session) IsConfigSaved() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.saveConfig
}

// IsStartingFromClearSave returns true if the movie was recorded without save
// data.
func (s *Session) IsStartingFromClearSave() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.clearSave
}

// IsRecordingInputFromSaveState returns true if the movie starts from a save
// state rather than from boot.
func (s *Session) IsRecordingInputFromSaveState() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.fromSaveState
}

// IsJustStartingRecordingInputFromSaveState returns true if the movie starts
// from a save state and no frame has been emulated yet.
func (s *Session) IsJustStartingRecordingInputFromSaveState() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.fromSaveState && s.currentFrame == 0
}

// IsJustStartingPlayingInputFromSaveState returns true if a movie that
// starts from a save state is being played back and only the first frame
// has been emulated.
func (s *Session) IsJustStartingPlayingInputFromSaveState() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.fromSaveState && s.currentFrame == 1 && s.mode == Playing
}

// SetReadOnly changes the read-only flag. A message is displayed if the flag
// changes.
func (s *Session) SetReadOnly(readOnly bool) {
	if s.prefs.ReadOnly.Bool() != readOnly {
		if readOnly {
			s.notifyf(notifications.Short/2, "Read-only mode.")
		} else {
			s.notifyf(notifications.Short/2, "Read+Write mode.")
		}
	}
	_ = s.prefs.ReadOnly.Set(readOnly)
}

// SetReset sets whether the reset button is pressed at the next recorded
// poll of a standard controller.
func (s *Session) SetReset(reset bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.resetPending = reset
}

// SetClearSave sets whether the movie is being recorded without save data.
func (s *Session) SetClearSave(clear bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.clearSave = clear
}

// SignalDiscChange records a change of disc. The change is stored in the next
// recorded poll of a standard controller. Only the filename part of the path
// is used and it must fit the disc change field of the header. Returns false
// if the disc change was not recorded.
func (s *Session) SignalDiscChange(path string) bool {
	s.crit.Lock()
	defer s.crit.Unlock()

	if s.mode != Recording {
		return false
	}

	name := path[strings.LastIndexAny(path, `/\`)+1:]

	if len(name) > dtm.DiscChangeLen {
		s.notify(notifications.NotifyDiscChangeLong, notifications.Warning)
		logger.Logf(logger.Allow, "movie", "disc change to %s not recorded", name)
		return false
	}

	s.discChange = name
	s.discPending = true
	return true
}

// SetPadManip sets the function that manipulates standard controller polls.
// Can be nil.
func (s *Session) SetPadManip(f PadManip) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.padManip = f
}

// SetMotionManip sets the function that manipulates motion controller polls.
// Can be nil.
func (s *Session) SetMotionManip(f MotionManip) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.motionManip = f
}

// CallPadManip calls the pad manipulation function if there is one.
func (s *Session) CallPadManip(st *inputs.PadStatus, port int) {
	s.crit.Lock()
	f := s.padManip
	s.crit.Unlock()
	if f != nil {
		f(st, port)
	}
}

// CallMotionManip calls the motion manipulation function if there is one.
func (s *Session) CallMotionManip(report []byte, idx int) {
	s.crit.Lock()
	f := s.motionManip
	s.crit.Unlock()
	if f != nil {
		f(report, idx)
	}
}
