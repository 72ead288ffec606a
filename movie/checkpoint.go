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
	"fmt"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/paths"
	"github.com/jetsetilly/dtmovie/reconcile"
)

// Checkpoint is the part of a session that is stored in a save state. The
// totals of the movie are not part of the checkpoint. They are taken from the
// movie that is loaded with LoadInput() after the save state is loaded.
type Checkpoint struct {
	CurrentFrame    uint64
	Cursor          uint64
	CurrentLag      uint64
	CurrentInput    uint64
	Polled          bool
	TickAtLastInput uint64
}

// CheckpointSize is the size of an encoded Checkpoint.
var CheckpointSize = binary.Size(Checkpoint{})

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (c Checkpoint) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	if err := binary.Write(&b, binary.LittleEndian, c); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (c *Checkpoint) UnmarshalBinary(data []byte) error {
	if len(data) != CheckpointSize {
		return fmt.Errorf("movie: checkpoint is %d bytes, expected %d", len(data), CheckpointSize)
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, c)
}

// Checkpoint returns the current checkpoint of the session.
func (s *Session) Checkpoint() Checkpoint {
	s.crit.Lock()
	defer s.crit.Unlock()
	return Checkpoint{
		CurrentFrame:    s.currentFrame,
		Cursor:          uint64(s.stream.Cursor()),
		CurrentLag:      s.currentLag,
		CurrentInput:    s.currentInput,
		Polled:          s.polled,
		TickAtLastInput: s.tickAtLastInput,
	}
}

// RestoreCheckpoint puts the session back to the checkpoint. The cursor can be
// beyond the end of the input stream after restoration. LoadInput() will end
// the movie in that case.
func (s *Session) RestoreCheckpoint(c Checkpoint) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.currentFrame = c.CurrentFrame
	s.stream.Seek(int(c.Cursor))
	s.currentLag = c.CurrentLag
	s.currentInput = c.CurrentInput
	s.polled = c.Polled
	s.tickAtLastInput = c.TickAtLastInput
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// checkpoint of the session is marshalled.
func (s *Session) MarshalBinary() ([]byte, error) {
	return s.Checkpoint().MarshalBinary()
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// session is restored to the checkpoint in the data.
func (s *Session) UnmarshalBinary(data []byte) error {
	var c Checkpoint
	if err := c.UnmarshalBinary(data); err != nil {
		return err
	}
	s.RestoreCheckpoint(c)
	return nil
}

// SaveState saves the state of the emulation to path. If a movie is active
// then the movie is saved alongside the save state.
func (s *Session) SaveState(path string) error {
	if s.states == nil {
		return curated.Errorf(NoSaveStates)
	}
	if err := s.states.SaveAs(path); err != nil {
		return err
	}
	if s.IsActive() {
		return s.SaveRecording(paths.StateMoviePath(path))
	}
	return nil
}

// LoadState loads the save state at path. If a movie is active then the
// session is reattached to the movie saved alongside the save state with
// LoadInput().
func (s *Session) LoadState(path string) (reconcile.Result, error) {
	if s.states == nil {
		return reconcile.Result{}, curated.Errorf(NoSaveStates)
	}
	if err := s.states.Load(path); err != nil {
		return reconcile.Result{}, err
	}
	if s.IsActive() {
		return s.LoadInput(paths.StateMoviePath(path))
	}
	return reconcile.Result{}, nil
}
