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
	"fmt"

	"github.com/jetsetilly/dtmovie/curated"
)

// Stream is an input stream and a cursor into it. Recording appends records
// at the cursor, discarding anything that follows it. Playback consumes the
// record at the cursor.
//
// The cursor is never beyond the end of the stream except after a call to
// Seek(), which is used when restoring a save state and which is followed by
// a reconciliation that ends the movie if the cursor is out of range.
type Stream struct {
	buf    []byte
	cursor int
}

// NewStream returns a Stream over the data with the cursor at the start. The
// data is not copied.
func NewStream(data []byte) *Stream {
	return &Stream{buf: data}
}

// Bytes returns the underlying data. The returned slice must not be modified.
func (s *Stream) Bytes() []byte {
	return s.buf
}

// Len returns the number of bytes in the stream.
func (s *Stream) Len() int {
	return len(s.buf)
}

// Cursor returns the offset of the next record.
func (s *Stream) Cursor() int {
	return s.cursor
}

// Seek moves the cursor. Values beyond the end of the stream are allowed.
func (s *Stream) Seek(offset int) {
	s.cursor = max(0, offset)
}

// Remaining returns the number of bytes after the cursor.
func (s *Stream) Remaining() int {
	return max(0, len(s.buf)-s.cursor)
}

// AtEnd returns true if there are no more bytes to consume.
func (s *Stream) AtEnd() bool {
	return s.cursor >= len(s.buf)
}

// Replace the data of the stream. The cursor is unchanged.
func (s *Stream) Replace(data []byte) {
	s.buf = data
}

// Reset empties the stream and moves the cursor to the start.
func (s *Stream) Reset() {
	s.buf = s.buf[:0]
	s.cursor = 0
}

// Append a record at the cursor, truncating the stream first. The cursor is
// moved to the end of the new record.
func (s *Stream) Append(r Record) error {
	b := s.buf[:min(s.cursor, len(s.buf))]
	b, err := r.Append(b)
	if err != nil {
		return err
	}
	s.buf = b
	s.cursor = len(b)
	return nil
}

// AppendPad is a convenience function for appending a pad record.
func (s *Stream) AppendPad(p PadState) {
	// a pad record can always be encoded
	_ = s.Append(PadRecord(p))
}

// AppendMotion is a convenience function for appending a motion record.
func (s *Stream) AppendMotion(data []byte) error {
	return s.Append(MotionRecord(data))
}

// NextPad consumes a pad record. A PrematureEnd error is returned if there are
// not enough bytes. The cursor is not moved in that case.
func (s *Stream) NextPad() (PadState, error) {
	if s.cursor+PadRecordSize > len(s.buf) {
		return PadState{}, curated.Errorf(PrematureEnd, s.cursor, PadRecordSize, len(s.buf))
	}
	p := DecodePad(s.buf[s.cursor:])
	s.cursor += PadRecordSize
	return p, nil
}

// NextMotion consumes a motion record of the expected size. A PrematureEnd
// error is returned if there are not enough bytes and a ShapeMismatch error
// is returned if the length prefix is not the expected size. The cursor is
// not moved if there is an error.
//
// The returned slice refers to the stream's data and must not be modified.
func (s *Stream) NextMotion(expected int) ([]byte, error) {
	if s.cursor+1 > len(s.buf) {
		return nil, curated.Errorf(PrematureEnd, s.cursor, 1, len(s.buf))
	}

	size := int(s.buf[s.cursor])
	if size != expected {
		return nil, curated.Errorf(ShapeMismatch, size, expected, s.cursor)
	}

	if s.cursor+1+size > len(s.buf) {
		return nil, curated.Errorf(PrematureEnd, s.cursor+1, size, len(s.buf))
	}

	data := s.buf[s.cursor+1 : s.cursor+1+size]
	s.cursor += 1 + size
	return data, nil
}

// Next consumes a record of the specified kind. For motion records the
// expected size must be given.
func (s *Stream) Next(kind Kind, expected int) (Record, error) {
	switch kind {
	case KindPad:
		p, err := s.NextPad()
		return PadRecord(p), err
	case KindMotion:
		m, err := s.NextMotion(expected)
		return MotionRecord(m), err
	}
	return Record{}, fmt.Errorf("inputs: unknown record kind (%d)", kind)
}
