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

package dtm

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// HeaderSize is the number of bytes in an encoded Header.
const HeaderSize = 256

// Magic is the format tag at the start of every DTM file.
var Magic = [4]byte{'D', 'T', 'M', 0x1a}

// Header is the fixed size header of a DTM file. The order and size of the
// fields is the layout of the file and must not be changed.
type Header struct {
	Filetype      [4]byte
	GameID        [6]byte
	IsWii         bool
	Controllers   uint8 // bits 0 to 3 are standard controllers, 4 to 7 are motion controllers
	FromSaveState bool

	FrameCount   uint64
	InputCount   uint64
	LagCount     uint64
	UniqueID     uint64
	NumRerecords uint32

	Author        [32]byte
	VideoBackend  [16]byte
	AudioEmulator [16]byte
	MD5           [16]byte

	RecordingStartTime uint64

	SaveConfig    bool
	SkipIdle      bool
	DualCore      bool
	Progressive   bool
	DSPHLE        bool
	FastDiscSpeed bool
	CPUCore       uint8

	EFBAccessEnable         bool
	EFBCopyEnable           bool
	SkipEFBCopyToRAM        bool
	EFBCopyCacheEnable      bool
	EFBEmulateFormatChanges bool
	ImmediateXFB            bool
	SkipXFBCopyToRAM        bool

	Memcards  uint8
	ClearSave bool
	Bongos    uint8
	SyncGPU   bool
	NetPlay   bool
	PAL60     bool
	Language  uint8
	Reserved3 uint8

	FollowBranch   bool
	UseFMA         bool
	GBAControllers uint8
	Widescreen     bool
	Reserved       [6]byte

	DiscChange  [DiscChangeLen]byte
	Revision    [20]byte
	DSPIROMHash uint32
	DSPCoefHash uint32
	TickCount   uint64
	Reserved2   [11]byte
}

// DiscChangeLen is the maximum length of the filename in a disc change.
const DiscChangeLen = 40

// IsValid returns true if the header starts with the format tag.
func (h Header) IsValid() bool {
	return h.Filetype == Magic
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (h *Header) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	b.Grow(HeaderSize)
	if err := binary.Write(&b, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// format tag is not checked.
func (h *Header) UnmarshalBinary(data []byte) error {
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, h)
}

// cString returns the string in a fixed size field. The string ends at the
// first zero byte.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// putCString copies the string into a fixed size field. The string is
// cropped at a rune boundary if necessary and the remainder of the field is
// zeroed.
func putCString(dst []byte, s string) {
	for len(s) > len(dst) {
		_, sz := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-sz]
	}
	n := copy(dst, s)
	clear(dst[n:])
}

// GameIDString returns the game ID as a string.
func (h Header) GameIDString() string {
	return cString(h.GameID[:])
}

// SetGameID sets the game ID field. Only the first six bytes are used.
func (h *Header) SetGameID(id string) {
	n := copy(h.GameID[:], id)
	clear(h.GameID[n:])
}

// AuthorString returns the author field as a string.
func (h Header) AuthorString() string {
	return cString(h.Author[:])
}

// SetAuthor sets the author field. The string is normalised to NFC form so
// that the same name always produces the same bytes.
func (h *Header) SetAuthor(author string) {
	putCString(h.Author[:], norm.NFC.String(strings.TrimSpace(author)))
}

// DiscChangeString returns the disc change field as a string.
func (h Header) DiscChangeString() string {
	return cString(h.DiscChange[:])
}

// SetDiscChange sets the disc change field. It returns false if the name is
// too long for the field, in which case the field is unchanged.
func (h *Header) SetDiscChange(name string) bool {
	if len(name) > len(h.DiscChange) {
		return false
	}
	n := copy(h.DiscChange[:], name)
	clear(h.DiscChange[n:])
	return true
}

// VideoBackendString returns the video backend field as a string.
func (h Header) VideoBackendString() string {
	return cString(h.VideoBackend[:])
}

// AudioEmulatorString returns the audio emulator field as a string.
func (h Header) AudioEmulatorString() string {
	return cString(h.AudioEmulator[:])
}

// HasMD5 returns true if the MD5 field is not all zero.
func (h Header) HasMD5() bool {
	return h.MD5 != [16]byte{}
}

// PayloadSize returns the size of the input stream in a file of the given
// size.
func PayloadSize(fileSize int64) int64 {
	return max(0, fileSize-HeaderSize)
}
