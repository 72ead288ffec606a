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

package headless

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/klauspost/compress/zstd"
)

// Sentinal errors for save state files.
const (
	StateFormatError = "save state: %s: not a save state file"
	StateError       = "save state: %v"
)

var stateMagic = [8]byte{'D', 'T', 'M', 'S', 'T', 'A', 'T', 'E'}

// Snapshotter is a component that contributes to a save state.
type Snapshotter interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// States implements the emulation.SaveStates interface.
type States struct {
	core *Core

	crit  sync.Mutex
	parts map[string]Snapshotter

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewStates is the preferred method of initialisation for the States type.
func NewStates(core *Core) (*States, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, curated.Errorf(StateError, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, curated.Errorf(StateError, err)
	}
	return &States{
		core:  core,
		parts: make(map[string]Snapshotter),
		enc:   enc,
		dec:   dec,
	}, nil
}

// Close releases the resources used by the compressor.
func (st *States) Close() {
	st.enc.Close()
	st.dec.Close()
}

// Register a component with the save state facility. A component registered
// with the same name as an existing component replaces it.
func (st *States) Register(name string, s Snapshotter) {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.parts[name] = s
}

func (st *States) names() []string {
	n := make([]string, 0, len(st.parts))
	for k := range st.parts {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// SaveAs implements the emulation.SaveStates interface.
func (st *States) SaveAs(path string) error {
	var err error
	st.core.RunExclusive(func() {
		var data []byte
		data, err = st.snapshot()
		if err != nil {
			return
		}
		err = os.WriteFile(path, st.enc.EncodeAll(data, nil), 0o644)
	})
	if err != nil {
		return curated.Errorf(StateError, err)
	}
	return nil
}

func (st *States) snapshot() ([]byte, error) {
	st.crit.Lock()
	defer st.crit.Unlock()

	var b bytes.Buffer
	b.Write(stateMagic[:])
	_ = binary.Write(&b, binary.LittleEndian, st.core.Ticks())
	_ = binary.Write(&b, binary.LittleEndian, uint16(len(st.parts)))

	for _, name := range st.names() {
		data, err := st.parts[name].MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		b.WriteByte(byte(len(name)))
		b.WriteString(name)
		_ = binary.Write(&b, binary.LittleEndian, uint32(len(data)))
		b.Write(data)
	}

	return b.Bytes(), nil
}

// Load implements the emulation.SaveStates interface. Parts in the file that
// have not been registered are ignored.
func (st *States) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return curated.Errorf(StateError, err)
	}
	data, err := st.dec.DecodeAll(payload, nil)
	if err != nil {
		return curated.Errorf(StateFormatError, path)
	}

	st.core.RunExclusive(func() {
		err = st.restore(path, data)
	})
	return err
}

func (st *States) restore(path string, data []byte) error {
	st.crit.Lock()
	defer st.crit.Unlock()

	r := bytes.NewReader(data)

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != stateMagic {
		return curated.Errorf(StateFormatError, path)
	}

	var ticks uint64
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &ticks); err != nil {
		return curated.Errorf(StateFormatError, path)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return curated.Errorf(StateFormatError, path)
	}

	parts := make(map[string][]byte, count)
	for i := 0; i < int(count); i++ {
		l, err := r.ReadByte()
		if err != nil {
			return curated.Errorf(StateFormatError, path)
		}
		name := make([]byte, l)
		if _, err := io.ReadFull(r, name); err != nil {
			return curated.Errorf(StateFormatError, path)
		}
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return curated.Errorf(StateFormatError, path)
		}
		if int64(n) > int64(r.Len()) {
			return curated.Errorf(StateFormatError, path)
		}
		p := make([]byte, n)
		if _, err := io.ReadFull(r, p); err != nil {
			return curated.Errorf(StateFormatError, path)
		}
		parts[string(name)] = p
	}

	// the file is well formed. only now is any state changed
	st.core.SetTicks(ticks)
	for _, name := range st.names() {
		p, ok := parts[name]
		if !ok {
			continue
		}
		if err := st.parts[name].UnmarshalBinary(p); err != nil {
			return curated.Errorf(StateError, fmt.Errorf("%s: %w", name, err))
		}
	}

	return nil
}
