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

package digest

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Payload returns the xxhash fingerprint of a movie payload.
func Payload(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Inputs implements the Digest interface for a sequence of input records.
// Each record is hashed with the record's length so that the boundaries
// between records contribute to the result.
type Inputs struct {
	h       *xxhash.Digest
	records int
}

// NewInputs is the preferred method of initialisation for the Inputs type.
func NewInputs() *Inputs {
	return &Inputs{h: xxhash.New()}
}

// Add a record to the digest.
func (dig *Inputs) Add(record []byte) {
	var l [2]byte
	binary.LittleEndian.PutUint16(l[:], uint16(len(record)))
	dig.h.Write(l[:])
	dig.h.Write(record)
	dig.records++
}

// Records returns the number of records added since the last reset.
func (dig *Inputs) Records() int {
	return dig.records
}

// Hash implements the Digest interface.
func (dig *Inputs) Hash() string {
	return fmt.Sprintf("%016x", dig.h.Sum64())
}

// ResetDigest implements the Digest interface.
func (dig *Inputs) ResetDigest() {
	dig.h.Reset()
	dig.records = 0
}
