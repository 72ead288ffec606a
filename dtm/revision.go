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
	"encoding/hex"
)

// RevisionBytes converts a source revision into the form stored in the
// header. A revision made of an even number of hex digits is packed into
// bytes. Anything else is copied as it is. In both cases the result is
// cropped to the size of the field.
func RevisionBytes(revision string) [20]byte {
	var r [20]byte

	if len(revision)%2 == 0 {
		if b, err := hex.DecodeString(revision); err == nil {
			copy(r[:], b)
			return r
		}
	}

	copy(r[:], revision)
	return r
}

// RevisionString returns the revision field as a hex string. Trailing zero
// bytes are not included.
func (h Header) RevisionString() string {
	n := len(h.Revision)
	for n > 0 && h.Revision[n-1] == 0 {
		n--
	}
	return hex.EncodeToString(h.Revision[:n])
}
