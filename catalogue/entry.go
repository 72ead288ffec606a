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

package catalogue

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is the catalogue record of a single movie file.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Source string    `json:"source"`
	Added  time.Time `json:"added"`

	GameID    string `json:"gameID"`
	Author    string `json:"author,omitempty"`
	Frames    uint64 `json:"frames"`
	Lag       uint64 `json:"lag"`
	Inputs    uint64 `json:"inputs"`
	Rerecords uint32 `json:"rerecords"`

	// length and xxhash fingerprint of the input stream
	Size        int    `json:"size"`
	Fingerprint uint64 `json:"fingerprint"`

	Archived     bool `json:"archived"`
	ArchivedSize int  `json:"archivedSize,omitempty"`
}

// ShortID is the first eight characters of the ID.
func (ent Entry) ShortID() string {
	return ent.ID.String()[:8]
}

func (ent Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s %-6s %s", ent.ShortID(), ent.GameID, ent.Name))
	s.WriteString(fmt.Sprintf(" [%d frames, %d inputs, %d rerecords]", ent.Frames, ent.Inputs, ent.Rerecords))
	if ent.Author != "" {
		s.WriteString(fmt.Sprintf(" by %s", ent.Author))
	}
	if ent.Archived {
		s.WriteString(fmt.Sprintf(" (archived %d bytes)", ent.ArchivedSize))
	}
	return s.String()
}
