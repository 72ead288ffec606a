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
	"github.com/jetsetilly/dtmovie/paths"
	"github.com/jetsetilly/dtmovie/prefs"
)

// the maximum length of the author preference. the author field of the DTM
// header is the same size
const maxAuthorLen = 32

// Preferences for the movie package.
type Preferences struct {
	dsk *prefs.Disk

	// a movie loaded with a save state is played back rather than
	// overwritten
	ReadOnly prefs.Bool

	// the emulation stays paused when a movie ends
	PauseAtEnd prefs.Bool

	// author of new recordings
	Author prefs.String

	// directory of the save state taken when recording starts from a
	// running emulation
	StateSaveDir prefs.String

	// calculate the checksum of the game image when a movie starts
	VerifyChecksum prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the preferences are not associated with
// a file and Load() and Save() do nothing.
func NewPreferences(path string, overrides prefs.Overrides) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	p.dsk.SetOverrides(overrides)

	err = p.dsk.Add("movie.readOnly", &p.ReadOnly)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("movie.pauseAtEnd", &p.PauseAtEnd)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("movie.author", &p.Author)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("movie.stateSaveDir", &p.StateSaveDir)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("movie.verifyChecksum", &p.VerifyChecksum)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.ReadOnly.Set(true)
	_ = p.PauseAtEnd.Set(false)
	p.Author.SetMaxLen(maxAuthorLen)
	_ = p.Author.Set("")
	_ = p.StateSaveDir.Set(paths.ResourcePath("states"))
	_ = p.VerifyChecksum.Set(true)
}

// Load movie preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save current movie preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
