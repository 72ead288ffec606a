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

// Package catalogue is a store of movie files. Entries record the header
// details of a movie and where the movie file was found. An entry can be
// archived, in which case a compressed copy of the movie file is kept in the
// catalogue and can be restored later, even if the original file has gone.
//
// Use of a catalogue requires opening a session. For example (error handling
// removed for clarity):
//
//	cat, _ := catalogue.Open(dbPath)
//	defer cat.Close()
//
//	ent, _ := cat.Add("mario.dtm")
//	_, _ = cat.Archive(ent.ID.String())
//
// An empty path opens a catalogue that exists only in memory.
//
// Entries are referred to by ID. Any unique prefix of the ID string is
// accepted by the functions that take an ID argument.
package catalogue
