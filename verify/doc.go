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

// Package verify replays movie files through a headless emulation and reports
// whether the input stream of each movie can be played back from start to
// finish. Movies are verified concurrently.
//
// A movie fails verification if the input stream ends part way through a
// record, if a motion record is not the size expected, if the size of the
// input stream disagrees with the header, or if the checksum of a game image
// supplied with the Game option does not match the movie.
package verify
