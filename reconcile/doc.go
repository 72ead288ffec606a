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

// Package reconcile checks that the input stream of a movie loaded alongside
// a save state agrees with the input stream already held by the session.
//
// When a save state is loaded during a movie, the save state brings with it a
// cursor into the input stream and the movie that was active when the state
// was saved. If the session is writable the loaded movie simply replaces the
// session's stream. If the session is read-only, the session's stream must
// agree with the loaded stream up to the cursor, otherwise the save state
// belongs to a different history and playback will desync.
//
// The checks, in order of priority, are:
//
//  1. AfterEndShort. The cursor is beyond the end of the loaded stream.
//  2. AfterEndLong. The session is read-only and the cursor is beyond the end
//     of the session's stream.
//  3. Mismatch. The first cursor bytes of the two streams differ.
//
// The first two end the movie. A mismatch is a warning and the session's
// stream remains authoritative.
package reconcile
