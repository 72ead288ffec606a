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

// Package checksum verifies the game image of a movie in the background.
//
// When recording, the MD5 of the game image is calculated so that it can be
// stored in the header of the movie when it is saved. When playing back, the
// MD5 of the game image is compared with the value in the movie's header and
// the user is warned if they differ. A difference is never fatal.
//
// The hashing happens in its own goroutine. The result is delivered to a
// one-shot slot that can be polled without blocking. A task that is no longer
// wanted, for example because the movie has ended, is abandoned and its
// result is discarded.
package checksum
