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

// Sentinal error patterns returned by the movie package.
const (
	GameMismatch   = "movie: the recorded game (%s) is not the same as the selected game (%s)"
	ActiveError    = "movie: a movie is already %v"
	NoDevicesError = "movie: no devices to record"
	LoadError      = "movie: save state movie: %v"
	SaveError      = "movie: %s: %v"
	NoSaveStates   = "movie: no save state facility"
)
