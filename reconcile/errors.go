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

package reconcile

// Error patterns raised by Check().
const (
	AfterEndShort = "save state is after the end of the movie file (byte %d > %d)"
	AfterEndLong  = "save state is after the end of the current movie (byte %d > %d) (input %d > %d)"
	Mismatch      = "save state movie mismatches on %v"
)
