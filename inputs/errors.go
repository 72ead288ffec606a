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

package inputs

// Error patterns raised by the Stream type.
const (
	// reading a record would go beyond the end of the stream
	PrematureEnd = "premature movie end: %d + %d > %d"

	// the size of a motion record in the stream is not the size expected by
	// the live device
	ShapeMismatch = "fatal desync: motion record is %d bytes but device expects %d (byte %d)"

	// a motion report does not fit in a length-prefixed record
	MotionTooLarge = "inputs: motion report too large (%d bytes)"
)
