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

// Error patterns raised by the dtm package.
const (
	// the file does not start with the format tag
	FormatError = "dtm: %s: not a movie file"

	// the file is too short to contain a header
	TruncatedError = "dtm: %s: truncated header (%d bytes)"

	// reading or writing the file failed
	IOError = "dtm: %v"
)
