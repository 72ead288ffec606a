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

// Error patterns raised by the catalogue package.
const (
	OpenError   = "catalogue: %s: %v"
	StoreError  = "catalogue: %v"
	Closed      = "catalogue: not open"
	NotFound    = "catalogue: %s: no such entry"
	Ambiguous   = "catalogue: %s: matches more than one entry"
	Duplicate   = "catalogue: %s: already catalogued as %s"
	NotArchived = "catalogue: %s: not archived"

	// the movie file is not the movie that was catalogued
	Changed = "catalogue: %s: movie has changed since it was catalogued"
)
