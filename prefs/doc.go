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

// Package prefs holds the preference values of dtmovie. The Bool, String and
// Int types store their value atomically so they can be read from the
// emulation goroutine while being changed from the host goroutine.
//
// Every type can have a hook that is called before the value is stored and a
// hook that is called after. A pre-hook that returns an error prevents the
// value from being stored.
//
// Values are made persistent by adding them to a Disk instance with a unique
// key. The Disk writes the values as a flat YAML mapping of key to string.
// Keys are dot separated by convention, for example "movie.readOnly".
//
// Values can also be overridden for a single run of the program by a string
// of key/value pairs:
//
//	movie.readOnly::false; movie.author::somebody
//
// See ParseOverrides() for details.
package prefs
