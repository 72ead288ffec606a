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

// Package userinput translates keystrokes from a terminal into the status of
// a standard controller. It is used when recording a movie without a
// graphical interface.
//
// A terminal only reports that a key has been typed and never that it has
// been released. A typed key is therefore held for a number of frames before
// it is released automatically.
//
// Keys are mapped as follows:
//
//	cursor keys    D-pad
//	i j k l        main stick (up, left, down, right)
//	z x c v        A B X Y
//	a s d          L R Z
//	return         Start
//	R              reset the console
//	q or ctrl-c    stop recording
package userinput
