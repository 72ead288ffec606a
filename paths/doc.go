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

// Package paths contains functions to prepare paths to dtmovie resources and
// to the files that accompany a movie.
//
// The ResourcePath() function prepends the supplied resource with the base
// resource directory. If the base resource directory, ".dtmovie", is present
// in the current directory then that is used. Otherwise the user's config
// directory is used, as returned by os.UserConfigDir(). For example:
//
//	d := paths.ResourcePath("catalogue")
//
// On a modern Linux system the path returned will be:
//
//	/home/user/.config/dtmovie/catalogue
package paths
