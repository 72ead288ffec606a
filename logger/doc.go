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

// Package logger is the central logging facility for dtmovie. Log entries are
// a tag and a detail. Consecutive identical entries are folded into a single
// entry with a repeat count and the log holds at most a fixed number of
// entries, the oldest being discarded first.
//
// Logging is gated by the Permission interface. The Allow value always
// permits logging. Other implementations let a package decide at the moment of
// logging whether the entry is wanted. For example, a movie session used by
// the verify command does not log unless the quiet flag is cleared.
//
// The package level functions operate on a central logger. Independent
// instances can be created with NewLogger(), which is useful in tests.
package logger
