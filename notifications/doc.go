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

// Package notifications is how the movie engine tells the user about events
// that happen outside of a direct request. For example, reaching the end of a
// movie during playback or a change of mode after a save state is loaded.
//
// Notifications are short messages shown for a duration by whatever
// presentation layer is attached. The Sink interface is implemented by the
// presentation layer. The Logged sink forwards messages to the central
// logger and is used when there is no presentation layer.
package notifications
