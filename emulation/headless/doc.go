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

// Package headless is an in-process implementation of the emulation
// interfaces. There is no emulated hardware. Frames are advanced by the
// caller with Frame(), which advances the tick counter and calls a poll
// function inside the exclusive execution barrier, which is what a real
// emulator does when it polls its controllers.
//
// The save states created by the States type contain the tick counter and
// the binary snapshot of any registered component. They are compressed with
// zstd.
package headless
