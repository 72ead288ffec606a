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

// Package dtm reads and writes DTM files. A DTM file is a fixed size header
// followed immediately by the input stream of the movie. The size of the
// input stream is the size of the file minus the size of the header.
//
// The header is HeaderSize bytes of packed little-endian fields. It is
// represented by the Header type and is read and written with the
// encoding/binary package, the Header type having no padding.
//
// The Fingerprint type is the subset of the header that describes the
// environment of the emulator at the time of recording. A movie is only
// guaranteed to play back correctly in the same environment.
//
// Writing a DTM file for a movie that started from a save state also needs
// the save state to be copied to the companion path. See the paths package
// for CompanionPath().
package dtm
