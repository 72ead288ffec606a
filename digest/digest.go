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

// Package digest contains the hashing primitives used by dtmovie.
//
// The MD5 of the game image is what a DTM file records in its header and is
// checked when a movie is played. The function MD5File() takes a context so
// that a background verification can be abandoned part way through a large
// image.
//
// Firmware images are identified in the DTM header by an Adler-32 checksum.
//
// The Inputs type implements the Digest interface and produces a running
// xxhash of the input records passing through a session. Two runs of the same
// movie that produce the same digest consumed exactly the same input. The
// Payload() function is a one-shot fingerprint of a movie's payload and is
// used by the catalogue to find duplicate recordings.
package digest

// Digest implementations return a hash of everything seen since the last call
// to ResetDigest().
type Digest interface {
	Hash() string
	ResetDigest()
}
