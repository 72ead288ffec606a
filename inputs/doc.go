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

// Package inputs is the codec for the input records of a movie. Every time an
// emulated device is polled, one record is appended to the input stream when
// recording and one record is consumed from it when playing back.
//
// There are two kinds of record. A pad record is always PadRecordSize bytes
// and holds the state of a standard controller. A motion record is a single
// length byte followed by that many bytes of raw report data from a motion
// controller.
//
// Records carry no device identifier. The position of a record in the stream
// is the only thing that associates it with a device and so the order in
// which devices are polled during playback must be the same as the order in
// which they were polled during recording.
//
// The Layout type is a decode table derived from the devices taking part in a
// movie. It is created once when a session starts and is used to translate
// stream offsets into frame numbers for diagnostic purposes.
package inputs
