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

package dtm

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jetsetilly/dtmovie/inputs"
)

func describeDevices(d inputs.Devices) string {
	var s []string
	for i, p := range d.Pads {
		if p != inputs.None {
			s = append(s, fmt.Sprintf("port%d=%s", i+1, p))
		}
	}
	for i, m := range d.Motion {
		if m {
			s = append(s, fmt.Sprintf("motion%d", i+1))
		}
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, " ")
}

// Describe writes a human readable description of the header. The length of
// the input stream is used to summarise the payload.
func (h Header) Describe(w io.Writer, payloadLen int) {
	field := func(name string, format string, args ...any) {
		fmt.Fprintf(w, "%-16s %s\n", name+":", fmt.Sprintf(format, args...))
	}

	platform := "GameCube"
	if h.IsWii {
		platform = "Wii"
	}

	field("game", "%s (%s)", h.GameIDString(), platform)
	field("author", "%s", h.AuthorString())
	field("devices", "%s", describeDevices(h.Devices()))
	if h.Bongos != 0 {
		field("bongos", "%04b", h.Bongos)
	}
	field("frames", "%d (%d lag)", h.FrameCount, h.LagCount)
	field("inputs", "%d", h.InputCount)
	field("ticks", "%d", h.TickCount)
	field("rerecords", "%d", h.NumRerecords)
	field("started", "%s", time.Unix(int64(h.RecordingStartTime), 0).UTC().Format(time.RFC3339))
	field("save state", "%v", h.FromSaveState)
	if h.HasMD5() {
		field("md5", "%x", h.MD5)
	} else {
		field("md5", "none")
	}
	if h.DiscChangeString() != "" {
		field("disc change", "%s", h.DiscChangeString())
	}
	field("revision", "%s", h.RevisionString())
	field("netplay", "%v", h.NetPlay)
	field("memcards", "%02b", h.Memcards)

	if h.SaveConfig {
		field("video", "%s", h.VideoBackendString())
		field("audio", "%s", h.AudioEmulatorString())
		field("cpu core", "%d", h.CPUCore)
		field("dsp hle", "%v", h.DSPHLE)
		if !h.DSPHLE {
			field("dsp firmware", "irom=%08x coef=%08x", h.DSPIROMHash, h.DSPCoefHash)
		}
	} else {
		field("config", "not saved")
	}

	l := inputs.NewLayout(h.Devices())
	if n := l.Records(payloadLen); n >= 0 {
		field("payload", "%d bytes (%d pad records)", payloadLen, n)
		if payloadLen%inputs.PadRecordSize != 0 {
			field("warning", "payload is not a whole number of pad records")
		}
	} else {
		field("payload", "%d bytes", payloadLen)
	}
}
