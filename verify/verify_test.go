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

package verify_test

import (
	"context"
	"crypto/md5"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/test"
	"github.com/jetsetilly/dtmovie/verify"
)

func padMovie(t *testing.T, path string, n int, extra []byte, sum [16]byte) {
	t.Helper()

	var d inputs.Devices
	d.Pads[0] = inputs.GC

	var h dtm.Header
	h.SetGameID("GALE01")
	h.SetDevices(d)
	h.FrameCount = uint64(n)
	h.InputCount = uint64(n)
	h.TickCount = 1 << 40
	h.MD5 = sum

	var payload []byte
	for i := 0; i < n; i++ {
		p := inputs.PadState{A: i%2 == 0, AnalogStickX: uint8(i), IsConnected: true}
		b := p.Encode()
		payload = append(payload, b[:]...)
	}
	payload = append(payload, extra...)

	test.DemandSuccess(t, dtm.WriteFile(path, h, payload))
}

func TestPadMovie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.dtm")
	padMovie(t, path, 25, nil, [16]byte{})

	res := verify.Movie(context.Background(), path, verify.Options{})
	test.DemandSuccess(t, res.Err)
	test.ExpectSuccess(t, res.Succeeded())
	test.ExpectEquality(t, res.Records, 25)
	test.ExpectEquality(t, res.Frames, uint64(25))
	test.ExpectEquality(t, res.Desync, "")
	test.ExpectInequality(t, res.Digest, "")

	// the digest depends only on the records
	again := verify.Movie(context.Background(), path, verify.Options{})
	test.ExpectEquality(t, again.Digest, res.Digest)
}

func TestPrematureEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premature.dtm")
	padMovie(t, path, 3, []byte{1, 2, 3}, [16]byte{})

	res := verify.Movie(context.Background(), path, verify.Options{})
	test.DemandSuccess(t, res.Err)
	test.ExpectFailure(t, res.Succeeded())
	test.ExpectEquality(t, res.Records, 3)
	test.ExpectInequality(t, res.Desync, "")
	test.ExpectEquality(t, len(res.Problems), 1)
}

func TestMotionMovie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion.dtm")

	var d inputs.Devices
	d.Motion[0] = true

	var h dtm.Header
	h.SetGameID("RMCE01")
	h.IsWii = true
	h.SetDevices(d)
	h.InputCount = 3
	h.TickCount = 1 << 40

	payload := []byte{
		2, 0xaa, 0xbb,
		4, 1, 2, 3, 4,
		2, 0xcc, 0xdd,
	}
	test.DemandSuccess(t, dtm.WriteFile(path, h, payload))

	res := verify.Movie(context.Background(), path, verify.Options{})
	test.DemandSuccess(t, res.Err)
	test.ExpectSuccess(t, res.Succeeded())
	test.ExpectEquality(t, res.Records, 3)
	test.ExpectEquality(t, res.Frames, uint64(3))
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()

	image := filepath.Join(dir, "game.iso")
	data := []byte("a game image that is not very large")
	test.DemandSuccess(t, os.WriteFile(image, data, 0o644))

	good := filepath.Join(dir, "good.dtm")
	padMovie(t, good, 5, nil, md5.Sum(data))

	bad := filepath.Join(dir, "bad.dtm")
	padMovie(t, bad, 5, nil, md5.Sum([]byte("another game")))

	none := filepath.Join(dir, "none.dtm")
	padMovie(t, none, 5, nil, [16]byte{})

	res := verify.Movie(context.Background(), good, verify.Options{Game: image})
	test.DemandSuccess(t, res.Err)
	test.DemandSuccess(t, res.Checksum != nil)
	test.ExpectSuccess(t, res.Checksum.Match)
	test.ExpectSuccess(t, res.Succeeded())

	res = verify.Movie(context.Background(), bad, verify.Options{Game: image})
	test.DemandSuccess(t, res.Err)
	test.DemandSuccess(t, res.Checksum != nil)
	test.ExpectFailure(t, res.Checksum.Match)
	test.ExpectFailure(t, res.Succeeded())

	res = verify.Movie(context.Background(), none, verify.Options{Game: image})
	test.ExpectFailure(t, res.Succeeded())
	test.ExpectEquality(t, res.Checksum == nil, true)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i, extra := range [][]byte{nil, nil, {0xff}} {
		path := filepath.Join(dir, string(rune('a'+i))+".dtm")
		padMovie(t, path, 10+i, extra, [16]byte{})
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(dir, "missing.dtm"))

	w := &test.CompareWriter{}
	results, err := verify.Run(context.Background(), w, paths, verify.Options{Jobs: 2})
	test.ExpectSuccess(t, curated.Is(err, verify.Failures))
	test.DemandEquality(t, len(results), 4)
	test.ExpectSuccess(t, results[0].Succeeded())
	test.ExpectSuccess(t, results[1].Succeeded())
	test.ExpectFailure(t, results[2].Succeeded())
	test.ExpectFailure(t, results[3].Succeeded())
	test.ExpectSuccess(t, w.Contains("succeed: "+paths[0]))
	test.ExpectSuccess(t, w.Contains("failure: "+paths[3]))
	test.ExpectSuccess(t, w.Contains("verify: 2 succeed, 2 fail, 0 skipped\n"))

	w.Clear()
	_, err = verify.Run(context.Background(), w, paths[:2], verify.Options{})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, w.Contains("verify: 2 succeed, 0 fail, 0 skipped\n"))
}
