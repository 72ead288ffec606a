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

package verify

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/jetsetilly/dtmovie/checksum"
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/emulation/headless"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/logger"
	"github.com/jetsetilly/dtmovie/metrics"
	"github.com/jetsetilly/dtmovie/movie"
	"github.com/jetsetilly/dtmovie/notifications"
	"golang.org/x/sync/errgroup"
)

// Options for Movie() and Run().
type Options struct {
	// path to a game image. if not empty the checksum of the image is compared
	// with the checksum recorded in the movie
	Game string

	// the number of movies verified at the same time. a value of zero or less
	// means one per CPU
	Jobs int

	// stop verifying after the first movie that fails
	FailFast bool

	Metrics *metrics.Metrics
}

// Result of verifying a single movie.
type Result struct {
	Path   string
	Header dtm.Header

	// number of records played back and the number of frames emulated
	Records int
	Frames  uint64

	// digest of the records played back
	Digest string

	// disagreements between the header and the input stream
	Problems []string

	// the reason playback stopped early
	Desync string

	// the result of the checksum comparison. nil if no game image was
	// supplied
	Checksum *checksum.Result

	Err error
}

// Succeeded returns true if the movie passed verification.
func (res Result) Succeeded() bool {
	if res.Err != nil || res.Desync != "" || len(res.Problems) > 0 {
		return false
	}
	return res.Checksum == nil || res.Checksum.Match
}

func (res Result) String() string {
	return fmt.Sprintf("%s [%s, %d records, %d frames, %s]", res.Path,
		res.Header.GameIDString(), res.Records, res.Frames, res.Digest)
}

// reason returns the first reason for a failure.
func (res Result) reason() string {
	switch {
	case res.Err != nil:
		return res.Err.Error()
	case res.Desync != "":
		return res.Desync
	case len(res.Problems) > 0:
		return res.Problems[0]
	case res.Checksum != nil && !res.Checksum.Match:
		if res.Checksum.Err != nil {
			return res.Checksum.Err.Error()
		}
		return "checksum does not match"
	}
	return ""
}

// checkSize compares the header with the size of the input stream.
func checkSize(h dtm.Header, payload []byte) []string {
	var problems []string

	d := h.Devices()
	if !d.Any() {
		problems = append(problems, "no devices in movie")
		return problems
	}

	layout := inputs.NewLayout(d)
	if n := layout.Records(len(payload)); n >= 0 {
		if len(payload)%inputs.PadRecordSize != 0 {
			problems = append(problems, fmt.Sprintf("input stream is not a whole number of records (%d bytes)", len(payload)))
		}
		if uint64(n) != h.InputCount {
			problems = append(problems, fmt.Sprintf("input count in header is %d but there are %d records", h.InputCount, n))
		}
	}

	return problems
}

// the leading part of an error pattern
func patternPrefix(pattern string) string {
	return strings.SplitN(pattern, ":", 2)[0]
}

// poll every device in the movie once
func poll(s *movie.Session, d inputs.Devices) {
	for port := range d.Pads {
		if d.UsingPad(port) {
			var st inputs.PadStatus
			s.PollPad(port, &st)
		}
	}
	for idx := range d.Motion {
		if d.UsingMotion(idx) {
			if n, ok := s.PeekMotionSize(); ok {
				s.PollMotion(idx, make([]byte, n))
			}
		}
	}
	s.FrameUpdate()
}

// Movie verifies a single movie.
func Movie(ctx context.Context, path string, opts Options) Result {
	res := Result{Path: path}

	h, payload, err := dtm.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Header = h
	res.Problems = checkSize(h, payload)

	core := headless.NewCore(emulation.Game{ID: h.GameIDString(), IsWii: h.IsWii, Path: opts.Game})

	states, err := headless.NewStates(core)
	if err != nil {
		res.Err = err
		return res
	}
	defer states.Close()

	prefs, err := movie.NewPreferences("", nil)
	if err != nil {
		res.Err = err
		return res
	}
	_ = prefs.PauseAtEnd.Set(true)
	_ = prefs.VerifyChecksum.Set(opts.Game != "" && h.HasMD5())

	sink := &notifications.Recorder{}

	s, err := movie.NewSession(movie.Config{
		Core:        core,
		Environment: headless.NewEnvironment(),
		States:      states,
		Sink:        sink,
		Prefs:       prefs,
		Metrics:     opts.Metrics,
	})
	if err != nil {
		res.Err = err
		return res
	}
	defer s.Close()
	states.Register("movie", s)

	if err := s.PlayInput(path); err != nil {
		res.Err = err
		return res
	}

	core.Boot()
	if err := s.Init(); err != nil {
		res.Err = err
		return res
	}

	if opts.Game != "" {
		if h.HasMD5() {
			cs, err := s.WaitChecksum(ctx)
			if err != nil {
				res.Err = err
				return res
			}
			res.Checksum = &cs
		} else {
			res.Problems = append(res.Problems, "movie has no checksum")
		}
	}

	d := h.Devices()

	// every frame consumes at least one byte
	limit := uint64(len(payload)) + 1

	for s.IsPlaying() {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		if res.Frames > limit {
			res.Err = curated.Errorf(RunawayError, res.Frames)
			return res
		}

		core.Frame(func() {
			poll(s, d)
		})
		res.Frames++
	}

	res.Digest, res.Records = s.InputDigest()

	premature := patternPrefix(inputs.PrematureEnd)
	shape := patternPrefix(inputs.ShapeMismatch)
	for _, m := range sink.Messages {
		if strings.Contains(m, premature) || strings.Contains(m, shape) {
			res.Desync = m
			break
		}
	}

	logger.Logf(logger.Allow, "verify", "%s: %d records in %d frames", path, res.Records, res.Frames)

	return res
}

// Run verifies every movie and writes a line for each movie to output,
// followed by a summary. An error is returned if any movie fails.
func Run(ctx context.Context, output io.Writer, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))
	done := make([]bool, len(paths))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = Movie(gctx, path, opts)
			done[i] = true
			if opts.FailFast && !results[i].Succeeded() {
				return fmt.Errorf("%s: %s", path, results[i].reason())
			}
			return nil
		})
	}

	// the error is the first failure and is reported with the others below
	_ = g.Wait()

	numSucceed := 0
	numFail := 0
	numSkipped := 0

	for i, res := range results {
		switch {
		case !done[i]:
			numSkipped++
		case res.Succeeded():
			numSucceed++
			fmt.Fprintf(output, "succeed: %s\n", res)
		default:
			numFail++
			fmt.Fprintf(output, "failure: %s: %s\n", res.Path, res.reason())
		}
	}

	fmt.Fprintf(output, "verify: %d succeed, %d fail, %d skipped\n", numSucceed, numFail, numSkipped)

	if numFail > 0 {
		return results, curated.Errorf(Failures, numFail, len(paths))
	}
	return results, nil
}
