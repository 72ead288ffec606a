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

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/emulation/headless"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/jetsetilly/dtmovie/metrics"
	"github.com/jetsetilly/dtmovie/movie"
	"github.com/jetsetilly/dtmovie/userinput"
	"github.com/pkg/term"
	"github.com/spf13/cobra"
)

const ttyPath = "/dev/tty"

type recordOptions struct {
	*rootOptions
	gameID string
	wii    bool
	image  string
	frames int
	fps    float64
	hold   int
	author string
}

func newRecordCommand(root *rootOptions) *cobra.Command {
	opts := &recordOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "record <file>",
		Short: "record a movie from keys typed at the terminal",
		Long: `Record a movie for a standard controller in port 1.

  z x c v     A B X Y
  a s d       L R Z
  enter       Start
  cursor      D-pad
  i k j l     main stick
  R           reset
  q ctrl-c    stop recording`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), cmd.ErrOrStderr(), args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.gameID, "game-id", "", "six character ID of the game")
	flags.BoolVar(&opts.wii, "wii", false, "the game is a Wii game")
	flags.StringVar(&opts.image, "game", "", "game image. the checksum is stored in the movie")
	flags.IntVar(&opts.frames, "frames", 0, "stop after the number of frames (default is until stopped)")
	flags.Float64Var(&opts.fps, "fps", 60, "frames per second")
	flags.IntVar(&opts.hold, "hold", userinput.DefaultHold, "number of frames a typed key is held for")
	flags.StringVar(&opts.author, "author", "", "author of the movie (default is the movie.author preference)")
	_ = cmd.MarkFlagRequired("game-id")

	return cmd
}

func (opts *recordOptions) run(ctx context.Context, output io.Writer, path string) error {
	if len(opts.gameID) != 6 {
		return fmt.Errorf("%w: game ID must be six characters", errFlags)
	}
	if opts.fps <= 0 {
		return fmt.Errorf("%w: frames per second must be positive", errFlags)
	}
	if opts.author != "" {
		if err := opts.prefs.Author.Set(opts.author); err != nil {
			return err
		}
	}
	if opts.image == "" {
		if err := opts.prefs.VerifyChecksum.Set(false); err != nil {
			return err
		}
	}

	rec, err := newRecording(emulation.Game{ID: opts.gameID, IsWii: opts.wii, Path: opts.image}, opts.prefs, opts.reg)
	if err != nil {
		return err
	}
	defer rec.close()

	t, err := term.Open(ttyPath, term.RawMode)
	if err != nil {
		return err
	}
	defer func() {
		_ = t.Restore()
		_ = t.Close()
	}()

	done := make(chan struct{})
	defer close(done)

	keys := make(chan []byte)
	go func() {
		defer close(keys)
		for {
			b := make([]byte, 16)
			n, err := t.Read(b)
			if err != nil {
				return
			}
			select {
			case keys <- b[:n]:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / opts.fps))
	defer ticker.Stop()

	fmt.Fprintf(output, "recording %s. press q to stop\r\n", opts.gameID)

	every := uint64(opts.fps)
	if every == 0 {
		every = 1
	}

	n := rec.loop(ctx, keys, ticker.C, userinput.NewKeyboard(opts.hold), opts.frames, func(n uint64) {
		if n%every == 0 {
			fmt.Fprintf(output, "\rframe %d", n)
		}
	})

	if err := rec.session.SaveRecording(path); err != nil {
		return err
	}
	fmt.Fprintf(output, "\r\n%d frames recorded to %s\r\n", n, path)

	return nil
}

// recording is a headless emulation recording the standard controller in
// port 0.
type recording struct {
	core    *headless.Core
	states  *headless.States
	session *movie.Session
}

func newRecording(game emulation.Game, prefs *movie.Preferences, m *metrics.Metrics) (*recording, error) {
	rec := &recording{core: headless.NewCore(game)}

	var err error
	rec.states, err = headless.NewStates(rec.core)
	if err != nil {
		return nil, err
	}

	rec.session, err = movie.NewSession(movie.Config{
		Core:        rec.core,
		Environment: headless.NewEnvironment(),
		States:      rec.states,
		Prefs:       prefs,
		Metrics:     m,
	})
	if err != nil {
		rec.states.Close()
		return nil, err
	}
	rec.states.Register("movie", rec.session)

	var d inputs.Devices
	d.Pads[0] = inputs.GC
	if err := rec.session.BeginRecordingInput(d); err != nil {
		rec.close()
		return nil, err
	}

	rec.core.Boot()
	if err := rec.session.Init(); err != nil {
		rec.close()
		return nil, err
	}

	return rec, nil
}

func (rec *recording) close() {
	rec.session.Close()
	rec.states.Close()
}

// loop emulates a frame for every tick until the number of frames is reached,
// the keyboard asks to quit or the context is cancelled. A frames value of
// zero means no limit. Returns the number of frames emulated.
func (rec *recording) loop(ctx context.Context, keys <-chan []byte, tick <-chan time.Time,
	kb *userinput.Keyboard, frames int, progress func(uint64)) uint64 {

	var n uint64
	for frames <= 0 || n < uint64(frames) {
		select {
		case <-ctx.Done():
			return n
		case b, ok := <-keys:
			if !ok {
				// reading from a nil channel blocks forever
				keys = nil
				continue
			}
			kb.Feed(b)
			if kb.Quit {
				return n
			}
		case <-tick:
			if kb.TakeReset() {
				rec.session.SetReset(true)
			}
			rec.core.Frame(func() {
				st := kb.Poll()
				rec.session.PollPad(0, &st)
				rec.session.FrameUpdate()
			})
			n++
			if progress != nil {
				progress(n)
			}
		}
	}
	return n
}
