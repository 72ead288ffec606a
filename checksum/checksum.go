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

package checksum

import (
	"context"
	"crypto/md5"
	"errors"
	"sync"

	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/digest"
	"github.com/jetsetilly/dtmovie/logger"
	"github.com/jetsetilly/dtmovie/notifications"
)

// HashMismatch is the pattern of the advisory error in a Result when the game
// image does not match the movie.
const HashMismatch = "checksum: game image %x does not match movie %x"

// Sum is an MD5 digest.
type Sum = [md5.Size]byte

// Hasher computes the digest of a file.
type Hasher interface {
	HashFile(ctx context.Context, path string) (Sum, error)
}

// HasherFunc allows a function to be used as a Hasher.
type HasherFunc func(ctx context.Context, path string) (Sum, error)

// HashFile implements the Hasher interface.
func (f HasherFunc) HashFile(ctx context.Context, path string) (Sum, error) {
	return f(ctx, path)
}

// MD5 is the Hasher used for game images.
var MD5 Hasher = HasherFunc(digest.MD5File)

// Mode specifies what a task does with the digest it computes.
type Mode int

// List of valid Mode values.
const (
	// the digest is for storing in a new movie
	Store Mode = iota

	// the digest is compared with the digest of an existing movie
	Compare
)

// Result of a task.
type Result struct {
	Mode Mode
	Sum  Sum

	// whether the digest matches the expected digest. only meaningful for the
	// Compare mode
	Match bool

	// error from the hasher or a HashMismatch error
	Err error
}

// Task is a background hashing task. A nil Task is valid and never produces
// a result.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}

	crit      sync.Mutex
	result    Result
	ready     bool
	abandoned bool
}

// Start a new background task to hash the file at path. Messages are sent to
// the notification sink when hashing starts and when it finishes.
//
// For the Compare mode an expected digest of all zeros means there is nothing
// to compare with and a nil Task is returned. A nil Task is also returned if
// the path is empty.
func Start(h Hasher, path string, mode Mode, expected Sum, sink notifications.Sink) *Task {
	if path == "" {
		return nil
	}
	if mode == Compare && expected == (Sum{}) {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	switch mode {
	case Store:
		notifications.Display(sink, notifications.NotifyCalculating, notifications.Short)
	case Compare:
		notifications.Display(sink, notifications.NotifyVerifying, notifications.Short)
	}

	go func() {
		defer close(t.done)

		sum, err := h.HashFile(ctx, path)
		res := Result{Mode: mode, Sum: sum, Err: err}

		if err == nil && mode == Compare {
			res.Match = sum == expected
			if !res.Match {
				res.Err = curated.Errorf(HashMismatch, sum, expected)
			}
		}

		t.crit.Lock()
		if t.abandoned {
			t.crit.Unlock()
			return
		}
		t.result = res
		t.ready = true
		t.crit.Unlock()

		switch {
		case errors.Is(err, context.Canceled):
		case err != nil:
			logger.Log(logger.Allow, "checksum", err)
		case mode == Store:
			notifications.Display(sink, notifications.NotifyCalculated, notifications.Short)
		case res.Match:
			notifications.Display(sink, notifications.NotifyChecksumMatch, notifications.Short)
		default:
			logger.Log(logger.Allow, "checksum", res.Err)
			notifications.Display(sink, notifications.NotifyChecksumBad, notifications.Long)
		}
	}()

	return t
}

// Poll returns the result of the task if it is ready. It never blocks.
func (t *Task) Poll() (Result, bool) {
	if t == nil {
		return Result{}, false
	}
	t.crit.Lock()
	defer t.crit.Unlock()
	if t.abandoned || !t.ready {
		return Result{}, false
	}
	return t.result, true
}

// Wait blocks until the task has finished or the context is done. An
// abandoned task returns context.Canceled.
func (t *Task) Wait(ctx context.Context) (Result, error) {
	if t == nil {
		return Result{}, context.Canceled
	}

	select {
	case <-t.done:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	res, ok := t.Poll()
	if !ok {
		return Result{}, context.Canceled
	}
	return res, nil
}

// Abandon the task. Hashing is cancelled and any result is discarded. It is
// safe to call Abandon more than once.
func (t *Task) Abandon() {
	if t == nil {
		return
	}
	t.crit.Lock()
	t.abandoned = true
	t.crit.Unlock()
	t.cancel()
}
