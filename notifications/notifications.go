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

package notifications

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jetsetilly/dtmovie/logger"
)

// Notice is the text of a notification that does not need formatting.
type Notice string

// List of fixed notifications.
const (
	NotifyMovieEnd        Notice = "Movie End."
	NotifyResumeRecording Notice = "Reached movie end. Resuming recording."
	NotifyCalculating     Notice = "Calculating checksum of game file..."
	NotifyCalculated      Notice = "Finished calculating checksum."
	NotifyVerifying       Notice = "Verifying checksum..."
	NotifyChecksumMatch   Notice = "Checksum of current game matches the recorded game."
	NotifyChecksumBad     Notice = "Checksum of current game does not match the recorded game!"
	NotifyDiscChangeLong  Notice = "Unable to record disc change: filename exceeds 40 characters"
)

// Durations used with DisplayMessage().
const (
	Short   = 2 * time.Second
	Long    = 5 * time.Second
	Warning = 15 * time.Second
)

// Sink receives messages that should be shown to the user.
type Sink interface {
	DisplayMessage(text string, duration time.Duration)
}

// Display is a convenience function for showing a fixed Notice.
func Display(s Sink, n Notice, duration time.Duration) {
	s.DisplayMessage(string(n), duration)
}

// Displayf formats a message before showing it.
func Displayf(s Sink, duration time.Duration, format string, args ...any) {
	s.DisplayMessage(fmt.Sprintf(format, args...), duration)
}

// Logged is a Sink that adds messages to the central logger.
type Logged struct {
	Perm logger.Permission
}

// DisplayMessage implements the Sink interface.
func (l Logged) DisplayMessage(text string, _ time.Duration) {
	perm := l.Perm
	if perm == nil {
		perm = logger.Allow
	}
	logger.Log(perm, "osd", text)
}

// Recorder is a Sink that remembers every message. Useful for testing.
type Recorder struct {
	crit     sync.Mutex
	Messages []string
}

// DisplayMessage implements the Sink interface.
func (r *Recorder) DisplayMessage(text string, _ time.Duration) {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.Messages = append(r.Messages, text)
}

// Last returns the most recent message or the empty string.
func (r *Recorder) Last() string {
	r.crit.Lock()
	defer r.crit.Unlock()
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// Contains returns true if the message has been displayed.
func (r *Recorder) Contains(text string) bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	for _, m := range r.Messages {
		if m == text {
			return true
		}
	}
	return false
}

// ContainsPart returns true if any message displayed contains the text.
func (r *Recorder) ContainsPart(text string) bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	for _, m := range r.Messages {
		if strings.Contains(m, text) {
			return true
		}
	}
	return false
}
