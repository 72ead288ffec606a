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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace of every metric.
const Namespace = "dtmovie"

// Metrics is the set of collectors for the movie engine.
type Metrics struct {
	polls     *prometheus.CounterVec
	desyncs   *prometheus.CounterVec
	sessions  *prometheus.CounterVec
	hashes    *prometheus.CounterVec
	rerecords prometheus.Counter
	mode      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them. If reg is nil the
// default registerer is used.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "polls_total",
			Help:      "Device polls recorded or played back.",
		}, []string{"direction", "kind"}),
		desyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "desyncs_total",
			Help:      "Desyncs detected during playback or when loading a save state.",
		}, []string{"reason"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sessions_total",
			Help:      "Movies started.",
		}, []string{"mode"}),
		hashes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checksums_total",
			Help:      "Game image checksums calculated.",
		}, []string{"result"}),
		rerecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rerecords_total",
			Help:      "Writable movies reattached to a save state.",
		}),
		mode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "mode",
			Help:      "Current mode of the session. 0 is idle, 1 is recording, 2 is playing.",
		}),
	}

	for _, c := range []prometheus.Collector{m.polls, m.desyncs, m.sessions, m.hashes, m.rerecords, m.mode} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Recorded counts a poll that was recorded. Kind is "pad" or "motion".
func (m *Metrics) Recorded(kind string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues("recorded", kind).Inc()
}

// Played counts a poll that was played back. Kind is "pad" or "motion".
func (m *Metrics) Played(kind string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues("played", kind).Inc()
}

// Desync counts a desync.
func (m *Metrics) Desync(reason string) {
	if m == nil {
		return
	}
	m.desyncs.WithLabelValues(reason).Inc()
}

// Started counts the start of a session in the named mode.
func (m *Metrics) Started(mode string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(mode).Inc()
}

// Checksum counts a checksum result.
func (m *Metrics) Checksum(result string) {
	if m == nil {
		return
	}
	m.hashes.WithLabelValues(result).Inc()
}

// Rerecord counts a rerecord.
func (m *Metrics) Rerecord() {
	if m == nil {
		return
	}
	m.rerecords.Inc()
}

// SetMode sets the mode gauge.
func (m *Metrics) SetMode(mode int) {
	if m == nil {
		return
	}
	m.mode.Set(float64(mode))
}
