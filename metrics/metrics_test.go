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
	"testing"

	"github.com/jetsetilly/dtmovie/test"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Recorded("pad")
	m.Played("motion")
	m.Desync("premature")
	m.Started("recording")
	m.Checksum("match")
	m.Rerecord()
	m.SetMode(1)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	test.DemandSuccess(t, err)

	m.Recorded("pad")
	m.Recorded("pad")
	m.Played("motion")
	m.Desync("mismatch")
	m.Rerecord()
	m.SetMode(2)
	test.ExpectEquality(t, testutil.ToFloat64(m.mode), 2.0)
	test.ExpectEquality(t, testutil.ToFloat64(m.rerecords), 1.0)

	n, err := testutil.GatherAndCount(reg, "dtmovie_polls_total")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 2)

	test.ExpectEquality(t, testutil.ToFloat64(m.polls.WithLabelValues("recorded", "pad")), 2.0)
	test.ExpectEquality(t, testutil.ToFloat64(m.polls.WithLabelValues("played", "motion")), 1.0)

	// registering twice with the same registry fails
	_, err = NewMetrics(reg)
	test.ExpectFailure(t, err)
}
