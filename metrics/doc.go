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

// Package metrics instruments the movie engine with Prometheus collectors.
//
// A nil *Metrics is valid and every method is a no-op. This means the movie
// package can call the methods unconditionally.
//
// Metrics are registered with the Registerer given to NewMetrics(). The
// command line tool uses the default registry and serves it with promhttp.
// Tests use a private registry and read values with the testutil package of
// client_golang.
package metrics
