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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/dtmovie/assert"
	"github.com/jetsetilly/dtmovie/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	o := assert.NewOwner()
	test.ExpectSuccess(t, o.IsCurrent())

	done := make(chan bool)
	other := make(chan uint64)
	go func() {
		done <- o.IsCurrent()
		other <- assert.GetGoRoutineID()
	}()
	test.ExpectFailure(t, <-done)
	test.ExpectInequality(t, <-other, id)

	var zero assert.Owner
	test.ExpectFailure(t, zero.IsCurrent())
}
