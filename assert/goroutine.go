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

// Package assert holds helpers for checking assumptions about the running
// program that cannot be expressed by the type system.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns the ID of the current goroutine. The value is parsed
// from the header line of runtime.Stack() and should only be used to compare
// goroutines, never to schedule work.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner remembers the goroutine that created it. It is used to assert that a
// function is being called from the expected goroutine.
type Owner struct {
	id uint64
}

// NewOwner returns an Owner for the current goroutine.
func NewOwner() Owner {
	return Owner{id: GetGoRoutineID()}
}

// IsCurrent returns true if the current goroutine is the owner.
func (o Owner) IsCurrent() bool {
	return o.id != 0 && o.id == GetGoRoutineID()
}
