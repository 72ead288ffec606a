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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Overrides are preference values given for a single run of the program. They
// take precedence over values loaded from disk. Each value is used once.
type Overrides map[string]string

// ParseOverrides parses a string of key/value pairs. Pairs are separated by a
// semi-colon and the key is separated from the value by a double colon.
// Malformed pairs are ignored.
func ParseOverrides(s string) Overrides {
	o := make(Overrides)
	for _, p := range strings.Split(s, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			o[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return o
}

// take returns the value for the key and forgets it.
func (o Overrides) take(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o[key]
	if ok {
		delete(o, key)
	}
	return v, ok
}

// Unused returns the overrides that have not been used, in the same form as
// accepted by ParseOverrides(). The keys are sorted.
func (o Overrides) Unused() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s::%s; ", k, o[k]))
	}
	return strings.TrimSuffix(s.String(), "; ")
}
