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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultPrefsFile is the name of the preferences file in the resource
// directory.
const DefaultPrefsFile = "preferences.yaml"

// EnvPath is the environment variable consulted by DefaultPath().
const EnvPath = "DTMOVIE_PREFS"

// DefaultPath returns the path of the preferences file named by the DTMOVIE_PREFS
// environment variable or the fallback value if the variable is not set.
func DefaultPath(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}

// Disk represents preference values as stored on disk.
type Disk struct {
	path      string
	entries   map[string]pref
	overrides Overrides
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// SetOverrides sets the values that take precedence over those loaded from
// disk. Overrides are applied at the time a value is added and again on every
// call to Load().
func (dsk *Disk) SetOverrides(o Overrides) {
	dsk.overrides = o
}

// Add preference value to the list of values to store on disk. The key must
// be unique.
func (dsk *Disk) Add(key string, p pref) error {
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: %s: already added", key)
	}
	dsk.entries[key] = p

	if v, ok := dsk.overrides.take(key); ok {
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}

	return nil
}

// Keys returns the sorted list of keys added to the disk.
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// read the file into a map. a missing file results in an empty map.
func (dsk *Disk) read() (map[string]string, error) {
	data := make(map[string]string)

	b, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}

	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("prefs: %s: %w", dsk.path, err)
	}

	return data, nil
}

// Save current preference values to disk. Values in the file that belong to
// other Disk instances are preserved.
func (dsk *Disk) Save() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		data[k] = p.String()
	}

	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	if err := os.WriteFile(dsk.path, b, 0o644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. A missing file is not an error. Keys in
// the file that have not been added to the Disk are ignored.
func (dsk *Disk) Load() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		v, ok := dsk.overrides.take(k)
		if !ok {
			v, ok = data[k]
		}
		if ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}
