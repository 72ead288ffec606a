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

// Package version reports the version and source revision of the program.
// The revision is taken from the VCS information embedded by the Go
// toolchain and is what is recorded in the revision field of new DTM files.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "dtmovie"

// number is set by the linker for release builds
var number string

var revision string
var modified bool
var version string

// Version returns the version string, the revision string and whether this is
// a numbered release version.
//
// The version string is "unreleased" if the program was built from a VCS
// checkout without a version number and "local" if there is no VCS
// information at all, for example when using "go run".
func Version() (string, string, bool) {
	r := revision
	if r == "" {
		r = "no revision information"
	} else if modified {
		r = fmt.Sprintf("%s+dirty", r)
	}
	return version, r, number != "" && version == number
}

// Revision returns the VCS revision without decoration. The empty string is
// returned if there is no VCS information.
func Revision() string {
	return revision
}

func init() {
	var vcs bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
