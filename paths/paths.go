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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. use getBasePath() rather than this value
// directly.
const baseResourcePath = ".dtmovie"

// ResourcePath returns the resource path prepended with the base resource
// directory. The existence of the resource is not checked.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return filepath.Join(p...)
}

func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cfg, baseResourcePath[1:])
}

// CompanionSuffix is appended to a movie's path to name the save state that
// the movie starts from.
const CompanionSuffix = ".sav"

// CompanionPath returns the path of the save state that accompanies a movie.
func CompanionPath(moviePath string) string {
	return moviePath + CompanionSuffix
}

// StateMovieSuffix is appended to a save state's path to name the copy of the
// active movie that is saved alongside it.
const StateMovieSuffix = ".dtm"

// StateMoviePath returns the path of the movie saved alongside a save state.
func StateMoviePath(statePath string) string {
	return statePath + StateMovieSuffix
}
