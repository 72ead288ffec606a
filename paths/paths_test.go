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
	"testing"
	"time"

	"github.com/jetsetilly/dtmovie/test"
)

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)
	test.ExpectEquality(t, uniqueFilename("movie", "GALE01", n), "movie_GALE01_20240305_070809")
	test.ExpectEquality(t, uniqueFilename("movie", "  ", n), "movie_20240305_070809")
}

func TestCompanionPath(t *testing.T) {
	test.ExpectEquality(t, CompanionPath("run.dtm"), "run.dtm.sav")
	test.ExpectEquality(t, StateMoviePath("slot1.sav"), "slot1.sav.dtm")
}

func TestResourcePath(t *testing.T) {
	// the base path is relative to the working directory when it exists there
	dir := t.TempDir()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Mkdir(baseResourcePath, 0o755))
	test.ExpectEquality(t, ResourcePath("catalogue"), filepath.Join(".dtmovie", "catalogue"))
}
