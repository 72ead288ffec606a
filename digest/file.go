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

package digest

import (
	"context"
	"crypto/md5"
	"fmt"
	"hash/adler32"
	"io"
	"os"
)

// the size of each read when hashing a file. the context is checked between
// reads.
const chunkSize = 1 << 20

// MD5File returns the MD5 hash of the file at path. The error returned by
// ctx.Err() is returned if the context is cancelled before hashing completes.
func MD5File(ctx context.Context, path string) ([md5.Size]byte, error) {
	var sum [md5.Size]byte

	f, err := os.Open(path)
	if err != nil {
		return sum, fmt.Errorf("digest: %w", err)
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		n, err := f.Read(buf)
		h.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("digest: %w", err)
		}
	}

	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// Adler32 returns the checksum used to identify firmware images.
func Adler32(data []byte) uint32 {
	return adler32.Checksum(data)
}
