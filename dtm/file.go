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

package dtm

import (
	"errors"
	"io"
	"os"

	"github.com/jetsetilly/dtmovie/curated"
)

// ReadHeader reads and validates a header. The name is used in error
// messages only.
func ReadHeader(r io.Reader, name string) (Header, error) {
	var h Header

	b := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, b)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return h, curated.Errorf(TruncatedError, name, n)
		}
		return h, curated.Errorf(IOError, err)
	}

	if err := h.UnmarshalBinary(b); err != nil {
		return h, curated.Errorf(IOError, err)
	}

	if !h.IsValid() {
		return h, curated.Errorf(FormatError, name)
	}

	return h, nil
}

// ReadFile reads the header and the input stream of a DTM file.
func ReadFile(path string) (Header, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, curated.Errorf(IOError, err)
	}
	defer f.Close()

	h, err := ReadHeader(f, path)
	if err != nil {
		return h, nil, err
	}

	payload, err := io.ReadAll(f)
	if err != nil {
		return h, nil, curated.Errorf(IOError, err)
	}

	return h, payload, nil
}

// WriteFile writes the header and the input stream to a new DTM file. The
// format tag of the header is set before writing.
func WriteFile(path string, h Header, payload []byte) error {
	h.Filetype = Magic

	b, err := h.MarshalBinary()
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	_, err = f.Write(b)
	if err == nil {
		_, err = f.Write(payload)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	return nil
}

// RewriteHeader replaces the header of an existing DTM file. The input stream
// is not touched.
func RewriteHeader(path string, h Header) error {
	h.Filetype = Magic

	b, err := h.MarshalBinary()
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	_, err = f.WriteAt(b, 0)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	return nil
}

// CopyFile copies a file. Used for the companion save state of a movie.
func CopyFile(dst string, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return curated.Errorf(IOError, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf(IOError, err)
	}

	return nil
}
