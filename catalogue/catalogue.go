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

package catalogue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/digest"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/logger"
	"github.com/klauspost/compress/zstd"
)

// key prefixes. entries are JSON encoded and blobs are zstd compressed movie
// files
const (
	entryPrefix = "entry/"
	blobPrefix  = "blob/"
)

func entryKey(id uuid.UUID) []byte {
	return []byte(entryPrefix + id.String())
}

func blobKey(id uuid.UUID) []byte {
	return []byte(blobPrefix + id.String())
}

// Session is an open catalogue.
type Session struct {
	crit sync.RWMutex
	db   *badger.DB
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Open the catalogue in the directory. The directory is created if it does
// not exist. If the path is empty then the catalogue is kept in memory and is
// lost when it is closed.
func Open(path string) (*Session, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, curated.Errorf(OpenError, path, err)
	}

	cat := &Session{db: db}

	cat.enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, curated.Errorf(OpenError, path, err)
	}

	cat.dec, err = zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, curated.Errorf(OpenError, path, err)
	}

	logger.Logf(logger.Allow, "catalogue", "opened %s", describePath(path))

	return cat, nil
}

func describePath(path string) string {
	if path == "" {
		return "in-memory catalogue"
	}
	return path
}

// Close the catalogue. It is safe to call Close more than once.
func (cat *Session) Close() error {
	cat.crit.Lock()
	defer cat.crit.Unlock()

	if cat.db == nil {
		return nil
	}

	_ = cat.enc.Close()
	cat.dec.Close()

	err := cat.db.Close()
	cat.db = nil
	if err != nil {
		return curated.Errorf(StoreError, err)
	}
	return nil
}

// Add the movie file to the catalogue. A movie with the same game and the same
// input stream as an existing entry is not added and a Duplicate error is
// returned.
func (cat *Session) Add(path string) (Entry, error) {
	cat.crit.Lock()
	defer cat.crit.Unlock()

	if cat.db == nil {
		return Entry{}, curated.Errorf(Closed)
	}

	h, payload, err := dtm.ReadFile(path)
	if err != nil {
		return Entry{}, curated.Errorf(StoreError, err)
	}

	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}

	ent := Entry{
		ID:          uuid.New(),
		Name:        filepath.Base(path),
		Source:      source,
		Added:       time.Now().UTC(),
		GameID:      h.GameIDString(),
		Author:      h.AuthorString(),
		Frames:      h.FrameCount,
		Lag:         h.LagCount,
		Inputs:      h.InputCount,
		Rerecords:   h.NumRerecords,
		Size:        len(payload),
		Fingerprint: digest.Payload(payload),
	}

	entries, err := cat.entries()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.GameID == ent.GameID && e.Fingerprint == ent.Fingerprint && e.Size == ent.Size {
			return Entry{}, curated.Errorf(Duplicate, ent.Name, e.ShortID())
		}
	}

	if err := cat.put(ent, nil); err != nil {
		return Entry{}, err
	}

	logger.Logf(logger.Allow, "catalogue", "added %s as %s", ent.Name, ent.ShortID())

	return ent, nil
}

// put the entry and optionally the blob in a single transaction. must be
// called with the crit lock held.
func (cat *Session) put(ent Entry, blob []byte) error {
	data, err := json.Marshal(ent)
	if err != nil {
		return curated.Errorf(StoreError, err)
	}

	err = cat.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(entryKey(ent.ID), data); err != nil {
			return err
		}
		if blob != nil {
			return txn.Set(blobKey(ent.ID), blob)
		}
		return nil
	})
	if err != nil {
		return curated.Errorf(StoreError, err)
	}

	return nil
}

// entries returns every entry sorted by name. must be called with the crit
// lock held.
func (cat *Session) entries() ([]Entry, error) {
	var entries []Entry

	err := cat.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var ent Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ent)
			})
			if err != nil {
				return err
			}
			entries = append(entries, ent)
		}

		return nil
	})
	if err != nil {
		return nil, curated.Errorf(StoreError, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].ID.String() < entries[j].ID.String()
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// find the single entry with an ID that starts with the prefix. must be
// called with the crit lock held.
func (cat *Session) find(prefix string) (Entry, error) {
	entries, err := cat.entries()
	if err != nil {
		return Entry{}, err
	}

	var found []Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID.String(), strings.ToLower(prefix)) {
			found = append(found, e)
		}
	}

	switch len(found) {
	case 0:
		return Entry{}, curated.Errorf(NotFound, prefix)
	case 1:
		return found[0], nil
	}
	return Entry{}, curated.Errorf(Ambiguous, prefix)
}

// NumEntries returns the number of entries in the catalogue.
func (cat *Session) NumEntries() (int, error) {
	cat.crit.RLock()
	defer cat.crit.RUnlock()

	if cat.db == nil {
		return 0, curated.Errorf(Closed)
	}

	entries, err := cat.entries()
	return len(entries), err
}

// Find the entry with the ID. Any unique prefix of the ID is accepted.
func (cat *Session) Find(id string) (Entry, error) {
	cat.crit.RLock()
	defer cat.crit.RUnlock()

	if cat.db == nil {
		return Entry{}, curated.Errorf(Closed)
	}

	return cat.find(id)
}

// SelectAll entries in the catalogue in name order. onSelect can be nil. The
// selection stops at the first error returned by onSelect and the error is
// returned.
func (cat *Session) SelectAll(onSelect func(Entry) error) error {
	cat.crit.RLock()
	defer cat.crit.RUnlock()

	if cat.db == nil {
		return curated.Errorf(Closed)
	}

	if onSelect == nil {
		onSelect = func(_ Entry) error { return nil }
	}

	entries, err := cat.entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if err := onSelect(e); err != nil {
			return err
		}
	}

	return nil
}

// List the entries in name order.
func (cat *Session) List(output io.Writer) error {
	n := 0
	err := cat.SelectAll(func(ent Entry) error {
		n++
		_, err := fmt.Fprintln(output, ent.String())
		return err
	})
	if err != nil {
		return err
	}

	if n == 0 {
		_, err = io.WriteString(output, "catalogue is empty\n")
		return err
	}

	_, err = fmt.Fprintf(output, "Total: %d\n", n)
	return err
}

// Delete the entry and any archived copy of the movie.
func (cat *Session) Delete(id string) error {
	cat.crit.Lock()
	defer cat.crit.Unlock()

	if cat.db == nil {
		return curated.Errorf(Closed)
	}

	ent, err := cat.find(id)
	if err != nil {
		return err
	}

	err = cat.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(entryKey(ent.ID)); err != nil {
			return err
		}
		return txn.Delete(blobKey(ent.ID))
	})
	if err != nil {
		return curated.Errorf(StoreError, err)
	}

	logger.Logf(logger.Allow, "catalogue", "deleted %s", ent.ShortID())

	return nil
}

// isNotFound returns true if the badger error is for a missing key.
func isNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}
