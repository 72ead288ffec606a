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
	"bytes"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/jetsetilly/dtmovie/curated"
	"github.com/jetsetilly/dtmovie/digest"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/logger"
)

// verify that the data of a movie file is the movie in the entry
func verify(ent Entry, data []byte) error {
	if _, err := dtm.ReadHeader(bytes.NewReader(data), ent.Name); err != nil {
		return err
	}
	payload := data[dtm.HeaderSize:]
	if len(payload) != ent.Size || digest.Payload(payload) != ent.Fingerprint {
		return curated.Errorf(Changed, ent.Name)
	}
	return nil
}

// Archive a compressed copy of the movie file in the catalogue. The file must
// not have changed since the entry was added. Archiving an entry that is
// already archived replaces the archived copy.
func (cat *Session) Archive(id string) (Entry, error) {
	cat.crit.Lock()
	defer cat.crit.Unlock()

	if cat.db == nil {
		return Entry{}, curated.Errorf(Closed)
	}

	ent, err := cat.find(id)
	if err != nil {
		return Entry{}, err
	}

	data, err := os.ReadFile(ent.Source)
	if err != nil {
		return Entry{}, curated.Errorf(StoreError, err)
	}

	if err := verify(ent, data); err != nil {
		return Entry{}, err
	}

	blob := cat.enc.EncodeAll(data, nil)
	ent.Archived = true
	ent.ArchivedSize = len(blob)

	if err := cat.put(ent, blob); err != nil {
		return Entry{}, err
	}

	logger.Logf(logger.Allow, "catalogue", "archived %s (%d bytes to %d bytes)", ent.ShortID(), len(data), len(blob))

	return ent, nil
}

// Restore the archived copy of the movie to path.
func (cat *Session) Restore(id string, path string) error {
	cat.crit.RLock()
	defer cat.crit.RUnlock()

	if cat.db == nil {
		return curated.Errorf(Closed)
	}

	ent, err := cat.find(id)
	if err != nil {
		return err
	}

	if !ent.Archived {
		return curated.Errorf(NotArchived, ent.ShortID())
	}

	var blob []byte
	err = cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(ent.ID))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if isNotFound(err) {
			return curated.Errorf(NotArchived, ent.ShortID())
		}
		return curated.Errorf(StoreError, err)
	}

	data, err := cat.dec.DecodeAll(blob, nil)
	if err != nil {
		return curated.Errorf(StoreError, err)
	}

	if err := verify(ent, data); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return curated.Errorf(StoreError, err)
	}

	logger.Logf(logger.Allow, "catalogue", "restored %s to %s", ent.ShortID(), path)

	return nil
}
