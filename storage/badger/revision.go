// Copyright 2025 Sui Amor
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/storage"
)

// RevisionRepository implements storage.RevisionRepository for BadgerDB.
type RevisionRepository struct {
	backend *Backend
}

var _ storage.RevisionRepository = (*RevisionRepository)(nil)

// NewRevisionRepository creates a new RevisionRepository.
func NewRevisionRepository(backend *Backend) *RevisionRepository {
	return &RevisionRepository{
		backend: backend,
	}
}

// Close implements storage.RevisionRepository. The repository holds no
// resources of its own; the backend is closed by its owner.
func (r *RevisionRepository) Close() error {
	return nil
}

// SaveRevision persists the revision metadata, the raw source, an
// upload-time index entry and the latest pointer in one transaction.
func (r *RevisionRepository) SaveRevision(ctx context.Context, revision *core.CatalogRevision, source []byte) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if revision.UploadedAt.IsZero() {
			revision.UploadedAt = time.Now().UTC()
		}

		// Re-uploading the same source overwrites the existing record,
		// so its previous upload-time index entry must go away too.
		existing, err := readRevision(tx, revision.Id)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if existing != nil && !existing.UploadedAt.Equal(revision.UploadedAt) {
			if err := tx.Delete(makeRevisionDateKey(existing.UploadedAt, existing.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(makeRevisionKey(revision.Id), storage.MarshalCatalogRevision(revision)); err != nil {
			return err
		}
		if err := tx.Set(makeSourceKey(revision.Id), source); err != nil {
			return err
		}
		if err := tx.Set(makeRevisionDateKey(revision.UploadedAt, revision.Id), storage.MarshalID(revision.Id)); err != nil {
			return err
		}
		if err := tx.Set([]byte(latestRevisionKey), storage.MarshalID(revision.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRevision retrieves one revision with its raw source.
func (r *RevisionRepository) GetRevision(ctx context.Context, id core.ID) (*core.CatalogRevision, []byte, error) {
	var (
		revision *core.CatalogRevision
		source   []byte
	)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		revision, err = readRevision(tx, id)
		if err != nil {
			return err
		}
		source, err = readSource(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, nil, err
	}
	return revision, source, nil
}

// LatestRevision retrieves the most recently uploaded revision.
func (r *RevisionRepository) LatestRevision(ctx context.Context) (*core.CatalogRevision, []byte, error) {
	var (
		revision *core.CatalogRevision
		source   []byte
	)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(latestRevisionKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var unmarshalErr error
			id, unmarshalErr = storage.UnmarshalID(val)
			return unmarshalErr
		}); err != nil {
			return err
		}

		revision, err = readRevision(tx, id)
		if err != nil {
			return err
		}
		source, err = readSource(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, nil, err
	}
	return revision, source, nil
}

// ListRevisions walks the upload-time index newest first.
func (r *RevisionRepository) ListRevisions(ctx context.Context, limit int) ([]*core.CatalogRevision, error) {
	var revisions []*core.CatalogRevision

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(revisionDatePrefix + ":")

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible key under the prefix so reverse
		// iteration starts at the newest entry.
		seek := append(append([]byte{}, prefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		for iter.Seek(seek); iter.ValidForPrefix(prefix); iter.Next() {
			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				id, unmarshalErr = storage.UnmarshalID(val)
				return unmarshalErr
			}); err != nil {
				return err
			}

			revision, err := readRevision(tx, id)
			if err != nil {
				return err
			}
			revisions = append(revisions, revision)

			if limit > 0 && len(revisions) >= limit {
				return nil
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return revisions, nil
}

func readRevision(tx *badger.Txn, id core.ID) (*core.CatalogRevision, error) {
	item, err := tx.Get(makeRevisionKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var revision *core.CatalogRevision
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		revision, unmarshalErr = storage.UnmarshalCatalogRevision(val)
		return unmarshalErr
	})
	return revision, err
}

func readSource(tx *badger.Txn, id core.ID) ([]byte, error) {
	item, err := tx.Get(makeSourceKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}
