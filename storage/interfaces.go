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

package storage

import (
	"context"

	"github.com/suiamor/alignd/core"
)

// RevisionRepository persists uploaded catalog sources and their
// metadata. Revisions are identified by the content hash of the source,
// so re-uploading identical bytes overwrites the same record.
type RevisionRepository interface {
	// SaveRevision stores the revision metadata together with the raw
	// catalog source and marks it as the latest upload.
	SaveRevision(ctx context.Context, revision *core.CatalogRevision, source []byte) error

	// GetRevision returns the metadata and source of one revision.
	// Returns ErrNotFound when the id is unknown.
	GetRevision(ctx context.Context, id core.ID) (*core.CatalogRevision, []byte, error)

	// LatestRevision returns the most recently uploaded revision.
	// Returns ErrNotFound when nothing was ever uploaded.
	LatestRevision(ctx context.Context) (*core.CatalogRevision, []byte, error)

	// ListRevisions returns revision metadata ordered newest first,
	// capped at limit. A limit of 0 means no cap.
	ListRevisions(ctx context.Context, limit int) ([]*core.CatalogRevision, error)

	// Close releases repository resources.
	Close() error
}
