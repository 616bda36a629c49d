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

package vector

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/philippgille/chromem-go"

	"github.com/suiamor/alignd/ai"
	"github.com/suiamor/alignd/catalog"
)

const collectionName = "alignments"

// Index answers similarity queries over one catalog snapshot. Safe for
// concurrent queries after Build returns.
type Index struct {
	collection *chromem.Collection
	logger     *slog.Logger
}

// Option configures index construction.
type Option func(*buildOptions)

type buildOptions struct {
	poolSize int
	logger   *slog.Logger
}

// WithPoolSize sets the number of concurrent embedding workers used
// while building the index.
func WithPoolSize(size int) Option {
	return func(o *buildOptions) {
		o.poolSize = size
	}
}

// WithLogger sets the index logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Build embeds every alignment in the snapshot and loads the vectors
// into a fresh in-memory collection. Embeddings run on a bounded worker
// pool; any single failure aborts the build, since a partial index
// would silently narrow Tier-3 recall.
func Build(ctx context.Context, snap *catalog.Snapshot, embedder ai.Embedder, opts ...Option) (*Index, error) {
	options := &buildOptions{
		poolSize: defaultPoolSize(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	index := &Index{collection: collection, logger: options.logger}

	alignments := snap.Alignments()
	if len(alignments) == 0 {
		return index, nil
	}

	pool, err := ants.NewPool(options.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		embeddings = make([][]float32, len(alignments))
		firstErr   error
	)

	for i, alignment := range alignments {
		text := snap.EmbeddingText(alignment)
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			embedding, embedErr := embedder.EmbedText(ctx, text)
			if embedErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("embedding %s: %w", alignment.ID, embedErr)
				}
				mu.Unlock()
				return
			}
			embeddings[i] = embedding
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	docs := make([]chromem.Document, len(alignments))
	for i, alignment := range alignments {
		docs[i] = chromem.Document{
			ID:        alignment.ID,
			Content:   snap.EmbeddingText(alignment),
			Embedding: embeddings[i],
			Metadata:  map[string]string{"type": string(alignment.Type)},
		}
	}

	if err := collection.AddDocuments(ctx, docs, options.poolSize); err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	options.logger.Debug("vector index built",
		"revision", snap.Revision(), "documents", len(docs))
	return index, nil
}

// Query embeds the text and returns up to k alignment ids ranked by
// similarity. k is capped at the collection size; an empty collection
// yields no ids and no error.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]string, error) {
	count := idx.collection.Count()
	if count == 0 || k <= 0 || text == "" {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := idx.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	ids := make([]string, len(results))
	for i, result := range results {
		ids[i] = result.ID
	}
	return ids, nil
}

// Count reports the number of indexed alignments.
func (idx *Index) Count() int {
	return idx.collection.Count()
}

func embeddingFunc(embedder ai.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedText(ctx, text)
	}
}

func defaultPoolSize() int {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	return size
}
