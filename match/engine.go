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

package match

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/normalize"
)

// NeighborIndex answers nearest-neighbor queries over alignment
// embedding text. Implementations must be safe for concurrent queries.
type NeighborIndex interface {
	// Query returns up to k alignment ids ranked by similarity to text.
	Query(ctx context.Context, text string, k int) ([]string, error)
}

// IndexBuilder constructs a NeighborIndex for a snapshot. It runs
// during Reload, off the request path.
type IndexBuilder func(ctx context.Context, snap *catalog.Snapshot) (NeighborIndex, error)

// view bundles one catalog version with everything derived from it.
// Reload swaps the whole bundle at once.
type view struct {
	snapshot   *catalog.Snapshot
	normalizer *normalize.Normalizer
	index      NeighborIndex
}

// Engine matches quiz submissions against the active catalog. Match is
// safe for unbounded concurrent use; Reload serializes against itself
// and never blocks readers.
type Engine struct {
	cfg        Config
	buildIndex IndexBuilder
	logger     *slog.Logger

	current  atomic.Pointer[view]
	reloadMu sync.Mutex
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	cfg        Config
	buildIndex IndexBuilder
	logger     *slog.Logger
}

// WithConfig overrides the default matching configuration. Zero fields
// still receive their defaults.
func WithConfig(cfg Config) EngineOption {
	return func(o *engineOptions) {
		o.cfg = cfg
	}
}

// WithIndexBuilder installs the Tier-3 neighbor index builder. Without
// one the engine skips the vector query and goes straight to the
// category fallback.
func WithIndexBuilder(builder IndexBuilder) EngineOption {
	return func(o *engineOptions) {
		o.buildIndex = builder
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	options.cfg.ApplyDefaults()
	if err := options.cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        options.cfg,
		buildIndex: options.buildIndex,
		logger:     options.logger,
	}, nil
}

// Reload parses a new catalog source, rebuilds the normalizer and the
// neighbor index off to the side, then atomically replaces the active
// view. A parse failure leaves the previous catalog in place. An index
// build failure is not fatal: the new catalog activates without a
// vector index and Tier 3 degrades to the category fallback.
func (e *Engine) Reload(ctx context.Context, source []byte) (catalog.Stats, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	snap, err := catalog.LoadSnapshot(source)
	if err != nil {
		return catalog.Stats{}, err
	}

	var index NeighborIndex
	if e.buildIndex != nil {
		index, err = e.buildIndex(ctx, snap)
		if err != nil {
			e.logger.Warn("neighbor index build failed, vector tier disabled for this catalog",
				"revision", snap.Revision(), "err", err)
			index = nil
		}
	}

	e.current.Store(&view{
		snapshot:   snap,
		normalizer: normalize.New(snap),
		index:      index,
	})

	stats := snap.Stats()
	e.logger.Info("catalog activated",
		"revision", stats.Revision,
		"answers", stats.AnswersCount,
		"alignments", stats.AlignmentsCount,
		"vector_index", index != nil)
	return stats, nil
}

// Match runs the submission through the tier chain and returns at most
// MaxResults alignments. A submission that normalizes to nothing yields
// an empty list, not an error.
func (e *Engine) Match(ctx context.Context, sub core.Submission) ([]core.MatchResult, error) {
	v := e.current.Load()
	if v == nil {
		return nil, ErrNotLoaded
	}

	normalized, unmatched := v.normalizer.Normalize(sub)
	if len(unmatched) > 0 {
		e.logger.Debug("submission carried unmatched answer texts",
			"unmatched", len(unmatched), "normalized", len(normalized))
	}
	if len(normalized) == 0 {
		return []core.MatchResult{}, nil
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].SelectionOrder < normalized[j].SelectionOrder
	})

	userIDs := make(map[string]struct{}, len(normalized))
	userCategories := make(map[string]struct{})
	sequence := make([]string, len(normalized))
	for i, answer := range normalized {
		userIDs[answer.AnswerID] = struct{}{}
		sequence[i] = answer.AnswerID
		if answer.Category != "" {
			userCategories[answer.Category] = struct{}{}
		}
	}

	if results := e.tier1Exact(v.snapshot, userIDs, sequence); len(results) > 0 {
		return formatResults(capResults(results, e.cfg.MaxResults), core.TierExact), nil
	}

	profile := userProfile(normalized)
	tier2 := e.tier2Axis(v.snapshot, profile, userCategories)
	if len(tier2) > 0 && tier2[0].distance < e.cfg.AxisDistanceThreshold {
		return formatResults(capResults(tier2, e.cfg.MaxResults), core.TierAxis), nil
	}

	tier3, tier := e.tier3Fallback(ctx, v, normalized, userCategories)
	return formatResults(capResults(tier3, e.cfg.MaxResults), tier), nil
}

// Unmatched reports the raw answer texts of a submission that resolve
// to no catalog answer. Diagnostics only; Match already skips them.
func (e *Engine) Unmatched(sub core.Submission) ([]string, error) {
	v := e.current.Load()
	if v == nil {
		return nil, ErrNotLoaded
	}
	_, unmatched := v.normalizer.Normalize(sub)
	return unmatched, nil
}

// Stats describes the active catalog.
func (e *Engine) Stats() (catalog.Stats, error) {
	v := e.current.Load()
	if v == nil {
		return catalog.Stats{}, ErrNotLoaded
	}
	return v.snapshot.Stats(), nil
}

// Snapshot exposes the active catalog version, or false when nothing
// has been loaded yet.
func (e *Engine) Snapshot() (*catalog.Snapshot, bool) {
	v := e.current.Load()
	if v == nil {
		return nil, false
	}
	return v.snapshot, true
}

// userProfile computes the primacy-weighted axis position of the
// user's answers, sorted by selection order.
func userProfile(normalized []core.NormalizedAnswer) core.Axes {
	points := make([]core.Axes, len(normalized))
	for i, answer := range normalized {
		points[i] = answer.Axes
	}
	return core.PrimacyWeightedMean(points)
}

func capResults(candidates []candidate, limit int) []candidate {
	if len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
