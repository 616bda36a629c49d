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

package alignd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/suiamor/alignd/ai"
	"github.com/suiamor/alignd/ai/openai"
	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/match"
	"github.com/suiamor/alignd/storage"
	"github.com/suiamor/alignd/storage/badger"
	"github.com/suiamor/alignd/vector"
)

// Service bundles the matching engine with revision persistence and the
// optional embedding provider. It is the single application object the
// HTTP layer and the CLI talk to.
type Service struct {
	backend   *badger.Backend
	revisions storage.RevisionRepository
	provider  ai.Provider
	engine    *match.Engine
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig  *ai.Config
	embedding bool
	matchCfg  match.Config
	inMemory  bool
	logger    *slog.Logger
}

// WithEmbedding enables the Tier-3 vector index, built through an
// OpenAI-compatible embedding endpoint.
func WithEmbedding(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.embedding = true
		o.aiConfig = cfg
	}
}

// WithMatchConfig overrides the engine configuration.
func WithMatchConfig(cfg match.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.matchCfg = cfg
	}
}

// WithInMemoryStorage keeps revisions in memory instead of on disk.
// Intended for tests and one-shot runs.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService opens the revision store at filePath and wires the engine.
// No catalog is active until Restore or UploadCatalog succeeds.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	revisions := badger.NewRevisionRepository(backend)

	var provider ai.Provider
	engineOpts := []match.EngineOption{
		match.WithConfig(options.matchCfg),
		match.WithLogger(options.logger),
	}
	if options.embedding {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}

		embedder := provider.Embedder()
		logger := options.logger
		engineOpts = append(engineOpts, match.WithIndexBuilder(
			func(ctx context.Context, snap *catalog.Snapshot) (match.NeighborIndex, error) {
				return vector.Build(ctx, snap, embedder, vector.WithLogger(logger))
			}))
	}

	engine, err := match.NewEngine(engineOpts...)
	if err != nil {
		if provider != nil {
			provider.Close()
		}
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:   backend,
		revisions: revisions,
		provider:  provider,
		engine:    engine,
		logger:    options.logger,
	}, nil
}

// Restore activates the most recently uploaded catalog. Returns false
// without error when nothing was ever uploaded.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	revision, source, err := s.revisions.LatestRevision(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if _, err := s.engine.Reload(ctx, source); err != nil {
		return false, err
	}

	s.logger.Info("restored catalog from storage",
		"revision", revision.Id,
		"filename", revision.Filename,
		"uploaded_at", revision.UploadedAt)
	return true, nil
}

// UploadCatalog hot-reloads the engine with a new catalog source and,
// on success, persists it as a revision. A source that fails to parse
// leaves both the engine and the store untouched.
func (s *Service) UploadCatalog(ctx context.Context, filename string, source []byte) (catalog.Stats, error) {
	stats, err := s.engine.Reload(ctx, source)
	if err != nil {
		return catalog.Stats{}, err
	}

	revision := &core.CatalogRevision{
		Id:              stats.Revision,
		Filename:        filename,
		AnswersCount:    stats.AnswersCount,
		AlignmentsCount: stats.AlignmentsCount,
		UploadedAt:      time.Now().UTC(),
	}
	if err := s.revisions.SaveRevision(ctx, revision, source); err != nil {
		// The engine already serves the new catalog; losing the
		// revision record only affects restore and history.
		s.logger.Error("error persisting catalog revision", "revision", revision.Id, "err", err)
		return stats, err
	}

	return stats, nil
}

// Match evaluates a quiz submission against the active catalog.
func (s *Service) Match(ctx context.Context, sub core.Submission) ([]core.MatchResult, error) {
	return s.engine.Match(ctx, sub)
}

// Unmatched reports submission texts that resolve to no catalog answer.
func (s *Service) Unmatched(sub core.Submission) ([]string, error) {
	return s.engine.Unmatched(sub)
}

// Stats describes the active catalog.
func (s *Service) Stats() (catalog.Stats, error) {
	return s.engine.Stats()
}

// Revisions lists the upload history, newest first.
func (s *Service) Revisions(ctx context.Context, limit int) ([]*core.CatalogRevision, error) {
	return s.revisions.ListRevisions(ctx, limit)
}

// Close releases the embedding provider and the revision store.
func (s *Service) Close() error {
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := s.revisions.Close(); err != nil {
		s.logger.Error("error closing revision repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
