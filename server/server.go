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

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/match"
)

// maxUploadSize caps catalog uploads at 8MB.
const maxUploadSize = 8 << 20

// AlignmentService is the application surface the HTTP layer exposes.
type AlignmentService interface {
	// Match evaluates a quiz submission against the active catalog.
	Match(ctx context.Context, sub core.Submission) ([]core.MatchResult, error)

	// Unmatched reports the submitted texts that resolve to no catalog
	// answer.
	Unmatched(sub core.Submission) ([]string, error)

	// UploadCatalog persists a new catalog source and hot-reloads the
	// engine.
	UploadCatalog(ctx context.Context, filename string, source []byte) (catalog.Stats, error)

	// Stats describes the active catalog.
	Stats() (catalog.Stats, error)

	// Revisions lists the upload history, newest first.
	Revisions(ctx context.Context, limit int) ([]*core.CatalogRevision, error)
}

// Server provides the HTTP endpoints.
type Server struct {
	echo    *echo.Echo
	service AlignmentService
	logger  *slog.Logger
	addr    string
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(service AlignmentService, addr string, logger *slog.Logger) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%d", maxUploadSize)))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID))

			return err
		}
	})

	s := &Server{
		echo:    e,
		service: service,
		logger:  logger,
		addr:    addr,
	}
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/match", s.handleMatch)
	v1.POST("/catalog", s.handleUpload)
	v1.GET("/catalog/stats", s.handleStats)
	v1.GET("/catalog/revisions", s.handleRevisions)
}

func (s *Server) handleHealth(c echo.Context) error {
	_, err := s.service.Stats()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		CatalogLoaded: err == nil,
	})
}

func (s *Server) handleMatch(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid match request", "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sub := req.Submission()
	results, err := s.service.Match(c.Request().Context(), sub)
	if err != nil {
		return s.mapError(err)
	}
	if results == nil {
		results = []core.MatchResult{}
	}

	unmatched, err := s.service.Unmatched(sub)
	if err != nil {
		s.logger.Warn("unmatched lookup failed", "err", err)
		unmatched = nil
	}

	return c.JSON(http.StatusOK, MatchResponse{Matches: results, Unmatched: unmatched})
}

// handleUpload accepts the raw catalog source as the request body. An
// optional filename query parameter labels the revision.
func (s *Server) handleUpload(c echo.Context) error {
	source, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reading request body")
	}

	filename := c.QueryParam("filename")
	if filename == "" {
		filename = "catalog.csv"
	}

	stats, err := s.service.UploadCatalog(c.Request().Context(), filename, source)
	if err != nil {
		return s.mapError(err)
	}

	return c.JSON(http.StatusOK, uploadResponse(stats))
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.service.Stats()
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, uploadResponse(stats))
}

func (s *Server) handleRevisions(c echo.Context) error {
	revisions, err := s.service.Revisions(c.Request().Context(), 0)
	if err != nil {
		return s.mapError(err)
	}

	infos := make([]RevisionInfo, len(revisions))
	for i, revision := range revisions {
		infos[i] = RevisionInfo{
			Revision:        revision.Id.String(),
			Filename:        revision.Filename,
			AnswersCount:    revision.AnswersCount,
			AlignmentsCount: revision.AlignmentsCount,
			UploadedAt:      revision.UploadedAt,
		}
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *Server) mapError(err error) error {
	switch {
	case errors.Is(err, match.ErrNotLoaded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no catalog loaded")
	case catalog.IsLoadError(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.addr)
	return s.echo.Start(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
