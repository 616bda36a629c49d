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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/suiamor/alignd"
	"github.com/suiamor/alignd/ai"
	"github.com/suiamor/alignd/config"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/match"
	"github.com/suiamor/alignd/server"
)

func main() {
	app := &cli.App{
		Name:  "alignd",
		Usage: "Three-tier personality alignment matching service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP matching service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML configuration file",
					},
				},
			},
			{
				Name:   "load",
				Usage:  "Upload a catalog CSV into the revision store",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the catalog CSV file",
						Required: true,
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Evaluate quiz answers against the stored catalog",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "answer",
						Aliases: []string{"a"},
						Usage:   "Quiz answer text (repeatable, order preserved)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to a JSON submission file (same shape as the match endpoint body)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name (enables the vector tier)",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show statistics for the stored catalog",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "revisions",
				Usage:  "List catalog upload history",
				Action: revisionsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of revisions to show (0 = all)",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	// Config file level wins over the CLI default
	if err := applyLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	opts := []alignd.ServiceOption{
		alignd.WithMatchConfig(matchConfigFrom(cfg)),
	}
	if cfg.Storage.InMemory {
		opts = append(opts, alignd.WithInMemoryStorage())
	}
	if cfg.Embedding.Enabled {
		opts = append(opts, alignd.WithEmbedding(ai.NewConfig(
			ai.WithEmbeddingHost(cfg.Embedding.Host),
			ai.WithEmbeddingModel(cfg.Embedding.Model),
			ai.WithToken(cfg.Embedding.Token),
		)))
	}

	service, err := alignd.NewService(cfg.Storage.Path, opts...)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer service.Close()

	ctx := context.Background()
	restored, err := service.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	if !restored {
		slog.Warn("no stored catalog, waiting for an upload")
	}

	srv, err := server.NewServer(service, cfg.Server.Addr(), slog.Default())
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	source, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	service, err := alignd.NewService(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	stats, err := service.UploadCatalog(ctx, filepath.Base(c.String("file")), source)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	fmt.Printf("Loaded catalog revision %s\n", stats.Revision)
	fmt.Printf("  Answers:    %d\n", stats.AnswersCount)
	fmt.Printf("  Alignments: %d\n", stats.AlignmentsCount)
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	var opts []alignd.ServiceOption
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, alignd.WithEmbedding(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(model),
		)))
	}

	service, err := alignd.NewService(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	restored, err := service.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	if !restored {
		return fmt.Errorf("no catalog loaded, run 'alignd load' first")
	}

	sub, err := buildSubmission(c)
	if err != nil {
		return err
	}

	results, err := service.Match(ctx, sub)
	if err != nil {
		return err
	}

	if unmatched, err := service.Unmatched(sub); err == nil && len(unmatched) > 0 {
		fmt.Fprintf(os.Stderr, "Unmatched answers: %s\n", strings.Join(unmatched, ", "))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := alignd.NewService(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	restored, err := service.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	if !restored {
		return fmt.Errorf("no catalog loaded, run 'alignd load' first")
	}

	stats, err := service.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Revision:   %s\n", stats.Revision)
	fmt.Printf("Updated:    %s\n", stats.UpdatedAt.Format(time.RFC3339))
	fmt.Printf("Answers:    %d\n", stats.AnswersCount)
	fmt.Printf("Alignments: %d\n", stats.AlignmentsCount)
	for alignmentType, count := range stats.ByType {
		fmt.Printf("  %-10s %d\n", alignmentType, count)
	}
	return nil
}

func revisionsCommand(c *cli.Context) error {
	service, err := alignd.NewService(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	revisions, err := service.Revisions(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(revisions) == 0 {
		fmt.Println("No catalog uploads recorded.")
		return nil
	}

	for _, revision := range revisions {
		fmt.Printf("%s  %s  answers=%d alignments=%d  %s\n",
			revision.Id,
			revision.UploadedAt.Format(time.RFC3339),
			revision.AnswersCount,
			revision.AlignmentsCount,
			revision.Filename)
	}
	return nil
}

// buildSubmission assembles the quiz input from either a JSON file or
// repeated --answer flags.
func buildSubmission(c *cli.Context) (core.Submission, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return core.Submission{}, fmt.Errorf("failed to read submission file: %w", err)
		}
		var req server.MatchRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return core.Submission{}, fmt.Errorf("failed to parse submission file: %w", err)
		}
		return req.Submission(), nil
	}

	answers := c.StringSlice("answer")
	if len(answers) == 0 {
		return core.Submission{}, fmt.Errorf("provide --answer flags or a --file submission")
	}
	return core.Submission{Questions: []core.QuestionAnswers{
		{Question: "cli", Answers: answers},
	}}, nil
}

func matchConfigFrom(cfg *config.Config) match.Config {
	return match.Config{
		AxisDistanceThreshold: cfg.Match.AxisDistanceThreshold,
		MinResults:            cfg.Match.MinResults,
		MaxResults:            cfg.Match.MaxResults,
		MinExactComponents:    cfg.Match.MinExactComponents,
		VectorTimeout:         cfg.Match.VectorTimeout,
	}
}

func setupLogger(c *cli.Context) error {
	return applyLogLevel(c.String("log-level"))
}

func applyLogLevel(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
