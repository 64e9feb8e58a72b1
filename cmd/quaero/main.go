// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/quaero/ai"
	"github.com/poiesic/quaero/ai/openai"
	"github.com/poiesic/quaero/core"
	"github.com/poiesic/quaero/docstore"
	"github.com/poiesic/quaero/memory"
	"github.com/poiesic/quaero/resolver"
	"github.com/poiesic/quaero/server"
	"github.com/poiesic/quaero/source"
	"github.com/poiesic/quaero/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "quaero",
		Usage: "Tiered question answering over documents, vectors, and the web",
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
				Usage:  "Run the HTTP query server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to YAML server config",
					},
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8080",
					},
					&cli.StringFlag{
						Name:  "docs-dir",
						Usage: "Directory of documents to ingest and watch",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB directory for session persistence",
					},
					&cli.StringFlag{
						Name:  "llm-host",
						Usage: "LLM service host URL for web answer synthesis",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "llm-model",
						Usage: "LLM model name for web answer synthesis",
						Value: "qwen2.5:3b",
					},
					&cli.BoolFlag{
						Name:  "no-web",
						Usage: "Disable the web search tier",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Vector store acceptance threshold",
						Value: 0.3,
					},
					&cli.DurationFlag{
						Name:  "sweep-interval",
						Usage: "How often to sweep expired sessions",
						Value: time.Hour,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question from the command line",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "doc",
						Usage: "Document file to load before answering (repeatable)",
					},
					&cli.StringFlag{
						Name:  "llm-host",
						Usage: "LLM service host URL for web answer synthesis",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "llm-model",
						Usage: "LLM model name for web answer synthesis",
						Value: "qwen2.5:3b",
					},
					&cli.BoolFlag{
						Name:  "no-web",
						Usage: "Disable the web search tier",
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
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := docstore.NewStore()
	loader, err := docstore.NewLoader(store)
	if err != nil {
		return err
	}

	mem, closeStorage, err := buildMemory(ctx, c.String("db"))
	if err != nil {
		return err
	}
	defer closeStorage()

	res, err := buildResolver(c, store, mem)
	if err != nil {
		return err
	}

	if dir := c.String("docs-dir"); dir != "" {
		if err := ingestDirectory(loader, dir); err != nil {
			return err
		}
		watcher, err := docstore.NewWatcher(loader, store)
		if err != nil {
			return err
		}
		defer watcher.Close()
		if err := watcher.Watch(ctx, dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go sweepLoop(ctx, res, c.Duration("sweep-interval"))

	config := server.DefaultServerConfig()
	if path := c.String("config"); path != "" {
		config, err = server.LoadConfig(path)
		if err != nil {
			return err
		}
	}
	if c.IsSet("addr") || config.Addr == "" {
		config.Addr = c.String("addr")
	}

	srv, err := server.NewServer(res, store, loader, server.WithConfig(config))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := docstore.NewStore()
	loader, err := docstore.NewLoader(store)
	if err != nil {
		return err
	}
	for _, path := range c.StringSlice("doc") {
		if _, err := loader.LoadFile(path); err != nil {
			return err
		}
	}

	res, err := buildResolver(c, store, memory.NewMemory())
	if err != nil {
		return err
	}

	result := res.Resolve(ctx, core.Question{Text: question})
	fmt.Println(result.Answer)
	fmt.Fprintf(os.Stderr, "source=%s confidence=%.2f elapsed=%s\n",
		result.Source, result.Confidence, result.Elapsed.Round(time.Millisecond))
	return nil
}

// buildResolver assembles the tier stack shared by serve and ask.
func buildResolver(c *cli.Context, store *docstore.Store, mem *memory.Memory) (*resolver.Resolver, error) {
	local, err := source.NewLocal(store)
	if err != nil {
		return nil, err
	}

	opts := []resolver.Option{
		resolver.WithLocal(local),
		resolver.WithMemory(mem),
	}

	if !c.Bool("no-web") {
		webOpts := []source.WebOption{}
		aiConfig := ai.NewConfig(
			ai.WithLLMHost(c.String("llm-host")),
			ai.WithLLMModel(c.String("llm-model")),
		)
		summarizer, err := openai.NewSummarizer(aiConfig)
		if err != nil {
			slog.Warn("summarizer unavailable, web answers will use raw snippets", "err", err)
		} else {
			webOpts = append(webOpts, source.WithSummarizer(summarizer))
		}

		web, err := source.NewWeb(source.NewDuckDuckGo(), webOpts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, resolver.WithWeb(web))
	}

	config := resolver.DefaultConfig()
	if c.IsSet("threshold") {
		config.VectorThreshold = c.Float64("threshold")
	}
	opts = append(opts, resolver.WithConfig(config))

	return resolver.NewResolver(opts...), nil
}

// buildMemory wires session persistence when a database path is given.
func buildMemory(ctx context.Context, dbPath string) (*memory.Memory, func(), error) {
	if dbPath == "" {
		return memory.NewMemory(), func() {}, nil
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	repo, err := badger.NewSessionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	mem := memory.NewMemory(memory.WithRepository(repo))
	if err := mem.Restore(ctx); err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, err
	}

	closeStorage := func() {
		repo.Close()
		backend.Close()
	}
	return mem, closeStorage, nil
}

// ingestDirectory loads the documents already present before the
// watcher takes over for new ones.
func ingestDirectory(loader *docstore.Loader, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".txt", ".md":
		default:
			continue
		}
		if _, err := loader.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			slog.Warn("document skipped", "file", entry.Name(), "err", err)
		}
	}
	return nil
}

func sweepLoop(ctx context.Context, res *resolver.Resolver, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res.SweepExpiredSessions(ctx)
		}
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
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
