package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/use-agent/qualify/classifier"
	"github.com/use-agent/qualify/config"
	"github.com/use-agent/qualify/llm"
	"github.com/use-agent/qualify/pipeline"
	"github.com/use-agent/qualify/retry"
	"github.com/use-agent/qualify/scraper"
	"github.com/use-agent/qualify/store"
)

func main() {
	urlsFile := flag.String("urls", "", "path to a file with one URL per line (blank lines and # comments skipped)")
	flag.Parse()

	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load() // best effort; env vars win anyway
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	// ── 3. Validate the input contract (fatal on violation) ────────
	urls, err := loadURLs(*urlsFile, flag.Args())
	if err != nil {
		slog.Error("invalid input", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("qualify starting",
		"urls", len(urls),
		"model", cfg.LLM.Model,
		"requestDelay", cfg.Pipeline.RequestDelay,
		"maxRetries", cfg.Retry.MaxAttempts,
	)

	// ── 4. Wire the pipeline ────────────────────────────────────────
	sink, err := store.OpenBadger(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open record store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			slog.Warn("record store close failed", "error", err)
		}
	}()

	client := llm.NewClient(nil, cfg.LLM)
	cl := classifier.New(client, cfg.Pipeline.Prompt, retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
	})
	session := scraper.NewSession(cfg.Browser, cfg.Scraper)

	// ── 5. Run ──────────────────────────────────────────────────────
	run := pipeline.New(session, cl, sink, cfg.Pipeline.RequestDelay)
	summary, err := run.Run(context.Background(), urls)
	if err != nil {
		slog.Error("run interrupted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d URLs: %d qualified, %d disqualified\n",
		summary.Total, summary.Qualified, summary.Disqualified)
}

// loadURLs builds the input list from the -urls file and/or positional
// arguments, in that order. An empty list is a fatal input error.
func loadURLs(path string, args []string) ([]string, error) {
	var urls []string

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open URL list: %w", err)
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read URL list: %w", err)
		}
	}

	urls = append(urls, args...)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs provided (use -urls FILE or positional arguments)")
	}
	return urls, nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}
