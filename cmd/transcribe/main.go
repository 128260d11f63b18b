package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/speaker-scribe/internal/config"
	"github.com/nguyentantai21042004/speaker-scribe/internal/dispatcher"
	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
	"github.com/nguyentantai21042004/speaker-scribe/internal/pipeline"
	"github.com/nguyentantai21042004/speaker-scribe/internal/processor"
	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
	"github.com/nguyentantai21042004/speaker-scribe/internal/speaker"
	"github.com/nguyentantai21042004/speaker-scribe/internal/storage"
	"github.com/nguyentantai21042004/speaker-scribe/internal/transcriber"
	"github.com/nguyentantai21042004/speaker-scribe/internal/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	mode := flag.String("mode", "", "source mode override: listing, manifest or feed")
	flag.Parse()

	ctx := context.Background()

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath, config.WithSourceMode(*mode))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Speaker-labelled transcription")
	log.Info(ctx, "========================================")
	log.Debug(ctx, "System: %s/%s, CPU Cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Bucket: %s, prefix: %q, mode: %s", cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Source.Mode)
	log.Info(ctx, "Speaker backend: %s", cfg.Speaker.Backend)

	// Initialize dependencies
	store, err := storage.New(ctx, storage.Options{
		Bucket:   cfg.Storage.Bucket,
		Region:   cfg.Storage.Region,
		Endpoint: cfg.Storage.Endpoint,
	})
	if err != nil {
		log.Error(ctx, "Failed to create storage client: %v", err)
		os.Exit(1)
	}

	httpClient := &http.Client{}
	tr := transcriber.New(cfg.AssemblyAI.BaseURL, cfg.AssemblyAI.APIKey, cfg.AssemblyAI.PollInterval, httpClient, log)

	answerer, err := newAnswerer(ctx, cfg, transcriber.NewClient(cfg.AssemblyAI.BaseURL, cfg.AssemblyAI.APIKey, httpClient))
	if err != nil {
		log.Error(ctx, "Failed to create %s answerer: %v", cfg.Speaker.Backend, err)
		os.Exit(1)
	}
	resolver := speaker.New(answerer, cfg.Speaker.Model, cfg.Speaker.Instruction, log)

	proc := processor.New(cfg, store, tr, resolver, log)
	disp := dispatcher.New(cfg.Performance.MaxConcurrent, cfg.Performance.ItemTimeout, log)

	p := pipeline.New(pipeline.Options{
		Mode:         cfg.Source.Mode,
		Source:       newSource(cfg, store, httpClient),
		Processor:    proc,
		Dispatcher:   disp,
		Store:        store,
		ReportPrefix: cfg.Output.ReportPrefix,
	}, log)

	if cfg.Source.WatchDir == "" {
		p.Run(ctx)
		return
	}

	if err := watch(ctx, cfg, p, log); err != nil {
		log.Error(ctx, "Watcher error: %v", err)
		os.Exit(1)
	}
}

func newSource(cfg *config.Config, store storage.Store, client *http.Client) source.Source {
	switch cfg.Source.Mode {
	case config.ModeManifest:
		return source.NewManifest(store, cfg.Storage.Prefix)
	case config.ModeFeed:
		return source.NewFeed(cfg.Source.FeedURL, cfg.Source.FeedPodcastID, client)
	default:
		return source.NewListing(store, cfg.Storage.Prefix)
	}
}

func newAnswerer(ctx context.Context, cfg *config.Config, client *aai.Client) (speaker.Answerer, error) {
	switch cfg.Speaker.Backend {
	case config.BackendGemini:
		return speaker.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, "")
	case config.BackendOpenAI:
		return speaker.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, ""), nil
	default:
		return speaker.NewLeMUR(client), nil
	}
}

// watch runs manifest batches from the drop folder until SIGINT or SIGTERM.
func watch(ctx context.Context, cfg *config.Config, p pipeline.Pipeline, log logger.Logger) error {
	if err := os.MkdirAll(cfg.Source.WatchDir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", cfg.Source.WatchDir, err)
	}

	w, err := watcher.New(cfg.Source.WatchDir, watcher.ManifestHandler(p), log, 1)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Watching %s for manifest files", cfg.Source.WatchDir)
	log.Info(ctx, "Concurrent jobs per batch: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received, waiting for the running batch...")
		cancel()
		err = <-errChan
	case err = <-errChan:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info(ctx, "Watcher stopped")
	return nil
}
