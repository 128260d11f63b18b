package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
)

type implWatcher struct {
	dir           string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settle        time.Duration
	wg            sync.WaitGroup
}

// Start blocks, handing every new .csv file in the directory to the handler,
// until ctx is cancelled. In-flight handlers are waited for before return.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Manifest watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for running batches to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Manifest watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isManifestFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-manifest file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New manifest detected: %s", event.Name)
			time.Sleep(w.settle)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					// A started batch runs to completion after shutdown begins.
					if err := w.handler(context.WithoutCancel(ctx), filePath); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isManifestFile(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && strings.ToLower(filepath.Ext(name)) == ".csv"
}
