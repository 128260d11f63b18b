package watcher

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/speaker-scribe/internal/config"
	"github.com/nguyentantai21042004/speaker-scribe/internal/pipeline"
	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

// ManifestHandler parses a local manifest file and runs it as one batch.
func ManifestHandler(p pipeline.Pipeline) EventHandler {
	return func(ctx context.Context, filePath string) error {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("open manifest: %w", err)
		}
		defer f.Close()

		items, err := source.ParseManifest(f)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}

		p.RunItems(ctx, config.ModeManifest, items)
		return nil
	}
}
