package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
	"github.com/nguyentantai21042004/speaker-scribe/internal/pipeline"
	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

func TestIsManifestFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/drop/episodes.csv", true},
		{"/drop/EPISODES.CSV", true},
		{"/drop/episodes.csv.tmp", false},
		{"/drop/.episodes.csv", false},
		{"/drop/ep1.mp3", false},
		{"/drop/notes", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isManifestFile(tt.path); got != tt.want {
				t.Errorf("isManifestFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWatcherHandlesNewManifests(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 4)

	w, err := New(dir, func(ctx context.Context, filePath string) error {
		handled <- filePath
		return nil
	}, logger.Discard(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(dir, "batch.csv")
	if err := os.WriteFile(manifest, []byte("podcast_id,episode_id,audio_url\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-handled:
		if got != manifest {
			t.Errorf("handled %q, want %q", got, manifest)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("manifest was not handled")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
	if len(handled) != 0 {
		t.Errorf("unexpected extra handled file %q", <-handled)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Discard(), 1); err == nil {
		t.Error("New() error = nil for a missing directory")
	}
}

type fakePipeline struct {
	mu    sync.Mutex
	mode  string
	items []source.WorkItem
}

func (f *fakePipeline) Run(ctx context.Context) pipeline.RunReport {
	return pipeline.RunReport{}
}

func (f *fakePipeline) RunItems(ctx context.Context, mode string, items []source.WorkItem) pipeline.RunReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode, f.items = mode, items
	return pipeline.RunReport{}
}

func TestManifestHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := "podcast_id,episode_id,audio_url\n7,42,https://cdn.example.com/42.mp3\n7,43,https://cdn.example.com/43.mp3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &fakePipeline{}
	if err := ManifestHandler(p)(context.Background(), path); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if p.mode != "manifest" || len(p.items) != 2 {
		t.Fatalf("RunItems(%q, %d items)", p.mode, len(p.items))
	}
	if p.items[1].DestinationKey() != "podcast_id=7/episode_id=43/43_transcript.txt" {
		t.Errorf("item = %+v", p.items[1])
	}
}

func TestManifestHandlerMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte("podcast_id,episode_id\n7,42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := &fakePipeline{}
	err := ManifestHandler(p)(context.Background(), path)
	if !errors.Is(err, source.ErrMissingColumns) {
		t.Errorf("handler error = %v, want ErrMissingColumns", err)
	}
	if p.items != nil {
		t.Error("RunItems called for an invalid manifest")
	}
	if !strings.Contains(err.Error(), "batch.csv") {
		t.Errorf("error %q does not name the file", err)
	}
}
