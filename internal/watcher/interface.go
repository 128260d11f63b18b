package watcher

import "context"

// Watcher monitors a local directory for new manifest files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one newly created file.
type EventHandler func(ctx context.Context, filePath string) error
