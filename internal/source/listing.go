package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/speaker-scribe/internal/storage"
)

// MediaExtensions are matched as exact, case-sensitive key suffixes.
var MediaExtensions = []string{".mp3", ".wav", ".m4a", ".mp4", ".mov", ".avi", ".mkv"}

type implListing struct {
	store  storage.Store
	prefix string
}

// NewListing enumerates media objects under prefix.
func NewListing(store storage.Store, prefix string) Source {
	return &implListing{store: store, prefix: prefix}
}

func (l *implListing) Enumerate(ctx context.Context) ([]WorkItem, error) {
	keys, err := l.store.List(ctx, l.prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list objects: %w", ErrEnumeration, err)
	}

	var items []WorkItem
	for _, key := range keys {
		if IsMediaKey(key) {
			items = append(items, WorkItem{Kind: KindObject, Key: key})
		}
	}
	return items, nil
}

// IsMediaKey reports whether key ends in one of MediaExtensions.
func IsMediaKey(key string) bool {
	for _, ext := range MediaExtensions {
		if strings.HasSuffix(key, ext) {
			return true
		}
	}
	return false
}
