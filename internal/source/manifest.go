package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/speaker-scribe/internal/storage"
)

const manifestName = "episodes.csv"

var requiredColumns = []string{"podcast_id", "episode_id", "audio_url"}

type implManifest struct {
	store  storage.Store
	prefix string
}

// NewManifest enumerates the episodes listed in the bucket's episodes.csv.
func NewManifest(store storage.Store, prefix string) Source {
	return &implManifest{store: store, prefix: prefix}
}

// ManifestKey returns the object key of the manifest for prefix.
func ManifestKey(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return manifestName
	}
	return prefix + "/" + manifestName
}

func (m *implManifest) Enumerate(ctx context.Context) ([]WorkItem, error) {
	key := ManifestKey(m.prefix)

	data, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch manifest %s: %w", ErrEnumeration, key, err)
	}

	items, err := ParseManifest(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse manifest %s: %w", ErrEnumeration, key, err)
	}
	return items, nil
}

// ParseManifest reads a CSV with a header row. Every data row becomes one
// KindEpisode item; columns other than the required ones are ignored.
func ParseManifest(r io.Reader) ([]WorkItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty manifest", ErrMissingColumns)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	var items []WorkItem
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(items)+2, err)
		}
		items = append(items, WorkItem{
			Kind:      KindEpisode,
			PodcastID: field(record, "podcast_id"),
			EpisodeID: field(record, "episode_id"),
			AudioURL:  field(record, "audio_url"),
		})
	}

	return items, nil
}
