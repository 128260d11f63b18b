package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
)

var reUnsafeID = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type implFeed struct {
	url       string
	podcastID string
	parser    *gofeed.Parser
}

// NewFeed enumerates the audio enclosures of an RSS or Atom podcast feed.
func NewFeed(url, podcastID string, client *http.Client) Source {
	parser := gofeed.NewParser()
	if client != nil {
		parser.Client = client
	}
	return &implFeed{url: url, podcastID: podcastID, parser: parser}
}

func (f *implFeed) Enumerate(ctx context.Context) ([]WorkItem, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed %s: %w", ErrEnumeration, f.url, err)
	}

	var items []WorkItem
	for i, entry := range feed.Items {
		audioURL := mediaEnclosure(entry)
		if audioURL == "" {
			continue
		}
		items = append(items, WorkItem{
			Kind:      KindEpisode,
			PodcastID: f.podcastID,
			EpisodeID: episodeID(entry, i+1),
			AudioURL:  audioURL,
			Title:     strings.TrimSpace(entry.Title),
		})
	}
	return items, nil
}

func mediaEnclosure(entry *gofeed.Item) string {
	for _, enc := range entry.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		t := strings.ToLower(enc.Type)
		if t == "" || strings.HasPrefix(t, "audio/") || strings.HasPrefix(t, "video/") {
			return enc.URL
		}
	}
	return ""
}

// episodeID derives a key-safe id from the entry GUID, then its link, then
// its 1-based position in the feed.
func episodeID(entry *gofeed.Item, position int) string {
	for _, candidate := range []string{entry.GUID, entry.Link} {
		if id := sanitizeID(candidate); id != "" {
			return id
		}
	}
	return strconv.Itoa(position)
}

func sanitizeID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.Trim(reUnsafeID.ReplaceAllString(s, "-"), "-.")
}
