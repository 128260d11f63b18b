package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Show</title>
    <item>
      <title>Episode One</title>
      <guid>https://example.com/episodes/1</guid>
      <enclosure url="https://cdn.example.com/1.mp3" type="audio/mpeg" length="100"/>
    </item>
    <item>
      <title>Blog post</title>
      <guid>post-2</guid>
    </item>
    <item>
      <title>Episode Three</title>
      <enclosure url="https://cdn.example.com/3.mp4" type="video/mp4" length="100"/>
    </item>
    <item>
      <title>Artwork</title>
      <guid>art-4</guid>
      <enclosure url="https://cdn.example.com/4.png" type="image/png" length="100"/>
    </item>
  </channel>
</rss>`

func TestFeedEnumerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, testFeed)
	}))
	defer srv.Close()

	items, err := NewFeed(srv.URL, "7", srv.Client()).Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Enumerate() returned %d items, want 2: %+v", len(items), items)
	}

	first := items[0]
	if first.Kind != KindEpisode || first.PodcastID != "7" {
		t.Errorf("first = %+v", first)
	}
	if first.EpisodeID != "example.com-episodes-1" {
		t.Errorf("EpisodeID = %q, want sanitized guid", first.EpisodeID)
	}
	if first.AudioURL != "https://cdn.example.com/1.mp3" {
		t.Errorf("AudioURL = %q", first.AudioURL)
	}
	if items[1].EpisodeID != "3" {
		t.Errorf("EpisodeID = %q, want position fallback 3", items[1].EpisodeID)
	}
	if got := items[1].DestinationKey(); got != "podcast_id=7/episode_id=3/3_transcript.txt" {
		t.Errorf("DestinationKey() = %q", got)
	}
}

func TestFeedEnumerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := NewFeed(srv.URL, "7", srv.Client()).Enumerate(context.Background())
	if !errors.Is(err, ErrEnumeration) {
		t.Errorf("Enumerate() error = %v, want ErrEnumeration", err)
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-123", "abc-123"},
		{"https://example.com/ep/9?x=1", "example.com-ep-9-x-1"},
		{"  ", ""},
		{"tag:example.com,2024:ep7", "tag-example.com-2024-ep7"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeID(tt.in); got != tt.want {
				t.Errorf("sanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
