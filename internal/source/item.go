package source

import (
	"fmt"
	"strings"
)

type Kind int

const (
	// KindObject is a media object in the bucket, transcribed through a presigned URL.
	KindObject Kind = iota
	// KindEpisode is a podcast episode with an externally reachable audio URL.
	KindEpisode
)

// WorkItem identifies one audio source to transcribe.
type WorkItem struct {
	Kind      Kind
	Key       string
	PodcastID string
	EpisodeID string
	AudioURL  string
	Title     string
}

// ID returns a short identifier for logs and reports.
func (w WorkItem) ID() string {
	if w.Kind == KindObject {
		return w.Key
	}
	return w.PodcastID + "/" + w.EpisodeID
}

// DestinationKey is where the rendered transcript is written.
func (w WorkItem) DestinationKey() string {
	if w.Kind == KindObject {
		return fmt.Sprintf("transcripts/%s.txt", basename(w.Key))
	}
	return fmt.Sprintf("podcast_id=%s/episode_id=%s/%s_transcript.txt", w.PodcastID, w.EpisodeID, w.EpisodeID)
}

func basename(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
