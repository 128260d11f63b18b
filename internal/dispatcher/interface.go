package dispatcher

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

// Handler processes one work item.
type Handler func(ctx context.Context, item source.WorkItem) error

// Failure records why one item did not complete.
type Failure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Report summarizes one Dispatch call.
type Report struct {
	Total     int           `json:"total"`
	Succeeded []string      `json:"succeeded"`
	Failed    []Failure     `json:"failed"`
	Duration  time.Duration `json:"duration_ns"`
}

// Dispatcher fans work items out to a Handler under a concurrency cap.
type Dispatcher interface {
	// Dispatch invokes h once per item and waits for all of them. Item
	// failures are logged and reported, never returned.
	Dispatch(ctx context.Context, items []source.WorkItem, h Handler) Report
	MaxConcurrent() int
}
