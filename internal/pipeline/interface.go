package pipeline

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/speaker-scribe/internal/dispatcher"
	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

// RunReport is the outcome of one batch, uploaded as JSON when a report
// prefix is configured.
type RunReport struct {
	RunID            string    `json:"run_id"`
	Mode             string    `json:"mode"`
	StartedAt        time.Time `json:"started_at"`
	EnumerationError string    `json:"enumeration_error,omitempty"`
	dispatcher.Report
}

// Pipeline runs batches of work items through the processor.
type Pipeline interface {
	// Run enumerates the configured source and processes every item found.
	Run(ctx context.Context) RunReport
	// RunItems processes an already built item list.
	RunItems(ctx context.Context, mode string, items []source.WorkItem) RunReport
}
