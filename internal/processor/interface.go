package processor

import (
	"context"

	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

// Processor runs the full transcription pipeline for a single work item.
type Processor interface {
	Process(ctx context.Context, item source.WorkItem) error
}
