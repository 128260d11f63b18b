package dispatcher

import (
	"time"

	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
)

type implDispatcher struct {
	maxConcurrent int
	itemTimeout   time.Duration
	logger        logger.Logger
}

// New creates a Dispatcher running at most maxConcurrent handlers at once.
// itemTimeout bounds each handler; zero means no deadline.
func New(maxConcurrent int, itemTimeout time.Duration, log logger.Logger) Dispatcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &implDispatcher{
		maxConcurrent: maxConcurrent,
		itemTimeout:   itemTimeout,
		logger:        log,
	}
}

func (d *implDispatcher) MaxConcurrent() int {
	return d.maxConcurrent
}
