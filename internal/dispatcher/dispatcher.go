package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

func (d *implDispatcher) Dispatch(ctx context.Context, items []source.WorkItem, h Handler) Report {
	startTime := time.Now()
	report := Report{Total: len(items)}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		completed int
	)

	finish := func(item source.WorkItem, err error) {
		mu.Lock()
		defer mu.Unlock()

		completed++
		if err != nil {
			d.logger.Error(ctx, "Error processing %s: %v", item.ID(), err)
			report.Failed = append(report.Failed, Failure{ID: item.ID(), Error: err.Error()})
		} else {
			report.Succeeded = append(report.Succeeded, item.ID())
		}
		d.logger.Info(ctx, "Progress: %d/%d files processed", completed, len(items))
	}

	sem := newSemaphore(d.maxConcurrent)
	for _, item := range items {
		if err := sem.acquire(ctx); err != nil {
			finish(item, fmt.Errorf("not started: %w", err))
			continue
		}

		wg.Add(1)
		go func(item source.WorkItem) {
			defer wg.Done()
			defer sem.release()

			finish(item, d.run(ctx, item, h))
		}(item)
	}
	wg.Wait()

	report.Duration = time.Since(startTime)
	d.logger.Info(ctx, "Batch complete: %d succeeded, %d failed, %d total (%s)",
		len(report.Succeeded), len(report.Failed), report.Total, report.Duration.Round(time.Millisecond))

	return report
}

// run invokes h for one item, applying the item deadline and turning a
// panic into an error.
func (d *implDispatcher) run(ctx context.Context, item source.WorkItem, h Handler) (err error) {
	if d.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.itemTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return h(ctx, item)
}
