package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

func (p *implPipeline) Run(ctx context.Context) RunReport {
	report := p.newReport(p.mode)

	var items []source.WorkItem
	if p.source == nil {
		report.EnumerationError = "no source configured"
		p.logger.Error(ctx, "Enumeration failed: %s", report.EnumerationError)
	} else {
		var err error
		items, err = p.source.Enumerate(ctx)
		if err != nil {
			// Treated as an empty batch.
			p.logger.Error(ctx, "Enumeration failed: %v", err)
			report.EnumerationError = err.Error()
			items = nil
		}
	}

	return p.dispatch(ctx, report, items)
}

func (p *implPipeline) RunItems(ctx context.Context, mode string, items []source.WorkItem) RunReport {
	return p.dispatch(ctx, p.newReport(mode), items)
}

func (p *implPipeline) newReport(mode string) RunReport {
	return RunReport{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}
}

func (p *implPipeline) dispatch(ctx context.Context, report RunReport, items []source.WorkItem) RunReport {
	if len(items) == 0 {
		p.logger.Info(ctx, "No audio files found to process")
		p.uploadReport(ctx, report)
		return report
	}

	p.logger.Info(ctx, "Found %d audio files to process", len(items))
	p.logger.Info(ctx, "Processing with max %d concurrent jobs", p.dispatcher.MaxConcurrent())

	report.Report = p.dispatcher.Dispatch(ctx, items, p.processor.Process)
	p.uploadReport(ctx, report)
	return report
}

// uploadReport writes the report as JSON under the report prefix. Upload
// errors are logged only.
func (p *implPipeline) uploadReport(ctx context.Context, report RunReport) {
	if p.reportPrefix == "" {
		return
	}

	key := ReportKey(p.reportPrefix, report.RunID)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		p.logger.Warn(ctx, "Failed to encode run report: %v", err)
		return
	}
	if err := p.store.Put(ctx, key, data); err != nil {
		p.logger.Warn(ctx, "Failed to upload run report %s: %v", key, err)
		return
	}
	p.logger.Info(ctx, "Run report written to %s", key)
}

// ReportKey is where the report of run runID is stored.
func ReportKey(prefix, runID string) string {
	return path.Join(strings.TrimSuffix(prefix, "/"), fmt.Sprintf("%s.json", runID))
}
