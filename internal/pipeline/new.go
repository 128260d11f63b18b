package pipeline

import (
	"github.com/nguyentantai21042004/speaker-scribe/internal/dispatcher"
	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
	"github.com/nguyentantai21042004/speaker-scribe/internal/processor"
	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
	"github.com/nguyentantai21042004/speaker-scribe/internal/storage"
)

type implPipeline struct {
	mode         string
	source       source.Source
	processor    processor.Processor
	dispatcher   dispatcher.Dispatcher
	store        storage.Store
	reportPrefix string
	logger       logger.Logger
}

// Options wires a Pipeline. Source may be nil when only RunItems is used.
type Options struct {
	Mode         string
	Source       source.Source
	Processor    processor.Processor
	Dispatcher   dispatcher.Dispatcher
	Store        storage.Store
	ReportPrefix string
}

// New creates a new Pipeline instance
func New(opts Options, log logger.Logger) Pipeline {
	return &implPipeline{
		mode:         opts.Mode,
		source:       opts.Source,
		processor:    opts.Processor,
		dispatcher:   opts.Dispatcher,
		store:        opts.Store,
		reportPrefix: opts.ReportPrefix,
		logger:       log,
	}
}
