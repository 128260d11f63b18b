package processor

import (
	"github.com/nguyentantai21042004/speaker-scribe/internal/config"
	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
	"github.com/nguyentantai21042004/speaker-scribe/internal/speaker"
	"github.com/nguyentantai21042004/speaker-scribe/internal/storage"
	"github.com/nguyentantai21042004/speaker-scribe/internal/transcriber"
)

type implProcessor struct {
	cfg         *config.Config
	store       storage.Store
	transcriber transcriber.Transcriber
	resolver    speaker.Resolver
	logger      logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, store storage.Store, tr transcriber.Transcriber, res speaker.Resolver, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		store:       store,
		transcriber: tr,
		resolver:    res,
		logger:      log,
	}
}
