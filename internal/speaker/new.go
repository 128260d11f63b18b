package speaker

import (
	"github.com/nguyentantai21042004/speaker-scribe/internal/logger"
)

type implResolver struct {
	answerer    Answerer
	model       string
	instruction string
	logger      logger.Logger
}

// New creates a Resolver that asks answerer, using model and instruction
// for every query.
func New(answerer Answerer, model, instruction string, log logger.Logger) Resolver {
	return &implResolver{
		answerer:    answerer,
		model:       model,
		instruction: instruction,
		logger:      log,
	}
}
