package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/speaker-scribe/internal/source"
)

// Process runs presign, transcribe, label and upload in order. The first
// failing step aborts the item and nothing is written for it.
func (p *implProcessor) Process(ctx context.Context, item source.WorkItem) error {
	startTime := time.Now()
	p.logger.Debug(ctx, "Starting item: %s", item.ID())

	// Step 1: Resolve a URL the transcription service can fetch
	audioURL, err := p.audioURL(ctx, item)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}

	// Step 2: Transcribe with diarization
	tr, err := p.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	p.logger.Debug(ctx, "Transcript %s for %s: %d utterances, language %s",
		tr.ID, item.ID(), len(tr.Utterances), tr.LanguageCode)

	// Step 3: Replace speaker labels with inferred names
	text, err := p.resolver.Label(ctx, tr)
	if err != nil {
		return fmt.Errorf("label speakers: %w", err)
	}

	// Step 4: Upload the rendered transcript
	dest := item.DestinationKey()
	if err := p.store.Put(ctx, dest, []byte(text)); err != nil {
		return fmt.Errorf("upload %s: %w", dest, err)
	}

	// Step 5: Optional docx copy next to the text
	if p.cfg.Output.Docx {
		docxKey := strings.TrimSuffix(dest, ".txt") + ".docx"
		if err := p.uploadDocx(ctx, item, text, docxKey); err != nil {
			return fmt.Errorf("upload %s: %w", docxKey, err)
		}
	}

	p.logger.Info(ctx, "Successfully transcribed %s to %s", item.ID(), dest)
	p.logger.Debug(ctx, "Processing time for %s: %s", item.ID(), time.Since(startTime))
	return nil
}

func (p *implProcessor) audioURL(ctx context.Context, item source.WorkItem) (string, error) {
	if item.Kind == source.KindObject {
		return p.store.PresignGet(ctx, item.Key, p.cfg.Storage.PresignExpiry)
	}
	if item.AudioURL == "" {
		return "", fmt.Errorf("item %s has no audio url", item.ID())
	}
	return item.AudioURL, nil
}
