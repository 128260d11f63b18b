package transcriber

import (
	"context"
	"fmt"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// Transcribe submits audioURL with language detection and speaker labels
// enabled, then polls until the job completes or fails.
func (a *implAssemblyAI) Transcribe(ctx context.Context, audioURL string) (Transcript, error) {
	submitted, err := a.client.Transcripts.SubmitFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		SpeakerLabels:     aai.Bool(true),
	})
	if err != nil {
		return Transcript{}, fmt.Errorf("submit: %w", err)
	}

	id := aai.ToString(submitted.ID)
	if id == "" {
		return Transcript{}, fmt.Errorf("submit: response carries no transcript id")
	}
	a.logger.Debug(ctx, "Transcript %s submitted", id)

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	current := submitted
	for {
		switch current.Status {
		case aai.TranscriptStatusCompleted:
			tr := fromSDK(current)
			a.logger.Debug(ctx, "Transcript %s completed: %d utterances, language %s",
				tr.ID, len(tr.Utterances), tr.LanguageCode)
			return tr, nil
		case aai.TranscriptStatusError:
			return Transcript{}, fmt.Errorf("%w: transcript %s: %s", ErrTranscriptFailed, id, aai.ToString(current.Error))
		case aai.TranscriptStatusQueued, aai.TranscriptStatusProcessing:
		default:
			return Transcript{}, fmt.Errorf("transcript %s: unexpected status %q", id, current.Status)
		}

		select {
		case <-ctx.Done():
			return Transcript{}, ctx.Err()
		case <-ticker.C:
		}

		current, err = a.client.Transcripts.Get(ctx, id)
		if err != nil {
			return Transcript{}, fmt.Errorf("poll %s: %w", id, err)
		}
	}
}

func fromSDK(t aai.Transcript) Transcript {
	tr := Transcript{
		ID:           aai.ToString(t.ID),
		LanguageCode: string(t.LanguageCode),
		Utterances:   make([]Utterance, 0, len(t.Utterances)),
	}
	for _, u := range t.Utterances {
		tr.Utterances = append(tr.Utterances, Utterance{
			Speaker:    aai.ToString(u.Speaker),
			Text:       aai.ToString(u.Text),
			Start:      aai.ToInt64(u.Start),
			End:        aai.ToInt64(u.End),
			Confidence: aai.ToFloat64(u.Confidence),
		})
	}
	return tr
}
