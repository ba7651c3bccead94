package repositories

import "context"

// TextToSpeech abstracts speech synthesis services
type TextToSpeech interface {
	// SynthesizeSpeech converts text to raw linear PCM samples.
	SynthesizeSpeech(ctx context.Context, apiKey, text string) ([]byte, error)
}
