package repositories

import "context"

// LargeLanguageModel abstracts the text-completion provider
type LargeLanguageModel interface {
	// Generate sends a single composed prompt and returns the first
	// candidate's text. It returns domain.ErrNoReplyText when the
	// provider answered without any usable text.
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}
