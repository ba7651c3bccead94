package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when the upstream API key is not configured
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

	// ErrNoReplyText is returned when the completion response carries no text
	ErrNoReplyText = errors.New("no reply text in upstream response")

	// ErrNoAudio is returned when the speech response carries no audio payload
	ErrNoAudio = errors.New("no audio data in upstream response")
)

// UpstreamError reports a non-success answer from the Gemini API.
// Body is kept for logs only and must not be sent to clients.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}
