package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Error strings returned to clients. Upstream detail never goes past these.
const (
	errOnlyPost         = "Only POST allowed"
	errMissingKey       = "GEMINI_API_KEY is not set"
	errMissingMessage   = "Missing message"
	errMissingText      = "Missing text"
	errChatUpstream     = "Gemini API error"
	errChatInternal     = "API error"
	errVoiceUpstream    = "Gemini TTS request failed"
	errVoiceNoAudio     = "No audio data from Gemini"
	errVoiceInternal    = "Internal TTS error"
	errInternal         = "Internal server error"
	errNotFound         = "Not found"
	errBodyTooLarge     = "Request body too large"
	errUnsupportedMedia = "Unsupported media type"
)
