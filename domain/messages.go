package domain

// ChatRequest is the body accepted by the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by the chat endpoint
type ChatResponse struct {
	Reply string `json:"reply"`
}

// VoiceRequest is the body accepted by the voice endpoint
type VoiceRequest struct {
	Text string `json:"text"`
}

// ChatResult is what the chat usecase hands back to the transport layer
type ChatResult struct {
	Reply          string
	Classification Classification
	Fallback       bool
}
