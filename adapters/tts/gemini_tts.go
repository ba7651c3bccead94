package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/jututor/server/domain"
	"github.com/jututor/server/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModelID    = "gemini-2.5-flash-preview-tts"
	defaultVoiceName  = "Kore" // Neutral, clear prebuilt voice
)

// GeminiTTSConfig holds configuration for the GeminiTTS adapter
// Optional fields with defaults:
// - APIBaseURL: The base URL for the Gemini API (default: "https://generativelanguage.googleapis.com/v1beta")
// - ModelID: The speech model (default: "gemini-2.5-flash-preview-tts")
// - VoiceName: The prebuilt voice (default: "Kore")
// - Timeout: HTTP timeout for one synthesis call (default: none, the call
//   ends when the upstream answers or the request context is done)
type GeminiTTSConfig struct {
	APIBaseURL string
	ModelID    string
	VoiceName  string
	Timeout    time.Duration
}

// GeminiTTS implements TextToSpeech using the Gemini speech generation API.
// The API answers with base64 encoded 24kHz mono 16-bit PCM.
type GeminiTTS struct {
	apiBaseURL string
	modelID    string
	voiceName  string
	client     *http.Client
	logger     *zap.Logger
}

// Ensure GeminiTTS implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*GeminiTTS)(nil)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

// GeminiSpeechRequest represents the request payload for the speech endpoint
type GeminiSpeechRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	Model            string           `json:"model"`
}

// GeminiSpeechResponse is the subset of the response envelope we read
type GeminiSpeechResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiTTS creates a new Gemini TTS instance
func NewGeminiTTS(config GeminiTTSConfig, logger *zap.Logger) *GeminiTTS {
	apiBaseURL := strings.TrimRight(config.APIBaseURL, "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
		logger.Info("Using default API base URL", zap.String("apiBaseURL", apiBaseURL))
	}

	modelID := config.ModelID
	if modelID == "" {
		modelID = defaultModelID
		logger.Info("Using default model ID", zap.String("modelID", modelID))
	}

	voiceName := config.VoiceName
	if voiceName == "" {
		voiceName = defaultVoiceName
		logger.Info("Using default voice", zap.String("voiceName", voiceName))
	}

	timeout := config.Timeout
	if timeout < 0 {
		timeout = 0
	}

	return &GeminiTTS{
		apiBaseURL: apiBaseURL,
		modelID:    modelID,
		voiceName:  voiceName,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SynthesizeSpeech converts text to raw PCM samples using the Gemini API
func (g *GeminiTTS) SynthesizeSpeech(ctx context.Context, apiKey, text string) ([]byte, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	g.logger.Info("Converting text to speech",
		zap.Int("textLength", len(text)),
		zap.String("voiceName", g.voiceName),
		zap.String("modelID", g.modelID))

	request := GeminiSpeechRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: text}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: g.voiceName},
				},
			},
		},
		Model: g.modelID,
	}

	requestBody, err := sonic.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.apiBaseURL, g.modelID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Service:    "gemini-tts",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var speechResp GeminiSpeechResponse
	if err := sonic.Unmarshal(body, &speechResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	encoded := firstInlineData(&speechResp)
	if encoded == "" {
		return nil, domain.ErrNoAudio
	}

	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 audio payload: %w", err)
	}

	g.logger.Info("Successfully received speech from Gemini API", zap.Int("pcmBytes", len(pcm)))
	return pcm, nil
}

// firstInlineData reads candidates[0].content.parts[0].inlineData.data
func firstInlineData(resp *GeminiSpeechResponse) string {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	inline := resp.Candidates[0].Content.Parts[0].InlineData
	if inline == nil {
		return ""
	}
	return inline.Data
}
