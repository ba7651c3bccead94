package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jututor/server/domain"
	"github.com/jututor/server/domain/repositories"
)

const defaultModel = "gemini-2.5-flash"

// GeminiConfig holds configuration for the GeminiLLM adapter
// Optional fields with defaults:
// - APIBaseURL: override for the Gemini API host (default: SDK endpoint)
// - Model: the completion model (default: "gemini-2.5-flash")
// - HTTPClient: the client used for API calls (default: http.DefaultTransport).
//   Its transport is wrapped so non-2xx answers become *domain.UpstreamError.
type GeminiConfig struct {
	APIBaseURL string
	Model      string
	HTTPClient *http.Client
}

// GeminiLLM implements the LargeLanguageModel interface using Google's Gemini API
type GeminiLLM struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Ensure GeminiLLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini LLM instance
func NewGeminiLLM(config GeminiConfig, logger *zap.Logger) *GeminiLLM {
	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	return &GeminiLLM{
		baseURL:    config.APIBaseURL,
		model:      model,
		httpClient: withStatusCheck(config.HTTPClient),
		logger:     logger,
	}
}

// statusTransport turns every non-2xx answer into a *domain.UpstreamError
// before the SDK parses the body. The SDK only understands bodies with an
// {"error": {...}} envelope.
type statusTransport struct {
	base http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return nil, &domain.UpstreamError{
		Service:    "gemini",
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

// withStatusCheck returns a copy of client whose transport is wrapped by
// statusTransport. A nil client gets the default transport.
func withStatusCheck(client *http.Client) *http.Client {
	wrapped := &http.Client{}
	if client != nil {
		*wrapped = *client
	}
	base := wrapped.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = &statusTransport{base: base}
	return wrapped
}

// Generate sends the prompt as a single user turn and returns the trimmed
// text of the first part of the first candidate. There is no retry: any
// failure is returned to the caller as is.
func (g *GeminiLLM) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	// The key is read per request, so the client is too.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g.logger.Debug("Sending prompt to Gemini",
		zap.String("model", g.model),
		zap.Int("promptLength", len(prompt)))

	response, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			return "", upstreamErr
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &domain.UpstreamError{
				Service:    "gemini",
				StatusCode: apiErr.Code,
				Body:       strings.TrimSpace(apiErr.Status + " " + apiErr.Message),
			}
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := firstCandidateText(response)
	if text == "" {
		return "", domain.ErrNoReplyText
	}

	return text, nil
}

// firstCandidateText reads candidates[0].content.parts[0].text
func firstCandidateText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	candidate := response.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	part := candidate.Content.Parts[0]
	if part == nil {
		return ""
	}
	return strings.TrimSpace(part.Text)
}
