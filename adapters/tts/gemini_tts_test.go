package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/jututor/server/domain"
)

func newSpeechServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/models/gemini-2.5-flash-preview-tts:generateContent" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-api-key" {
			t.Errorf("Expected x-goog-api-key 'test-api-key', got '%s'", got)
		}

		payload, _ := io.ReadAll(r.Body)
		var req GeminiSpeechRequest
		if err := sonic.Unmarshal(payload, &req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "Hello" {
			t.Errorf("Expected single text part 'Hello', got %s", payload)
		}
		if len(req.GenerationConfig.ResponseModalities) != 1 || req.GenerationConfig.ResponseModalities[0] != "AUDIO" {
			t.Errorf("Expected AUDIO modality, got %v", req.GenerationConfig.ResponseModalities)
		}
		if v := req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName; v != "Kore" {
			t.Errorf("Expected voice 'Kore', got '%s'", v)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func audioBody(data string) string {
	return `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16;codec=pcm;rate=24000","data":"` + data + `"}}]}}]}`
}

func TestNewGeminiTTS_Defaults(t *testing.T) {
	g := NewGeminiTTS(GeminiTTSConfig{}, zaptest.NewLogger(t))

	if g.apiBaseURL != defaultAPIBaseURL {
		t.Errorf("Expected default base URL '%s', got '%s'", defaultAPIBaseURL, g.apiBaseURL)
	}
	if g.modelID != defaultModelID {
		t.Errorf("Expected default model '%s', got '%s'", defaultModelID, g.modelID)
	}
	if g.voiceName != defaultVoiceName {
		t.Errorf("Expected default voice '%s', got '%s'", defaultVoiceName, g.voiceName)
	}
	if g.client.Timeout != 0 {
		t.Errorf("Expected no client timeout by default, got %s", g.client.Timeout)
	}

	g = NewGeminiTTS(GeminiTTSConfig{Timeout: 5 * time.Second}, zaptest.NewLogger(t))
	if g.client.Timeout != 5*time.Second {
		t.Errorf("Expected configured timeout 5s, got %s", g.client.Timeout)
	}
}

func TestGeminiTTS_SynthesizeSpeech(t *testing.T) {
	pcm := []byte{0x00, 0x01, 0xfe, 0xff, 0x10, 0x20}
	server := newSpeechServer(t, http.StatusOK, audioBody(base64.StdEncoding.EncodeToString(pcm)))

	g := NewGeminiTTS(GeminiTTSConfig{APIBaseURL: server.URL + "/"}, zaptest.NewLogger(t))

	got, err := g.SynthesizeSpeech(context.Background(), "test-api-key", "Hello")
	if err != nil {
		t.Fatalf("SynthesizeSpeech returned error: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Errorf("Expected decoded PCM %v, got %v", pcm, got)
	}
}

func TestGeminiTTS_SynthesizeSpeech_UpstreamError(t *testing.T) {
	server := newSpeechServer(t, http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota"}}`)
	g := NewGeminiTTS(GeminiTTSConfig{APIBaseURL: server.URL}, zaptest.NewLogger(t))

	_, err := g.SynthesizeSpeech(context.Background(), "test-api-key", "Hello")

	var upstreamErr *domain.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", upstreamErr.StatusCode)
	}
	if !strings.Contains(upstreamErr.Body, "quota") {
		t.Errorf("Expected upstream body to be kept, got '%s'", upstreamErr.Body)
	}
}

func TestGeminiTTS_SynthesizeSpeech_NoAudio(t *testing.T) {
	bodies := map[string]string{
		"no candidates": `{"candidates":[]}`,
		"text part":     `{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`,
		"empty data":    audioBody(""),
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := newSpeechServer(t, http.StatusOK, body)
			g := NewGeminiTTS(GeminiTTSConfig{APIBaseURL: server.URL}, zaptest.NewLogger(t))

			_, err := g.SynthesizeSpeech(context.Background(), "test-api-key", "Hello")
			if !errors.Is(err, domain.ErrNoAudio) {
				t.Errorf("Expected ErrNoAudio, got %v", err)
			}
		})
	}
}

func TestGeminiTTS_SynthesizeSpeech_InvalidBase64(t *testing.T) {
	server := newSpeechServer(t, http.StatusOK, audioBody("not base64!"))
	g := NewGeminiTTS(GeminiTTSConfig{APIBaseURL: server.URL}, zaptest.NewLogger(t))

	_, err := g.SynthesizeSpeech(context.Background(), "test-api-key", "Hello")
	if err == nil {
		t.Fatal("Expected error for invalid base64 payload")
	}
	if errors.Is(err, domain.ErrNoAudio) {
		t.Error("Invalid payload must not be reported as missing audio")
	}
}

func TestGeminiTTS_SynthesizeSpeech_InvalidInput(t *testing.T) {
	g := NewGeminiTTS(GeminiTTSConfig{}, zaptest.NewLogger(t))

	if _, err := g.SynthesizeSpeech(context.Background(), "", "Hello"); !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}

	for _, text := range []string{"", "   "} {
		if _, err := g.SynthesizeSpeech(context.Background(), "test-api-key", text); err == nil {
			t.Errorf("Expected error for text %q", text)
		}
	}
}

// Integration test - only runs if GEMINI_API_KEY is set with a real API key
func TestGeminiTTS_SynthesizeSpeech_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" || apiKey == "test-api-key" {
		t.Skip("Skipping integration test - set GEMINI_API_KEY environment variable with real API key")
	}

	g := NewGeminiTTS(GeminiTTSConfig{}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pcm, err := g.SynthesizeSpeech(ctx, apiKey, "Hello, Ju! Let's practice English.")
	if err != nil {
		t.Fatalf("Failed to synthesize speech: %v", err)
	}
	if len(pcm) == 0 {
		t.Error("No audio data received")
	}
	t.Logf("Integration test completed: received %d PCM bytes", len(pcm))
}
