package speech

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jututor/server/domain"
	"github.com/jututor/server/domain/repositories"
)

// MockTextToSpeech is a placeholder implementation for text-to-speech
type MockTextToSpeech struct {
	logger *zap.Logger
}

// NewMockTextToSpeech creates a new mock text-to-speech service
func NewMockTextToSpeech(logger *zap.Logger) repositories.TextToSpeech {
	return &MockTextToSpeech{
		logger: logger,
	}
}

// SynthesizeSpeech implements repositories.TextToSpeech
func (t *MockTextToSpeech) SynthesizeSpeech(ctx context.Context, apiKey, text string) ([]byte, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	t.logger.Info("Processing text-to-speech", zap.String("text", text))

	// Mock audio data - generate based on text length, whole 16-bit samples
	audioSize := len(text) * 100
	mockAudio := make([]byte, audioSize)

	// Fill with some pattern to simulate audio data
	for i := range mockAudio {
		mockAudio[i] = byte(i % 256)
	}

	return mockAudio, nil
}
