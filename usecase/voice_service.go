package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jututor/server/domain/repositories"
	"github.com/jututor/server/internal/audio"
)

// VoiceService turns text into a playable WAV file
type VoiceService struct {
	textToSpeech repositories.TextToSpeech
	logger       *zap.Logger
}

// NewVoiceService creates a new voice service
func NewVoiceService(tts repositories.TextToSpeech, logger *zap.Logger) *VoiceService {
	return &VoiceService{
		textToSpeech: tts,
		logger:       logger,
	}
}

// Synthesize returns the 44-byte WAV header followed by the synthesized
// samples.
func (s *VoiceService) Synthesize(ctx context.Context, apiKey, text string) ([]byte, error) {
	pcm, err := s.textToSpeech.SynthesizeSpeech(ctx, apiKey, text)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech failed: %w", err)
	}

	wav := audio.EncodeWAV(pcm, audio.SpeechFormat)

	s.logger.Info("TTS completed",
		zap.Int("pcmSize", len(pcm)),
		zap.Int("wavSize", len(wav)))

	return wav, nil
}
