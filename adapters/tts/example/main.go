package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jututor/server/adapters/tts"
	"github.com/jututor/server/internal/audio"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Fatal("GEMINI_API_KEY environment variable is required")
	}

	ttsService := tts.NewGeminiTTS(tts.GeminiTTSConfig{
		VoiceName: os.Getenv("GEMINI_TTS_VOICE"),
	}, logger)

	text := "Hello, Ju! Today we are going to practice the simple present."
	if len(os.Args) > 1 {
		text = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pcm, err := ttsService.SynthesizeSpeech(ctx, apiKey, text)
	if err != nil {
		logger.Fatal("Failed to convert text to speech", zap.Error(err))
	}

	outputFile := "example_output.wav"
	if err := os.WriteFile(outputFile, audio.EncodeWAV(pcm, audio.SpeechFormat), 0o644); err != nil {
		logger.Fatal("Failed to write output file", zap.Error(err))
	}

	fmt.Printf("✅ Audio saved to %s (%d PCM bytes)\n", outputFile, len(pcm))

	if os.Getenv("NO_AUTOPLAY") == "true" {
		return
	}
	if err := playAudioFile(outputFile, logger); err != nil {
		logger.Warn("Failed to play audio automatically", zap.Error(err))
		fmt.Printf("⚠️  Could not auto-play audio. Open %s with any audio player.\n", outputFile)
	}
}

// playAudioFile tries the usual command line players; all of them read WAV
func playAudioFile(filename string, logger *zap.Logger) error {
	players := [][]string{
		{"play"},
		{"ffplay", "-nodisp", "-autoexit"},
		{"aplay"},
		{"afplay"},
	}

	for _, player := range players {
		if _, err := exec.LookPath(player[0]); err != nil {
			continue
		}
		args := append(player[1:], filename)
		logger.Info("Attempting to play audio", zap.String("player", player[0]))
		if err := exec.Command(player[0], args...).Run(); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no suitable audio player found")
}
