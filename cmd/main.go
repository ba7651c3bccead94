package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jututor/server/adapters/llm"
	"github.com/jututor/server/adapters/speech"
	"github.com/jututor/server/adapters/tts"
	"github.com/jututor/server/domain/repositories"
	"github.com/jututor/server/internal/api"
	"github.com/jututor/server/internal/config"
	"github.com/jututor/server/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Initialize adapters
	var (
		llmService   repositories.LargeLanguageModel
		textToSpeech repositories.TextToSpeech
	)
	if cfg.UseMockUpstream {
		logger.Warn("Using mock upstream adapters")
		llmService = llm.NewMockGeminiClient()
		textToSpeech = speech.NewMockTextToSpeech(logger)
	} else {
		llmService = llm.NewGeminiLLM(llm.GeminiConfig{
			APIBaseURL: cfg.ChatBaseURL(),
			Model:      cfg.ChatModel,
		}, logger)
		textToSpeech = tts.NewGeminiTTS(tts.GeminiTTSConfig{
			APIBaseURL: cfg.SpeechBaseURL(),
			ModelID:    cfg.TTSModel,
			VoiceName:  cfg.TTSVoice,
			Timeout:    cfg.UpstreamTimeout,
		}, logger)
	}

	if cfg.APIKey() == "" {
		logger.Warn("GEMINI_API_KEY is not set; chat and voice requests will fail until it is")
	}

	// Initialize usecase services
	chatService := usecase.NewChatService(usecase.NewLanguageRouter(), llmService, logger)
	voiceService := usecase.NewVoiceService(textToSpeech, logger)

	// Initialize API
	handler := api.NewHandler(chatService, voiceService, cfg.APIKey, logger)
	e := api.NewServer(api.ServerOptions{AllowedOrigins: cfg.AllowedOrigins}, handler, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.Bool("mockUpstream", cfg.UseMockUpstream))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
