package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jututor/server/domain"
	"github.com/jututor/server/domain/repositories"
)

// FallbackReply is sent when the model answered without any text
const FallbackReply = "Desculpa, não consegui responder agora. Tente de novo."

// ChatService answers one student message. It keeps no state between calls.
type ChatService struct {
	router *LanguageRouter
	llm    repositories.LargeLanguageModel
	logger *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(router *LanguageRouter, llm repositories.LargeLanguageModel, logger *zap.Logger) *ChatService {
	return &ChatService{router: router, llm: llm, logger: logger}
}

// Reply classifies the message, sends the composed prompt upstream once and
// returns the tutor reply.
func (s *ChatService) Reply(ctx context.Context, apiKey, message string) (domain.ChatResult, error) {
	classification := s.router.Classify(message)

	s.logger.Info("Message classified",
		zap.String("mode", string(classification.Mode)),
		zap.String("targetLanguage", string(classification.TargetLanguage)))

	reply, err := s.llm.Generate(ctx, apiKey, ComposePrompt(classification, message))
	if errors.Is(err, domain.ErrNoReplyText) {
		s.logger.Warn("Upstream reply had no text, using fallback")
		return domain.ChatResult{
			Reply:          FallbackReply,
			Classification: classification,
			Fallback:       true,
		}, nil
	}
	if err != nil {
		return domain.ChatResult{}, err
	}

	return domain.ChatResult{
		Reply:          reply,
		Classification: classification,
	}, nil
}
