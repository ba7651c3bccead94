package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jututor/server/domain"
	"github.com/jututor/server/domain/repositories"
)

// MockGeminiClient is a placeholder implementation for Gemini LLM
type MockGeminiClient struct{}

// NewMockGeminiClient creates a new mock Gemini client
func NewMockGeminiClient() repositories.LargeLanguageModel {
	return &MockGeminiClient{}
}

// Generate implements repositories.LargeLanguageModel
func (g *MockGeminiClient) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	// Echo back the student's part of the prompt
	message := prompt
	if idx := strings.LastIndex(prompt, domain.PromptDelimiter); idx >= 0 {
		message = prompt[idx+len(domain.PromptDelimiter):]
	}

	if strings.TrimSpace(message) == "" {
		return "Hi! What would you like to practice today?", nil
	}
	return fmt.Sprintf("Nice! You said: %q. Let's keep practicing.", message), nil
}
