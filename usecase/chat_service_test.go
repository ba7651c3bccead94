package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/jututor/server/domain"
)

// fakeLLM records the last prompt and returns a canned answer
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
	keys    []string
}

func (f *fakeLLM) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.keys = append(f.keys, apiKey)
	return f.reply, f.err
}

func TestChatService_Reply(t *testing.T) {
	llm := &fakeLLM{reply: "I'm fine, thank you!"}
	service := NewChatService(NewLanguageRouter(), llm, zaptest.NewLogger(t))

	result, err := service.Reply(context.Background(), "test-key", "Hello, how are you?")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}

	if result.Reply != "I'm fine, thank you!" {
		t.Errorf("Expected upstream reply, got '%s'", result.Reply)
	}
	if result.Fallback {
		t.Error("Expected Fallback to be false")
	}
	if result.Classification.TargetLanguage != domain.LanguageEnglish {
		t.Errorf("Expected english target, got %s", result.Classification.TargetLanguage)
	}

	if len(llm.prompts) != 1 {
		t.Fatalf("Expected exactly one upstream call, got %d", len(llm.prompts))
	}
	if !strings.HasPrefix(llm.prompts[0], englishInstruction) {
		t.Error("Expected the english instruction to lead the prompt")
	}
	if !strings.HasSuffix(llm.prompts[0], domain.PromptDelimiter+"Hello, how are you?") {
		t.Errorf("Expected the message at the end of the prompt, got %q", llm.prompts[0])
	}
	if llm.keys[0] != "test-key" {
		t.Errorf("Expected API key to be passed through, got '%s'", llm.keys[0])
	}
}

func TestChatService_Reply_ForcedPortuguese(t *testing.T) {
	llm := &fakeLLM{reply: "Um gato é um animal."}
	service := NewChatService(NewLanguageRouter(), llm, zaptest.NewLogger(t))

	result, err := service.Reply(context.Background(), "test-key", "responda em português: what is a cat?")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}

	if result.Classification.Mode != domain.ModeToPortuguese {
		t.Errorf("Expected toPortuguese mode, got %s", result.Classification.Mode)
	}
	if !strings.HasPrefix(llm.prompts[0], portugueseInstruction) {
		t.Error("Expected the portuguese instruction to lead the prompt")
	}
}

func TestChatService_Reply_Fallback(t *testing.T) {
	llm := &fakeLLM{err: domain.ErrNoReplyText}
	service := NewChatService(NewLanguageRouter(), llm, zaptest.NewLogger(t))

	result, err := service.Reply(context.Background(), "test-key", "Oi!")
	if err != nil {
		t.Fatalf("Expected fallback instead of error, got %v", err)
	}
	if result.Reply != FallbackReply {
		t.Errorf("Expected fallback reply, got '%s'", result.Reply)
	}
	if !result.Fallback {
		t.Error("Expected Fallback to be true")
	}
}

func TestChatService_Reply_UpstreamError(t *testing.T) {
	upstream := &domain.UpstreamError{Service: "gemini", StatusCode: 500, Body: "boom"}
	llm := &fakeLLM{err: upstream}
	service := NewChatService(NewLanguageRouter(), llm, zaptest.NewLogger(t))

	_, err := service.Reply(context.Background(), "test-key", "Oi!")

	var upstreamErr *domain.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if len(llm.prompts) != 1 {
		t.Errorf("Expected no retry, got %d calls", len(llm.prompts))
	}
}
