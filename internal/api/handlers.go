package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jututor/server/domain"
	"github.com/jututor/server/internal/audio"
)

// Chat handles POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	logger := h.requestLogger(c)

	apiKey := h.apiKey()
	if apiKey == "" {
		logger.Error("GEMINI_API_KEY is not set")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errMissingKey})
	}

	var req domain.ChatRequest
	if err := bindBody(c, &req); err != nil {
		logger.Debug("Invalid chat body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMissingMessage})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMissingMessage})
	}

	result, err := h.chat.Reply(c.Request().Context(), apiKey, req.Message)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			logger.Error("Gemini API error",
				zap.Int("statusCode", upstreamErr.StatusCode),
				zap.String("response", upstreamErr.Body))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errChatUpstream})
		}
		logger.Error("Chat request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errChatInternal})
	}

	logger.Info("Chat reply sent",
		zap.String("mode", string(result.Classification.Mode)),
		zap.String("targetLanguage", string(result.Classification.TargetLanguage)),
		zap.Bool("fallback", result.Fallback))

	return c.JSON(http.StatusOK, domain.ChatResponse{Reply: result.Reply})
}

// Voice handles POST /api/voice
func (h *Handler) Voice(c echo.Context) error {
	logger := h.requestLogger(c)

	apiKey := h.apiKey()
	if apiKey == "" {
		logger.Error("GEMINI_API_KEY is not set")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errMissingKey})
	}

	var req domain.VoiceRequest
	if err := bindBody(c, &req); err != nil {
		logger.Debug("Invalid voice body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMissingText})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMissingText})
	}

	wav, err := h.voice.Synthesize(c.Request().Context(), apiKey, req.Text)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		switch {
		case errors.As(err, &upstreamErr):
			logger.Error("Gemini TTS request failed",
				zap.Int("statusCode", upstreamErr.StatusCode),
				zap.String("response", upstreamErr.Body))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errVoiceUpstream})
		case errors.Is(err, domain.ErrNoAudio):
			logger.Error("No audio data from Gemini")
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errVoiceNoAudio})
		default:
			logger.Error("Voice request failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errVoiceInternal})
		}
	}

	logger.Info("Voice reply sent", zap.Int("wavBytes", len(wav)))

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Blob(http.StatusOK, audio.ContentType, wav)
}

// bindBody decodes a JSON body regardless of the declared content type.
// An empty body leaves i untouched.
func bindBody(c echo.Context, i interface{}) error {
	req := c.Request()
	if req.Body == nil {
		return nil
	}
	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	req.Body = io.NopCloser(bytes.NewReader(payload))
	return c.Echo().JSONSerializer.Deserialize(c, i)
}
