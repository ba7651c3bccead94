package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jututor/server/domain"
)

// ChatReplier produces the tutor reply for one message
type ChatReplier interface {
	Reply(ctx context.Context, apiKey, message string) (domain.ChatResult, error)
}

// VoiceSynthesizer produces a WAV file for one text
type VoiceSynthesizer interface {
	Synthesize(ctx context.Context, apiKey, text string) ([]byte, error)
}

// Handler serves the tutor endpoints
type Handler struct {
	chat   ChatReplier
	voice  VoiceSynthesizer
	apiKey func() string
	logger *zap.Logger
}

// NewHandler creates a new Handler. apiKey is called once per request.
func NewHandler(chat ChatReplier, voice VoiceSynthesizer, apiKey func() string, logger *zap.Logger) *Handler {
	return &Handler{
		chat:   chat,
		voice:  voice,
		apiKey: apiKey,
		logger: logger,
	}
}

// ServerOptions configures NewServer
type ServerOptions struct {
	AllowedOrigins []string
	BodyLimit      string
}

// NewServer builds an echo instance with middleware and routes installed
func NewServer(opts ServerOptions, h *Handler, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = SonicSerializer{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	bodyLimit := opts.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "1M"
	}

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Recovered from panic",
				zap.String("request_id", requestID(c)),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))

	InitRoutes(e, h)
	return e
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, h *Handler) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: "tutor-api",
		})
	})

	api := e.Group("/api")
	api.POST("/chat", h.Chat)
	api.POST("/voice", h.Voice)
}

// requestLogger returns the handler logger tagged with the request ID
func (h *Handler) requestLogger(c echo.Context) *zap.Logger {
	return h.logger.With(zap.String("request_id", requestID(c)))
}
