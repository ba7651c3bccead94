package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler answers every error that reaches echo, including
// router errors and recovered panics, with an ErrorResponse body.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := errInternal

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch status {
			case http.StatusMethodNotAllowed:
				message = errOnlyPost
			case http.StatusNotFound:
				message = errNotFound
			case http.StatusRequestEntityTooLarge:
				message = errBodyTooLarge
			case http.StatusUnsupportedMediaType:
				message = errUnsupportedMedia
			case http.StatusInternalServerError:
			default:
				message = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Unhandled request error",
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", requestID(c)),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: message})
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
