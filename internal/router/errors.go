package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "vscreens/internal/errors"
	"vscreens/internal/handler"
	"vscreens/internal/logging"
)

// errorHandler renders every error as apperrors.ErrorResponse. Server errors
// are logged with request context and answered with a generic message.
func errorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := apperrors.ErrorResponse{Msg: "internal server error", Kind: apperrors.KindInternal}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch m := he.Message.(type) {
			case apperrors.ErrorResponse:
				resp = m
			default:
				resp = apperrors.ErrorResponse{Msg: http.StatusText(status), Kind: kindForStatus(status)}
			}
		}

		if status >= http.StatusInternalServerError {
			if resp.Kind != apperrors.KindStore {
				resp = apperrors.ErrorResponse{Msg: "internal server error", Kind: apperrors.KindInternal}
			}
			args := []any{
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", redactHTTPError(err),
			}
			if userID, ok := c.Get(handler.UserIDKey).(uint); ok {
				args = append(args, "user_id", userID)
			}
			log.Error(requestContext(c), "request failed", args...)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			log.Error(requestContext(c), "write error response", "error", writeErr)
		}
	}
}

// redactHTTPError describes the cause behind an echo error without its text.
func redactHTTPError(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal == nil {
		return fmt.Sprintf("http %d", he.Code)
	}
	return apperrors.Redact(err)
}

func kindForStatus(status int) apperrors.Kind {
	switch status {
	case http.StatusBadRequest:
		return apperrors.KindValidation
	case http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return apperrors.KindUnprocessable
	case http.StatusUnauthorized:
		return apperrors.KindAuth
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return apperrors.KindNotFound
	case http.StatusConflict:
		return apperrors.KindConflict
	default:
		return apperrors.KindInternal
	}
}
