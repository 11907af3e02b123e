package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "vscreens/internal/errors"
)

const (
	// UserIDKey is the echo context key holding the authenticated user id.
	UserIDKey = "user_id"
	// TokenKey is the echo context key holding the verified bearer credential.
	TokenKey = "credential"
)

// MessageResponse is the body of responses that carry only a message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// currentUser returns the user id stored by the credential middleware.
func currentUser(c echo.Context) (uint, error) {
	userID, ok := c.Get(UserIDKey).(uint)
	if !ok || userID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Msg:  "Invalid or missing token",
			Kind: apperrors.KindAuth,
		})
	}
	return userID, nil
}

// badRequest builds a 400 response with msg.
func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Msg:  msg,
		Kind: apperrors.KindValidation,
	})
}

// respondError converts a service error into an HTTP error with a safe body.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// bind decodes the request body into req. Malformed bodies become a 422
// carrying a list of what could not be decoded.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return err
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
			Msg:    "Unprocessable Entity",
			Kind:   apperrors.KindUnprocessable,
			Errors: bindErrors(err),
		}).SetInternal(err)
	}
	return nil
}

func bindErrors(err error) []string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{fmt.Sprintf("body: malformed JSON at offset %d", syntaxErr.Offset)}
	}
	return []string{"body: could not be decoded"}
}
