package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "vscreens/internal/errors"
	"vscreens/internal/handler"
	"vscreens/internal/logging"
	"vscreens/internal/service"
)

var errMissingBodyToken = errors.New("missing token in request body")

// RequireCredential rejects requests without a valid bearer credential before
// any handler runs. The credential is read from the JSON body field "token",
// falling back to an "Authorization: Bearer" header. On success the user id
// and the credential are stored under handler.UserIDKey and handler.TokenKey.
func RequireCredential(authService service.AuthService, log logging.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:       handler.UserIDKey,
		TokenLookup:      "header:" + echo.HeaderAuthorization + ":Bearer ",
		TokenLookupFuncs: []middleware.ValuesExtractor{bodyToken},
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			userID, err := authService.ValidateCredential(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			c.Set(handler.TokenKey, token)
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrStore) {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
			}

			msg := "Missing token in request body"
			if errors.Is(err, apperrors.ErrInvalidToken) {
				msg = "Invalid or expired token"
			}
			log.Warn(requestContext(c), "credential rejected",
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"reason", msg,
			)
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Msg:  msg,
				Kind: apperrors.KindAuth,
			})
		},
	})
}

// bodyToken extracts the "token" field of a JSON body and restores the body
// so handlers can bind it again.
func bodyToken(c echo.Context) ([]string, error) {
	req := c.Request()
	if req.Body == nil {
		return nil, errMissingBodyToken
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, errMissingBodyToken
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	var envelope struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Token == "" {
		return nil, errMissingBodyToken
	}
	return []string{envelope.Token}, nil
}
