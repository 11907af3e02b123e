package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   Kind
	}{
		{"validation", ErrValidation, http.StatusBadRequest, KindValidation},
		{"password too long", ErrPasswordTooLong, http.StatusBadRequest, KindValidation},
		{"duplicate username", ErrDuplicateUsername, http.StatusConflict, KindConflict},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, KindAuth},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized, KindAuth},
		{"screen not found", ErrScreenNotFound, http.StatusNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("get screen: %w", ErrScreenNotFound), http.StatusNotFound, KindNotFound},
		{"store error", ErrStore, http.StatusInternalServerError, KindStore},
		{"unknown", errors.New("Error 1146: Table 'app.virtual_screens' doesn't exist"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantKind, httpErr.Kind)
		})
	}
}

func TestMapErrorToHTTP_DoesNotLeakDriverText(t *testing.T) {
	raw := errors.New("dial tcp 10.0.0.5:3306: connect: connection refused")
	resp := MapErrorToHTTP(raw).ToErrorResponse()
	assert.Equal(t, "internal server error", resp.Msg)
	assert.NotContains(t, resp.Msg, "10.0.0.5")
}
