package service

import (
	"context"

	apperrors "vscreens/internal/errors"
	"vscreens/internal/logging"
)

// storeError logs a failed store call and replaces it with the generic
// ErrStore so driver details never reach the handler layer. Only the
// redacted form of err is logged.
func storeError(ctx context.Context, log logging.Logger, op string, err error, args ...any) error {
	log.Error(ctx, "store operation failed", append([]any{"op", op, "error", apperrors.Redact(err)}, args...)...)
	return apperrors.ErrStore
}
