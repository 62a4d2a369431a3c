// Package ctxutil provides context utility functions.
package ctxutil

import (
	"context"

	"github.com/mrz1836/vaultsign/internal/errors"
)

// Canceled returns nil while ctx is live. Once ctx is done it returns an
// error matching errors.ErrOperationCanceled, ctx.Err() and, when one was
// set, the cancellation cause.
func Canceled(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil && cause != err {
		err = errors.WrapWith(err, cause, "")
	}
	return errors.WrapWith(errors.ErrOperationCanceled, err, "")
}
