// Package service is the boundary between the HTTP layer and the repositories.
//
// Every method returns (value, error). When the store runs in compatibility
// mode, store failures are logged and replaced by an empty result (nil record
// or empty slice) with a nil error, so callers cannot tell "no rows" from
// "query failed". Not-found is always (nil, nil).
package service

import (
	"context"

	"github.com/rs/zerolog"
)

// failurePolicy decides whether a store failure reaches the caller.
type failurePolicy struct {
	compat bool
	logger *zerolog.Logger
}

// absorb returns err unchanged, or logs it and returns nil in compatibility mode.
func (p failurePolicy) absorb(ctx context.Context, operation string, err error) error {
	if err == nil || !p.compat {
		return err
	}

	logger := p.logger
	if logger == nil {
		logger = zerolog.Ctx(ctx)
	}
	logger.Error().
		Err(err).
		Str("operation", operation).
		Msg("store failure suppressed by compatibility mode")
	return nil
}
