package cli

import (
	"context"

	"github.com/epfml/codepack/pkg/errors"
	"github.com/epfml/codepack/pkg/store"
)

// openStore opens the store backend selected by the environment
// (CODEPACK_STORE and friends). Callers must Close the returned store.
func openStore(ctx context.Context) (store.Store, error) {
	cfg := store.ConfigFromEnv()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s store", cfg.Backend)
	}
	loggerFromContext(ctx).Debugf("Using %s store backend", cfg.Backend)
	return st, nil
}
