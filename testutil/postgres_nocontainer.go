//go:build !integration

package testutil

import "context"

// StartPostgres is a no-op without the integration build tag: it returns an
// empty DSN so callers fall back to skipping database tests.
func StartPostgres(context.Context) (string, func(), error) {
	return "", func() {}, nil
}
