//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// StartPostgres starts a throwaway Postgres container and returns its DSN and
// a function that terminates it. Intended for TestMain when TEST_DATABASE_URL
// is not set.
func StartPostgres(ctx context.Context) (string, func(), error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("tripledger"),
		tcpostgres.WithUsername("tripledger"),
		tcpostgres.WithPassword("tripledger"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", func() {}, fmt.Errorf("testutil.StartPostgres: run: %w", err)
	}

	stop := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Printf("testutil.StartPostgres: terminate: %v", err)
		}
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		stop()
		return "", func() {}, fmt.Errorf("testutil.StartPostgres: connection string: %w", err)
	}
	return dsn, stop, nil
}
