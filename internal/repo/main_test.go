package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/trip-ledger/migrations"
	"github.com/pkordes/trip-ledger/testutil"
)

// TestMain runs once for the whole repo_test binary. It applies all pending
// migrations to the test database so individual tests never think about
// schema state.
//
// When TEST_DATABASE_URL is unset and the binary was built with
// -tags integration, a disposable Postgres container is started instead.
// Without either, every test in this package skips.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()

	if os.Getenv("TEST_DATABASE_URL") == "" {
		dsn, stop, err := testutil.StartPostgres(ctx)
		if err != nil {
			log.Printf("TestMain: start postgres container: %v", err)
			return 1
		}
		defer stop()
		if dsn == "" {
			return m.Run()
		}
		os.Setenv("TEST_DATABASE_URL", dsn)
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	_, err := migrations.Up(ctx, db)
	db.Close()
	if err != nil {
		log.Printf("TestMain: run migrations: %v", err)
		return 1
	}

	return m.Run()
}
