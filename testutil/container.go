package testutil

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// postgresImage is the image started when TEST_CONTAINERS=1.
const postgresImage = "postgres:16-alpine"

// EnsureDatabase makes TEST_DATABASE_URL available to the tests of a package.
//
// If TEST_DATABASE_URL is already set it is used as is. Otherwise, when
// TEST_CONTAINERS=1, a throwaway Postgres container is started and its DSN is
// exported as TEST_DATABASE_URL. The returned func stops the container and must
// be called after m.Run. When neither variable is set the returned DSN is empty
// and the integration tests skip themselves.
func EnsureDatabase(ctx context.Context) (string, func(), error) {
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn, func() {}, nil
	}
	if os.Getenv("TEST_CONTAINERS") != "1" {
		return "", func() {}, nil
	}

	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase("bizsite_test"),
		postgres.WithUsername("bizsite"),
		postgres.WithPassword("bizsite"),
		postgres.BasicWaitStrategies(),
	)
	terminate := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Printf("testutil.EnsureDatabase: terminate container: %s", err)
		}
	}
	if err != nil {
		terminate()
		return "", func() {}, fmt.Errorf("testutil.EnsureDatabase: start postgres: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", func() {}, fmt.Errorf("testutil.EnsureDatabase: connection string: %w", err)
	}
	if err := os.Setenv(DSNEnv, dsn); err != nil {
		terminate()
		return "", func() {}, fmt.Errorf("testutil.EnsureDatabase: export dsn: %w", err)
	}
	return dsn, terminate, nil
}
