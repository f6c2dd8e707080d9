package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps the database the repository tests run against.
// The schema from migrations/0001_init.sql must already be applied.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables empties every table of the schema.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"second_managers",
		"leave_requests",
		"leave_request_types",
		"public_holidays",
		"weekend_configuration",
		"users",
		"job_titles",
		"departments",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
