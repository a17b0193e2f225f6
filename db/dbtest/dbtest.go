// Package dbtest provides a migrated in-memory SQLite database for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-api/config"
	"github.com/Dosada05/tournament-api/db"
)

var counter atomic.Int64

// New creates an isolated in-memory database with all migrations applied.
// The database is closed when the test finishes.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared&_foreign_keys=on", counter.Add(1))
	conn, err := db.Connect(config.DriverSQLite, dsn, time.Second)
	require.NoError(t, err, "Failed to connect to in-memory DB")
	t.Cleanup(func() { _ = conn.Close() })

	_, err = db.Migrate(conn)
	require.NoError(t, err, "Failed to apply migrations")

	return conn
}
