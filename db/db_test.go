package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-api/config"
)

func TestConnectAndMigrateSQLite(t *testing.T) {
	conn, err := Connect(config.DriverSQLite, "file:db_test?mode=memory&cache=shared&_foreign_keys=on", time.Second)
	require.NoError(t, err)
	defer conn.Close()

	version, err := Migrate(conn)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	// second run is a no-op
	version, err = Migrate(conn)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	for _, table := range []string{"users", "tournaments", "players", "matches", "match_player", "revoked_tokens"} {
		var n int
		err := conn.Get(&n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1", table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect("mysql", "whatever", time.Second)
	assert.Error(t, err)
}

func TestConnectSQLiteFileEnforcesForeignKeys(t *testing.T) {
	conn, err := Connect(config.DriverSQLite, filepath.Join(t.TempDir(), "app.db"), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = Migrate(conn)
	require.NoError(t, err)

	var enabled int
	require.NoError(t, conn.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)

	conn.MustExec(`INSERT INTO users (id, name, email, password_hash) VALUES (1, 'Owner', 'owner@example.com', 'x')`)
	conn.MustExec(`INSERT INTO tournaments (id, user_id, name, slug, game, start_date, status)
		VALUES (1, 1, 'Cup', 'cup', 'Chess', '2026-12-01 10:00:00', 'open')`)
	conn.MustExec(`INSERT INTO players (id, tournament_id, name, gamertag) VALUES (1, 1, 'Alice', 'alice')`)
	conn.MustExec(`INSERT INTO matches (id, tournament_id, round) VALUES (1, 1, 1)`)
	conn.MustExec(`INSERT INTO match_player (match_id, player_id, score) VALUES (1, 1, 0)`)

	_, err = conn.Exec(`INSERT INTO players (tournament_id, name, gamertag) VALUES (42, 'Ghost', 'ghost')`)
	assert.Error(t, err, "insert with a dangling tournament_id must fail")

	conn.MustExec(`DELETE FROM tournaments WHERE id = 1`)
	for _, table := range []string{"players", "matches", "match_player"} {
		var n int
		require.NoError(t, conn.Get(&n, "SELECT COUNT(*) FROM "+table))
		assert.Zero(t, n, "%s left after tournament delete", table)
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"./app.db", "./app.db?_foreign_keys=on"},
		{"file:app.db?cache=shared", "file:app.db?cache=shared&_foreign_keys=on"},
		{"file:x?mode=memory&_foreign_keys=on", "file:x?mode=memory&_foreign_keys=on"},
		{"app.db?_fk=1", "app.db?_fk=1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in))
	}
}
