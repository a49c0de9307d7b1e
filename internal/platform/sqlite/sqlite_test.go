package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func foreignKeysOn(t *testing.T, db *gorm.DB) int {
	t.Helper()
	var on int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&on).Error)
	return on
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", dsn(":memory:"))
	assert.Equal(t, "notes.db?cache=shared&_pragma=foreign_keys(1)", dsn("notes.db?cache=shared"))
}

func TestNew_ForeignKeysSurviveReconnect(t *testing.T) {
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 1, foreignKeysOn(t, db))

	// Drop the pooled connection so the next query dials a fresh one.
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetMaxIdleConns(1)
	assert.Equal(t, 1, foreignKeysOn(t, db))

	require.NoError(t, db.Exec("CREATE TABLE owners (name TEXT PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, owner TEXT NOT NULL REFERENCES owners(name) ON DELETE RESTRICT)").Error)
	require.NoError(t, db.Exec("INSERT INTO owners (name) VALUES ('alice')").Error)
	require.NoError(t, db.Exec("INSERT INTO items (owner) VALUES ('alice')").Error)

	assert.Error(t, db.Exec("DELETE FROM owners WHERE name = 'alice'").Error)
	assert.Error(t, db.Exec("INSERT INTO items (owner) VALUES ('ghost')").Error)
}
