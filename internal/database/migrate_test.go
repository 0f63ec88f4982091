package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "000001_init_schema", all[0].String())
	assert.Contains(t, all[0].UpScript, "it_info_comments")
	assert.Contains(t, all[0].DownScript, "DROP TABLE IF EXISTS it_info_users")
	assert.NotNil(t, GetMigrationByVersion(1))
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("B")},
		"m/000002_second.down.sql": {Data: []byte("b")},
		"m/000001_first.up.sql":    {Data: []byte("A")},
		"m/000001_first.down.sql":  {Data: []byte("a")},
		"m/README.md":              {Data: []byte("ignored")},
	}

	got, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Migration{Version: 1, Name: "first", UpScript: "A", DownScript: "a"}, got[0])
	assert.Equal(t, 2, got[1].Version)
}

func TestLoadMigrations_Errors(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"missing down": {
			"m/000001_first.up.sql": {Data: []byte("A")},
		},
		"bad version": {
			"m/abc_first.up.sql":   {Data: []byte("A")},
			"m/abc_first.down.sql": {Data: []byte("a")},
		},
		"no name": {
			"m/000001.up.sql": {Data: []byte("A")},
		},
		"duplicate version": {
			"m/000001_a.up.sql":   {Data: []byte("A")},
			"m/000001_a.down.sql": {Data: []byte("a")},
			"m/1_b.up.sql":        {Data: []byte("B")},
			"m/1_b.down.sql":      {Data: []byte("b")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadMigrations(fsys, "m")
			assert.Error(t, err)
		})
	}
}

func sqliteMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "widgets", UpScript: "CREATE TABLE widgets (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE widgets"},
		{Version: 2, Name: "gadgets", UpScript: "CREATE TABLE gadgets (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE gadgets"},
	}
}

func TestRunMigrations_AppliesPendingOnce(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, runMigrations(ctx, db, sqliteMigrations()))
	require.NoError(t, runMigrations(ctx, db, sqliteMigrations()))

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)
	assert.True(t, db.Migrator().HasTable("widgets"))
	assert.True(t, db.Migrator().HasTable("gadgets"))
}

func TestRunMigrations_FailedScriptNotRecorded(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	broken := []Migration{{Version: 1, Name: "broken", UpScript: "CREATE TABLEZ nope", DownScript: ""}}
	require.Error(t, runMigrations(ctx, db, broken))

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRunMigrations_UnknownAppliedVersion(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, runMigrations(ctx, db, sqliteMigrations()))
	err := runMigrations(ctx, db, sqliteMigrations()[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000002")
}

func TestRollbackMigration(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	registered := sqliteMigrations()

	require.NoError(t, runMigrations(ctx, db, registered))
	require.NoError(t, rollbackMigration(ctx, db, registered, 2))

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)
	assert.False(t, db.Migrator().HasTable("gadgets"))

	assert.Error(t, rollbackMigration(ctx, db, registered, 2), "already rolled back")
	assert.Error(t, rollbackMigration(ctx, db, registered, 42), "unknown version")
}

func TestGetAppliedMigrations_MissingTable(t *testing.T) {
	db := openSQLite(t)
	applied, err := NewMigrationStore(db).GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}
