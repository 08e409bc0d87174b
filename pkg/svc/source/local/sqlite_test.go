package local_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/scandiweb/configdiff/pkg/svc/source"
	"github.com/scandiweb/configdiff/pkg/svc/source/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConfigDatabase(t *testing.T, table string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "magento.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	defer func() { require.NoError(t, db.Close()) }()

	_, err = db.Exec(`CREATE TABLE ` + table + ` (
		config_id INTEGER PRIMARY KEY AUTOINCREMENT,
		scope TEXT NOT NULL DEFAULT 'default',
		scope_id INTEGER NOT NULL DEFAULT 0,
		path TEXT NOT NULL DEFAULT 'general',
		value TEXT
	)`)
	require.NoError(t, err)

	rows := []struct {
		scope   string
		scopeID int
		path    string
		value   any
	}{
		{"stores", 2, "general/locale/code", "de_DE"},
		{"default", 0, "web/unsecure/base_url", "http://local.test/"},
		{"default", 0, "general/locale/code", "en_US"},
		{"websites", 1, "design/header/welcome", nil},
	}

	for _, row := range rows {
		_, err = db.Exec(
			`INSERT INTO `+table+` (scope, scope_id, path, value) VALUES (?, ?, ?, ?)`,
			row.scope, row.scopeID, row.path, row.value,
		)
		require.NoError(t, err)
	}

	return path
}

func TestSQLiteSourceFetch(t *testing.T) {
	t.Parallel()

	path := createConfigDatabase(t, "core_config_data")

	data, err := local.NewSQLiteSource(path, "").Fetch(context.Background())
	require.NoError(t, err)

	scopes := data.Scopes()
	require.Len(t, scopes, 3)

	// Scopes appear in the order their first path sorts.
	assert.Equal(t, "websites_1", scopes[0].Scope.Key)
	assert.Equal(t, "default_0", scopes[1].Scope.Key)
	assert.Equal(t, "stores_2", scopes[2].Scope.Key)

	value, ok := scopes[0].Get("design/header/welcome")
	require.True(t, ok)
	assert.Empty(t, value)

	value, ok = data.Scope("default_0").Get("general/locale/code")
	require.True(t, ok)
	assert.Equal(t, "en_US", value)
}

func TestSQLiteSourceTablePrefix(t *testing.T) {
	t.Parallel()

	path := createConfigDatabase(t, "mage_core_config_data")

	data, err := local.NewSQLiteSource(path, "mage_").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, data.EntryCount())

	_, err = local.NewSQLiteSource(path, "").Fetch(context.Background())
	require.ErrorIs(t, err, source.ErrTransport)
}

func TestSQLiteSourceRejectsBadInput(t *testing.T) {
	t.Parallel()

	path := createConfigDatabase(t, "core_config_data")

	_, err := local.NewSQLiteSource(path, "x; DROP TABLE core_config_data; --").Fetch(context.Background())
	require.ErrorIs(t, err, local.ErrInvalidOptions)

	_, err = local.NewSQLiteSource(filepath.Join(t.TempDir(), "absent.db"), "").Fetch(context.Background())
	require.ErrorIs(t, err, local.ErrInvalidOptions)
}
