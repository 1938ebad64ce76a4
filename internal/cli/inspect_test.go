package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/weave/compiler/load"
)

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open(load.SQLite, path)
	require.NoError(t, err)
	_, err = db.Exec(`
CREATE TABLE users (
	id INTEGER PRIMARY KEY,
	email VARCHAR(255) NOT NULL
);
CREATE TABLE orders (
	id INTEGER PRIMARY KEY,
	placed_at DATETIME
);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	t.Run("yaml output", func(t *testing.T) {
		out, _, err := execute(t, "inspect", "sqlite", path, "--package", "shop")
		require.NoError(t, err)

		doc, err := load.Unmarshal("out.yaml", []byte(out))
		require.NoError(t, err)
		assert.Equal(t, "shop", doc.Package)
		require.Len(t, doc.Tables, 2)
		assert.Contains(t, out, "name: placed_at\n")
		assert.Contains(t, out, "type: DATETIME\n")
	})

	t.Run("table filter", func(t *testing.T) {
		out, _, err := execute(t, "inspect", "sqlite", path, "--tables", "user*")
		require.NoError(t, err)
		assert.Contains(t, out, "name: users")
		assert.NotContains(t, out, "orders")
	})

	t.Run("unsupported dialect", func(t *testing.T) {
		_, _, err := execute(t, "inspect", "oracle", "dsn")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "unsupported dialect")
	})

	t.Run("wrong args", func(t *testing.T) {
		_, _, err := execute(t, "inspect", "sqlite")
		assert.Error(t, err)
	})
}
