package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/config"
	"github.com/dstanziola/copypoint/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(config.DBConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_AppliesSchema(t *testing.T) {
	db := openTestDB(t)

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN
		 ('categorias', 'productos', 'clientes', 'usuarios', 'ventas',
		  'detalle_ventas', 'movimientos', 'tickets', 'company_config')`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 9, count)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := store.Open(config.DBConfig{Path: path})
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO categorias (nombre, tipo) VALUES ('Papelería', 'MATERIAL')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must keep existing data intact.
	db, err = store.Open(config.DBConfig{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM categorias`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(
		`INSERT INTO productos (nombre, id_categoria) VALUES ('Huérfano', 999)`)
	require.Error(t, err)
}
