package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/config"
	"github.com/dstanziola/copypoint/services"
	"github.com/dstanziola/copypoint/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(config.DBConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedProduct creates a MATERIAL category and a product with the given
// stock and price, returning the product.
func seedProduct(t *testing.T, db *store.DB, name string, stock int, price float64) *services.Product {
	t.Helper()
	categories := services.NewCategoryService(db)
	cat, err := categories.Create(services.CategoryInput{Name: "Papelería " + name, Tipo: "MATERIAL"})
	require.NoError(t, err)

	products := services.NewProductService(db)
	p, err := products.Create(services.ProductInput{
		Name:       name,
		CategoryID: cat.ID,
		Stock:      stock,
		Price:      price,
		TaxRate:    0.07,
	})
	require.NoError(t, err)
	return p
}
