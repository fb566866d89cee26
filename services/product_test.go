package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/services"
)

func TestProductService_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Resma A4", 25, 5.50)

	products := services.NewProductService(db)
	got, err := products.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, "Resma A4", got.Name)
	require.Equal(t, 25, got.Stock)
	require.InDelta(t, 5.50, got.Price, 0.001)
}

func TestProductService_Create_RejectsNegativeStock(t *testing.T) {
	db := openTestDB(t)
	categories := services.NewCategoryService(db)
	cat, err := categories.Create(services.CategoryInput{Name: "Papelería", Tipo: "MATERIAL"})
	require.NoError(t, err)

	products := services.NewProductService(db)
	_, err = products.Create(services.ProductInput{Name: "Malo", CategoryID: cat.ID, Stock: -1})
	require.Error(t, err)
}

func TestProductService_Search_CachesResults(t *testing.T) {
	db := openTestDB(t)
	seedProduct(t, db, "Resma A4", 25, 5.50)

	products := services.NewProductService(db)
	first, err := products.Search("Resma")
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, products.CacheItemCount())

	// Second identical query is served from the cache.
	second, err := products.Search("Resma")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProductService_Writes_InvalidateCache(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Resma A4", 25, 5.50)

	products := services.NewProductService(db)
	_, err := products.Search("Resma")
	require.NoError(t, err)
	require.Equal(t, 1, products.CacheItemCount())

	require.NoError(t, products.AdjustStock(p.ID, -5))
	require.Equal(t, 0, products.CacheItemCount())

	// The post-write search observes the new stock, not the cached row.
	results, err := products.Search("Resma")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 20, results[0].Stock)
}

func TestProductService_AdjustStock_RejectsNegativeResult(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Resma A4", 3, 5.50)

	products := services.NewProductService(db)
	err := products.AdjustStock(p.ID, -10)
	require.Error(t, err)

	got, err := products.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Stock, "failed adjustment must not change stock")
}

func TestProductService_Deactivate_HidesProduct(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Resma A4", 3, 5.50)

	products := services.NewProductService(db)
	require.NoError(t, products.Deactivate(p.ID))

	_, err := products.Get(p.ID)
	require.ErrorIs(t, err, services.ErrNotFound)

	results, err := products.Search("Resma")
	require.NoError(t, err)
	require.Empty(t, results)
}
