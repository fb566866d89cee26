package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/services"
)

func TestReportService_SalesSummary(t *testing.T) {
	db := openTestDB(t)
	products := services.NewProductService(db)
	p := seedProduct(t, db, "Resma A4", 25, 10.00)

	sales := services.NewSalesService(db, products)
	for i := 0; i < 3; i++ {
		_, err := sales.Create(services.SaleInput{
			Lines: []services.SaleLine{{ProductID: p.ID, Quantity: 2}},
		})
		require.NoError(t, err)
	}

	reports := services.NewReportService(db)
	sum, err := reports.SalesSummary(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 3, sum.Count)
	require.InDelta(t, 60.00, sum.Subtotal, 0.001)
	require.InDelta(t, 4.20, sum.Tax, 0.001)
	require.InDelta(t, 64.20, sum.Total, 0.001)
}

func TestReportService_SalesSummary_EmptyPeriod(t *testing.T) {
	db := openTestDB(t)
	reports := services.NewReportService(db)

	sum, err := reports.SalesSummary(time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	require.Zero(t, sum.Count)
	require.Zero(t, sum.Total)
}

func TestReportService_LowStock(t *testing.T) {
	db := openTestDB(t)
	low := seedProduct(t, db, "Tinta negra", 2, 12.00)
	seedProduct(t, db, "Resma A4", 50, 5.50)

	reports := services.NewReportService(db)
	items, err := reports.LowStock(5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, low.ID, items[0].ProductID)
	require.Equal(t, 2, items[0].Stock)
}
