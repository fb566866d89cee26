package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/services"
)

func TestMovementService_RecordEntry_IncrementsStock(t *testing.T) {
	db := openTestDB(t)
	products := services.NewProductService(db)
	p := seedProduct(t, db, "Resma A4", 10, 5.50)

	movements := services.NewMovementService(db, products)
	m, err := movements.RecordEntry(p.ID, 5, "admin", "compra proveedor")
	require.NoError(t, err)
	require.Equal(t, "ENTRADA", m.Tipo)
	require.Equal(t, 5, m.Quantity)

	got, err := products.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 15, got.Stock)
}

func TestMovementService_RecordEntry_RejectsNonPositive(t *testing.T) {
	db := openTestDB(t)
	products := services.NewProductService(db)
	p := seedProduct(t, db, "Resma A4", 10, 5.50)

	movements := services.NewMovementService(db, products)
	_, err := movements.RecordEntry(p.ID, 0, "admin", "")
	require.Error(t, err)
	_, err = movements.RecordEntry(p.ID, -3, "admin", "")
	require.Error(t, err)
}

func TestMovementService_RecordAdjustment_NegativeDelta(t *testing.T) {
	db := openTestDB(t)
	products := services.NewProductService(db)
	p := seedProduct(t, db, "Resma A4", 10, 5.50)

	movements := services.NewMovementService(db, products)
	m, err := movements.RecordAdjustment(p.ID, -4, "admin", "merma")
	require.NoError(t, err)
	require.Equal(t, "AJUSTE", m.Tipo)

	got, err := products.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 6, got.Stock)
}

func TestMovementService_RecordAdjustment_CannotUnderflowStock(t *testing.T) {
	db := openTestDB(t)
	products := services.NewProductService(db)
	p := seedProduct(t, db, "Resma A4", 2, 5.50)

	movements := services.NewMovementService(db, products)
	_, err := movements.RecordAdjustment(p.ID, -5, "admin", "")
	require.Error(t, err)

	// No movement row was written for the failed adjustment.
	list, err := movements.ListByProduct(p.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestMovementService_ListByProduct_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	products := services.NewProductService(db)
	p := seedProduct(t, db, "Resma A4", 10, 5.50)

	movements := services.NewMovementService(db, products)
	_, err := movements.RecordEntry(p.ID, 5, "admin", "primera")
	require.NoError(t, err)
	_, err = movements.RecordAdjustment(p.ID, -2, "admin", "segunda")
	require.NoError(t, err)

	list, err := movements.ListByProduct(p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "segunda", list[0].Notes)
	require.Equal(t, "primera", list[1].Notes)
}
