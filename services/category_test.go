package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/services"
)

func TestCategoryService_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewCategoryService(db)

	created, err := svc.Create(services.CategoryInput{Name: "Papelería", Tipo: "MATERIAL"})
	require.NoError(t, err)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Papelería", got.Name)
	require.Equal(t, "MATERIAL", got.Tipo)
}

func TestCategoryService_Create_RejectsInvalidTipo(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewCategoryService(db)

	_, err := svc.Create(services.CategoryInput{Name: "Varios", Tipo: "OTRO"})
	require.Error(t, err)
}

func TestCategoryService_Get_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewCategoryService(db)

	_, err := svc.Get(999)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCategoryService_List_OrderedByName(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewCategoryService(db)

	for _, name := range []string{"Zapatos", "Acrílicos"} {
		_, err := svc.Create(services.CategoryInput{Name: name, Tipo: "MATERIAL"})
		require.NoError(t, err)
	}

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Acrílicos", list[0].Name)
}

func TestCategoryService_Delete_BlockedByProducts(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewCategoryService(db)
	p := seedProduct(t, db, "Resma A4", 10, 5.50)

	err := svc.Delete(p.CategoryID)
	require.Error(t, err)

	// Still deletable once nothing references it.
	empty, err := svc.Create(services.CategoryInput{Name: "Vacía", Tipo: "SERVICIO"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(empty.ID))
}
