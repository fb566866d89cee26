package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dstanziola/copypoint/services"
)

func TestClientService_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	clients := services.NewClientService(db)

	created, err := clients.Create(services.ClientInput{Name: "Escuela Las Cumbres", RUC: "8-987-654"})
	require.NoError(t, err)

	got, err := clients.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Escuela Las Cumbres", got.Name)
	require.Equal(t, "8-987-654", got.RUC)
}

func TestClientService_Get_NotFound(t *testing.T) {
	db := openTestDB(t)
	clients := services.NewClientService(db)

	_, err := clients.Get(999)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestClientService_List_OrderedByName(t *testing.T) {
	db := openTestDB(t)
	clients := services.NewClientService(db)

	for _, name := range []string{"Zeta Corp", "Abogados Díaz"} {
		_, err := clients.Create(services.ClientInput{Name: name})
		require.NoError(t, err)
	}

	list, err := clients.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Abogados Díaz", list[0].Name)
}

func TestLabelService_Render(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Resma A4", 10, 5.50)

	labels := services.NewLabelService(services.NewCategoryService(db))
	text, err := labels.Render(p)
	require.NoError(t, err)
	require.Contains(t, text, "Resma A4")
	require.Contains(t, text, "B/. 5.50")
}

func TestLabelService_Render_UnknownCategory(t *testing.T) {
	db := openTestDB(t)
	labels := services.NewLabelService(services.NewCategoryService(db))

	_, err := labels.Render(&services.Product{ID: 1, Name: "Fantasma", CategoryID: 999, Price: 1})
	require.ErrorIs(t, err, services.ErrNotFound)
}
