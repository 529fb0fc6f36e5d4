package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"industrial-catalog/internal/models"
	"industrial-catalog/internal/repository"
	"industrial-catalog/internal/repository/mocks"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	products, err := Default()
	require.NoError(t, err)
	require.Len(t, products, 38)

	first := products[0]
	assert.Equal(t, "Climatización", first.Category)
	assert.Equal(t, "Fresh Air", first.Brand)
	require.NotNil(t, first.PriceCents)
	assert.Equal(t, int64(80470), *first.PriceCents)
	require.NotNil(t, first.Currency)
	assert.Equal(t, "USD", *first.Currency)

	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Brand)
	}
}

func TestLoad_RejectsInvalidProducts(t *testing.T) {
	_, err := Load([]byte(`
- name: "Split"
  category: "Climatización"
`))
	require.Error(t, err)
	assert.NotEmpty(t, models.ValidationErrors(err))

	_, err = Load([]byte(`
- name: "Split"
  category: "Climatización"
  brand: "ANWO"
  colour: "blanco"
`))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestLoad_Specifications(t *testing.T) {
	products, err := Load([]byte(`
- name: "Split"
  category: "Climatización"
  brand: "ANWO"
  specifications:
    btu: 9000
    voltaje: "220V"
    wifi: true
  dimensions:
    width: 80
    height: 28.5
`))
	require.NoError(t, err)
	require.Len(t, products, 1)
	specs := products[0].Specifications
	assert.Equal(t, models.SpecNumber, specs["btu"].Kind())
	assert.Equal(t, models.SpecString, specs["voltaje"].Kind())
	assert.Equal(t, models.SpecBool, specs["wifi"].Kind())
	assert.Equal(t, 28.5, products[0].Dimensions.Height)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- {name: "Rack", category: "Telecomunicaciones", brand: "3Z"}`), 0o600))

	products, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalog_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	products, err := Default()
	require.NoError(t, err)

	inserted, err := Catalog(ctx, store, products)
	require.NoError(t, err)
	assert.Equal(t, 38, inserted)

	all, err := store.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 38)
	assert.Equal(t, products[0].Name, all[0].Name)
	assert.Equal(t, products[37].Name, all[37].Name)

	// una segunda pasada no duplica
	inserted, err = Catalog(ctx, store, products)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	total, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(38), total)
}

func TestCatalog_StopsOnStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().CountProducts(gomock.Any()).Return(int64(0), nil)
	store.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(&models.Product{ID: "1"}, nil)
	store.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	inserted, err := Catalog(context.Background(), store, []models.ProductInput{
		{Name: "A", Category: "C", Brand: "B"},
		{Name: "B", Category: "C", Brand: "B"},
		{Name: "C", Category: "C", Brand: "B"},
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, inserted)
}
