package services

import (
	"testing"

	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	db := newTestDB(t)
	return NewProductService(
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
	)
}

func TestCreateProduct_DefaultsAndDuplicateSKU(t *testing.T) {
	s := newProductService(t)

	product, err := s.Create(ProductInput{Name: "Base Cabinet", SKU: "CAB-1", Price: 249.99, Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, "active", product.Status)

	_, err = s.Create(ProductInput{Name: "Another Cabinet", SKU: "CAB-1", Price: 10})
	require.Error(t, err)
	assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
}

func TestCreateProduct_UnknownCategoryIsValidationError(t *testing.T) {
	s := newProductService(t)

	missing := uint(42)
	_, err := s.Create(ProductInput{Name: "Base Cabinet", SKU: "CAB-1", CategoryID: &missing})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestBulkUpload_SkipsDuplicateSKUs(t *testing.T) {
	s := newProductService(t)

	_, err := s.Create(ProductInput{Name: "Existing", SKU: "CAB-1", Price: 1})
	require.NoError(t, err)

	result, err := s.BulkUpload(BulkUploadInput{Products: []ProductInput{
		{Name: "Cabinet A", SKU: "CAB-2", Price: 10},
		{Name: "Cabinet B", SKU: "CAB-1", Price: 20}, // duplicate
		{Name: "Cabinet C", SKU: "CAB-3", Price: 30},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Received)
	assert.Equal(t, int64(2), result.Inserted)
	assert.Equal(t, int64(1), result.Skipped)
	assert.Less(t, result.Inserted, int64(result.Received))
}

func TestSetProductStatus(t *testing.T) {
	s := newProductService(t)

	product, err := s.Create(ProductInput{Name: "Base Cabinet", SKU: "CAB-1"})
	require.NoError(t, err)

	updated, err := s.SetStatus(product.ID, "discontinued")
	require.NoError(t, err)
	assert.Equal(t, "discontinued", updated.Status)

	_, err = s.SetStatus(product.ID, "retired")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestListProducts_RangeAndStockFilters(t *testing.T) {
	s := newProductService(t)

	seed := []ProductInput{
		{Name: "Cheap Handle", SKU: "HW-1", Price: 5, Stock: 100, Brand: "Hearth"},
		{Name: "Mid Faucet", SKU: "SF-1", Price: 120, Stock: 0, Brand: "Aqua"},
		{Name: "Premium Range", SKU: "AP-1", Price: 2500, Stock: 2, Brand: "Hearth"},
	}
	for _, in := range seed {
		_, err := s.Create(in)
		require.NoError(t, err)
	}

	opts := pagination.Options{Page: 1, Limit: 10, SortBy: "price", SortOrder: pagination.SortAsc}

	min, max := 10.0, 1000.0
	res, err := s.List(repositories.ProductFilters{MinPrice: &min, MaxPrice: &max}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)

	inStock := true
	res, err = s.List(repositories.ProductFilters{InStock: &inStock}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Meta.Total)

	res, err = s.List(repositories.ProductFilters{Brand: "Hearth"}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Meta.Total)

	res, err = s.List(repositories.ProductFilters{Search: "faucet"}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)
}

func TestSearchProducts_BodyPayload(t *testing.T) {
	s := newProductService(t)

	for _, in := range []ProductInput{
		{Name: "Cabinet A", SKU: "CAB-1", Price: 100},
		{Name: "Cabinet B", SKU: "CAB-2", Price: 200},
		{Name: "Faucet", SKU: "SF-1", Price: 50},
	} {
		_, err := s.Create(in)
		require.NoError(t, err)
	}

	res, err := s.Search(SearchProductsInput{Search: "cabinet", Limit: 1}, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Meta.Total)
	assert.Equal(t, int64(2), res.Meta.TotalPages)
	assert.Equal(t, 1, res.Meta.Limit)
}
