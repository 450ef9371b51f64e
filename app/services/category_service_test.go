package services

import (
	"testing"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCategoryService(
		repositories.NewCategoryRepository(db),
		repositories.NewProductRepository(db),
	), db
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	s, _ := newCategoryService(t)

	category, err := s.Create(CreateCategoryInput{Name: "Kitchen & Bath!"})
	require.NoError(t, err)

	assert.Equal(t, "kitchen-bath", category.Slug)
	assert.True(t, category.IsActive)
}

func TestCreateCategory_DuplicateNameIsDomainError(t *testing.T) {
	s, _ := newCategoryService(t)

	_, err := s.Create(CreateCategoryInput{Name: "Cabinets"})
	require.NoError(t, err)

	// Different punctuation, same slug.
	_, err = s.Create(CreateCategoryInput{Name: "Cabinets!"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
}

func TestUpdateCategory_RenameRegeneratesSlug(t *testing.T) {
	s, _ := newCategoryService(t)

	created, err := s.Create(CreateCategoryInput{Name: "Cabinets"})
	require.NoError(t, err)

	updated, err := s.Update(created.ID, UpdateCategoryInput{Name: ptr("Wall Cabinets")})
	require.NoError(t, err)
	assert.Equal(t, "wall-cabinets", updated.Slug)

	// Description-only update leaves the slug alone.
	updated, err = s.Update(created.ID, UpdateCategoryInput{Description: ptr("Upper storage")})
	require.NoError(t, err)
	assert.Equal(t, "wall-cabinets", updated.Slug)
}

func TestDeleteCategory_BlockedWhileProductsExist(t *testing.T) {
	s, db := newCategoryService(t)

	created, err := s.Create(CreateCategoryInput{Name: "Cabinets"})
	require.NoError(t, err)

	product := models.Product{Name: "Base Cabinet", SKU: "CAB-1", CategoryID: &created.ID, Status: models.ProductActive}
	require.NoError(t, db.Create(&product).Error)

	err = s.Delete(created.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))

	// Once the product is gone, deletion succeeds.
	require.NoError(t, db.Delete(&product).Error)
	assert.NoError(t, s.Delete(created.ID))
}

func TestGetCategoryBySlug_WithProductCount(t *testing.T) {
	s, db := newCategoryService(t)

	created, err := s.Create(CreateCategoryInput{Name: "Cabinets"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Product{Name: "Base Cabinet", SKU: "CAB-1", CategoryID: &created.ID}).Error)

	found, err := s.GetBySlug("cabinets")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ProductCount)

	_, err = s.GetBySlug("nope")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCategoryProducts_ScopedToCategory(t *testing.T) {
	s, db := newCategoryService(t)

	cabinets, err := s.Create(CreateCategoryInput{Name: "Cabinets"})
	require.NoError(t, err)
	tops, err := s.Create(CreateCategoryInput{Name: "Countertops"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Product{Name: "Base Cabinet", SKU: "CAB-1", CategoryID: &cabinets.ID, Stock: 3}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Quartz Top", SKU: "TOP-1", CategoryID: &tops.ID, Stock: 0}).Error)

	opts := pagination.Options{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: pagination.SortDesc}
	res, err := s.Products("cabinets", repositories.ProductFilters{}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)

	inStock := true
	res, err = s.Products("countertops", repositories.ProductFilters{InStock: &inStock}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Meta.Total)
}
