package repositories

import (
	"strings"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/pkg/pagination"
	"gorm.io/gorm"
)

// CategoryFilters is the typed filter bag for category list queries.
type CategoryFilters struct {
	Search   string
	IsActive *bool
}

var categorySortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"slug":      "slug",
}

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) scope(f CategoryFilters) *gorm.DB {
	q := r.db.Model(&models.Category{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	return q
}

// List returns one page of categories with their product counts.
func (r *CategoryRepository) List(f CategoryFilters, opts pagination.Options) ([]models.Category, int64, error) {
	q := r.scope(f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := q.Order(opts.OrderClause(categorySortColumns)).
		Offset(opts.Skip()).
		Limit(opts.Limit).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range categories {
		count, err := r.ProductCount(categories[i].ID)
		if err != nil {
			return nil, 0, err
		}
		categories[i].ProductCount = count
	}

	return categories, total, nil
}

func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return category, err
}

func (r *CategoryRepository) FindBySlug(slug string) (models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	return category, err
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ProductCount returns how many products reference the category. Deletion
// is blocked while this is non-zero.
func (r *CategoryRepository) ProductCount(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
