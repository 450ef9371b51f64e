package repositories

import (
	"strings"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilters is the typed filter bag for product list queries.
type ProductFilters struct {
	Search     string
	CategoryID *uint
	Status     string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Brand      string
}

var productSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"sku":       "sku",
	"price":     "price",
	"stock":     "stock",
	"brand":     "brand",
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) scope(f ProductFilters) *gorm.DB {
	q := r.db.Model(&models.Product{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			like, like, like, like,
		)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock != nil {
		if *f.InStock {
			q = q.Where("stock > 0")
		} else {
			q = q.Where("stock <= 0")
		}
	}
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}

	return q
}

// List returns one page of products matching the filters plus the total count.
func (r *ProductRepository) List(f ProductFilters, opts pagination.Options) ([]models.Product, int64, error) {
	q := r.scope(f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := q.Preload("Category").
		Order(opts.OrderClause(productSortColumns)).
		Offset(opts.Skip()).
		Limit(opts.Limit).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, id).Error
	return product, err
}

func (r *ProductRepository) FindBySKU(sku string) (models.Product, error) {
	var product models.Product
	err := r.db.Where("sku = ?", sku).First(&product).Error
	return product, err
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BulkInsert inserts products, skipping rows that collide on a unique
// constraint instead of aborting the batch. Returns how many rows were
// actually inserted.
func (r *ProductRepository) BulkInsert(products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products)
	return res.RowsAffected, res.Error
}
