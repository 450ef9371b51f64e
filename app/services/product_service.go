package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/hearthworks/remodel/pkg/storage"
	"gorm.io/gorm"
)

// ProductInput is the payload for POST /products and each row of a bulk
// upload.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	SKU         string  `json:"sku" validate:"required,min=2,max=100"`
	Description string  `json:"description"`
	CategoryID  *uint   `json:"categoryId"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock"`
	Brand       string  `json:"brand" validate:"nullable,max=255"`
	Supplier    string  `json:"supplier" validate:"nullable,max=255"`
	ImageURL    string  `json:"imageUrl" validate:"nullable,url"`
	Status      string  `json:"status" validate:"nullable,in=active,inactive,discontinued"`
}

// UpdateProductInput is the partial-update payload for PUT /products/:id.
type UpdateProductInput struct {
	Name        *string  `json:"name" validate:"nullable,min=2,max=255"`
	SKU         *string  `json:"sku" validate:"nullable,min=2,max=100"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"categoryId"`
	Price       *float64 `json:"price" validate:"nullable,gte=0"`
	Stock       *int     `json:"stock"`
	Brand       *string  `json:"brand" validate:"nullable,max=255"`
	Supplier    *string  `json:"supplier" validate:"nullable,max=255"`
	ImageURL    *string  `json:"imageUrl" validate:"nullable,url"`
	Status      *string  `json:"status" validate:"nullable,in=active,inactive,discontinued"`
}

// BulkUploadInput is the payload for POST /products/bulk-upload.
type BulkUploadInput struct {
	Products []ProductInput `json:"products" validate:"required,dive"`
}

// BulkUploadResult reports how the batch went. Skipped rows collided on a
// unique constraint.
type BulkUploadResult struct {
	Received int   `json:"received"`
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
}

// SearchProductsInput is the body payload for POST /products/search.
type SearchProductsInput struct {
	Search     string   `json:"search"`
	CategoryID *uint    `json:"categoryId"`
	Status     string   `json:"status" validate:"nullable,in=active,inactive,discontinued"`
	MinPrice   *float64 `json:"minPrice" validate:"nullable,gte=0"`
	MaxPrice   *float64 `json:"maxPrice" validate:"nullable,gte=0"`
	InStock    *bool    `json:"inStock"`
	Brand      string   `json:"brand"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
}

// ProductService implements catalogue management.
type ProductService struct {
	repo       *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductService(repo *repositories.ProductRepository, categories *repositories.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categories: categories}
}

// List returns a page of products.
func (s *ProductService) List(f repositories.ProductFilters, opts pagination.Options) (pagination.Result, error) {
	products, total, err := s.repo.List(f, opts)
	if err != nil {
		return pagination.Result{}, apperr.Internal("list products", err)
	}
	return pagination.NewResult(products, total, opts.Page, opts.Limit), nil
}

// Search is the POST variant of List, taking filters in the body.
func (s *ProductService) Search(in SearchProductsInput, maxLimit int) (pagination.Result, error) {
	opts := pagination.Options{
		Page:      pagination.DefaultPage,
		Limit:     pagination.DefaultLimit,
		SortBy:    pagination.DefaultSortBy,
		SortOrder: pagination.SortDesc,
	}
	if in.Page > 0 {
		opts.Page = in.Page
	}
	if in.Limit > 0 {
		opts.Limit = in.Limit
	}
	if maxLimit > 0 && opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}

	f := repositories.ProductFilters{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		Status:     in.Status,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		InStock:    in.InStock,
		Brand:      in.Brand,
	}
	return s.List(f, opts)
}

// Get fetches one product by id.
func (s *ProductService) Get(id uint) (models.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound("Product")
		}
		return models.Product{}, apperr.Internal("find product", err)
	}
	return product, nil
}

func (s *ProductService) checkCategory(id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("Category %d does not exist", *id)
		}
		return apperr.Internal("find category", err)
	}
	return nil
}

// Create stores a new product.
func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	if _, err := s.repo.FindBySKU(in.SKU); err == nil {
		return models.Product{}, apperr.Domain("A product with this SKU already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apperr.Internal("look up SKU", err)
	}

	if err := s.checkCategory(in.CategoryID); err != nil {
		return models.Product{}, err
	}

	status := in.Status
	if status == "" {
		status = models.ProductActive
	}

	product := models.Product{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Stock:       in.Stock,
		Brand:       in.Brand,
		Supplier:    in.Supplier,
		ImageURL:    in.ImageURL,
		Status:      status,
	}
	if err := s.repo.Create(&product); err != nil {
		return models.Product{}, apperr.Internal("create product", err)
	}
	return product, nil
}

// Update merges the non-nil fields over the stored product.
func (s *ProductService) Update(id uint, in UpdateProductInput) (models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	if in.SKU != nil && *in.SKU != product.SKU {
		if existing, err := s.repo.FindBySKU(*in.SKU); err == nil && existing.ID != product.ID {
			return models.Product{}, apperr.Domain("A product with this SKU already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.Internal("look up SKU", err)
		}
		product.SKU = *in.SKU
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(in.CategoryID); err != nil {
			return models.Product{}, err
		}
		product.CategoryID = in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Status != nil {
		product.Status = *in.Status
	}

	product.Category = nil // avoid re-saving the preloaded association
	if err := s.repo.Update(&product); err != nil {
		return models.Product{}, apperr.Internal("update product", err)
	}
	return product, nil
}

// SetStatus patches only the product status.
func (s *ProductService) SetStatus(id uint, status string) (models.Product, error) {
	if !models.ValidProductStatus(status) {
		return models.Product{}, apperr.Validation("Unknown product status %q", status)
	}

	product, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	product.Status = status
	product.Category = nil
	if err := s.repo.Update(&product); err != nil {
		return models.Product{}, apperr.Internal("update product status", err)
	}
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product")
		}
		return apperr.Internal("delete product", err)
	}
	return nil
}

// BulkUpload inserts a batch of products, skipping rows whose SKU already
// exists rather than failing the batch.
func (s *ProductService) BulkUpload(in BulkUploadInput) (BulkUploadResult, error) {
	products := make([]models.Product, 0, len(in.Products))
	for _, row := range in.Products {
		status := row.Status
		if status == "" {
			status = models.ProductActive
		}
		products = append(products, models.Product{
			Name:        row.Name,
			SKU:         row.SKU,
			Description: row.Description,
			CategoryID:  row.CategoryID,
			Price:       row.Price,
			Stock:       row.Stock,
			Brand:       row.Brand,
			Supplier:    row.Supplier,
			ImageURL:    row.ImageURL,
			Status:      status,
		})
	}

	inserted, err := s.repo.BulkInsert(products)
	if err != nil {
		return BulkUploadResult{}, apperr.Internal("bulk insert products", err)
	}

	return BulkUploadResult{
		Received: len(in.Products),
		Inserted: inserted,
		Skipped:  int64(len(in.Products)) - inserted,
	}, nil
}

// UploadImage stores the image on the configured disk and records its
// public URL on the product.
func (s *ProductService) UploadImage(id uint, filename string, file io.Reader) (models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	disk, err := storage.Default()
	if err != nil {
		return models.Product{}, apperr.Internal("open storage disk", err)
	}

	path := fmt.Sprintf("products/%d/%d-%s", id, time.Now().UnixMilli(), filename)
	if err := disk.PutStream(path, file); err != nil {
		return models.Product{}, apperr.Internal("store image", err)
	}

	product.ImageURL = disk.URL(path)
	product.Category = nil
	if err := s.repo.Update(&product); err != nil {
		return models.Product{}, apperr.Internal("update product", err)
	}
	return product, nil
}
