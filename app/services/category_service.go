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

// CreateCategoryInput is the payload for POST /categories.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"nullable,url"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCategoryInput is the partial-update payload for PUT /categories/:id.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"nullable,min=2,max=255"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"nullable,url"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryService implements category management. The slug is derived from
// the name and regenerated on every rename.
type CategoryService struct {
	repo     *repositories.CategoryRepository
	products *repositories.ProductRepository
}

func NewCategoryService(repo *repositories.CategoryRepository, products *repositories.ProductRepository) *CategoryService {
	return &CategoryService{repo: repo, products: products}
}

// List returns a page of categories with product counts.
func (s *CategoryService) List(f repositories.CategoryFilters, opts pagination.Options) (pagination.Result, error) {
	categories, total, err := s.repo.List(f, opts)
	if err != nil {
		return pagination.Result{}, apperr.Internal("list categories", err)
	}
	return pagination.NewResult(categories, total, opts.Page, opts.Limit), nil
}

// GetBySlug fetches one category by slug.
func (s *CategoryService) GetBySlug(slug string) (models.Category, error) {
	category, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, apperr.NotFound("Category")
		}
		return models.Category{}, apperr.Internal("find category", err)
	}

	category.ProductCount, err = s.repo.ProductCount(category.ID)
	if err != nil {
		return models.Category{}, apperr.Internal("count category products", err)
	}
	return category, nil
}

// Create stores a new category with a derived slug.
func (s *CategoryService) Create(in CreateCategoryInput) (models.Category, error) {
	slug := models.MakeSlug(in.Name)
	if slug == "" {
		return models.Category{}, apperr.Validation("Category name must contain letters or digits")
	}

	if _, err := s.repo.FindBySlug(slug); err == nil {
		return models.Category{}, apperr.Domain("A category with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, apperr.Internal("look up slug", err)
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	category := models.Category{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    active,
	}
	if err := s.repo.Create(&category); err != nil {
		return models.Category{}, apperr.Internal("create category", err)
	}
	return category, nil
}

// Update merges the non-nil fields over the stored category, regenerating
// the slug when the name changes.
func (s *CategoryService) Update(id uint, in UpdateCategoryInput) (models.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, apperr.NotFound("Category")
		}
		return models.Category{}, apperr.Internal("find category", err)
	}

	if in.Name != nil && *in.Name != category.Name {
		slug := models.MakeSlug(*in.Name)
		if slug == "" {
			return models.Category{}, apperr.Validation("Category name must contain letters or digits")
		}
		if existing, err := s.repo.FindBySlug(slug); err == nil && existing.ID != category.ID {
			return models.Category{}, apperr.Domain("A category with this name already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, apperr.Internal("look up slug", err)
		}
		category.Name = *in.Name
		category.Slug = slug
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.ImageURL != nil {
		category.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.repo.Update(&category); err != nil {
		return models.Category{}, apperr.Internal("update category", err)
	}
	return category, nil
}

// Delete removes a category. Blocked while products still reference it.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Category")
		}
		return apperr.Internal("find category", err)
	}

	count, err := s.repo.ProductCount(id)
	if err != nil {
		return apperr.Internal("count category products", err)
	}
	if count > 0 {
		return apperr.Domain("Cannot delete a category that still has products")
	}

	if err := s.repo.Delete(id); err != nil {
		return apperr.Internal("delete category", err)
	}
	return nil
}

// Products returns a page of the category's products, honouring product
// filters on top of the category constraint.
func (s *CategoryService) Products(slug string, f repositories.ProductFilters, opts pagination.Options) (pagination.Result, error) {
	category, err := s.GetBySlug(slug)
	if err != nil {
		return pagination.Result{}, err
	}

	f.CategoryID = &category.ID
	products, total, err := s.products.List(f, opts)
	if err != nil {
		return pagination.Result{}, apperr.Internal("list category products", err)
	}
	return pagination.NewResult(products, total, opts.Page, opts.Limit), nil
}

// UploadImage stores the image on the configured disk and records its
// public URL on the category.
func (s *CategoryService) UploadImage(id uint, filename string, file io.Reader) (models.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, apperr.NotFound("Category")
		}
		return models.Category{}, apperr.Internal("find category", err)
	}

	disk, err := storage.Default()
	if err != nil {
		return models.Category{}, apperr.Internal("open storage disk", err)
	}

	path := fmt.Sprintf("categories/%d/%d-%s", id, time.Now().UnixMilli(), filename)
	if err := disk.PutStream(path, file); err != nil {
		return models.Category{}, apperr.Internal("store image", err)
	}

	category.ImageURL = disk.URL(path)
	if err := s.repo.Update(&category); err != nil {
		return models.Category{}, apperr.Internal("update category", err)
	}
	return category, nil
}
