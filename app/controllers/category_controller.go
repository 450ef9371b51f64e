package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/app/services"
	"github.com/hearthworks/remodel/config"
	"github.com/hearthworks/remodel/pkg/bind"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/hearthworks/remodel/pkg/response"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

// List handles GET /categories. Only active categories are listed unless
// the isActive parameter says otherwise.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	active := boolParam(q, "isActive")
	if active == nil {
		active = ptrBool(true)
	}
	filters := repositories.CategoryFilters{
		Search:   q.Get("search"),
		IsActive: active,
	}
	opts := pagination.FromQuery(q, config.MaxPageSize())

	res, err := c.service.List(filters, opts)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Categories retrieved", res)
}

// Get handles GET /categories/{slug}.
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.service.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Category retrieved", category)
}

// Products handles GET /categories/{slug}/products.
func (c *CategoryController) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repositories.ProductFilters{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		MinPrice: floatParam(q, "minPrice"),
		MaxPrice: floatParam(q, "maxPrice"),
		InStock:  boolParam(q, "inStock"),
		Brand:    q.Get("brand"),
	}
	opts := pagination.FromQuery(q, config.MaxPageSize())

	res, err := c.service.Products(chi.URLParam(r, "slug"), filters, opts)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Category products retrieved", res)
}

// Create handles POST /categories.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCategoryInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	category, err := c.service.Create(in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Category created", category)
}

// Update handles PUT /categories/{id}.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.UpdateCategoryInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	category, err := c.service.Update(id, in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Category updated", category)
}

// UploadImage handles POST /categories/{id}/image (multipart form, field
// "image").
func (c *CategoryController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	category, err := c.service.UploadImage(id, header.Filename, file)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Category image uploaded", category)
}

// Delete handles DELETE /categories/{id}.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := c.service.Delete(id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Category deleted", nil)
}
