package controllers

import (
	"net/http"

	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/app/services"
	"github.com/hearthworks/remodel/config"
	"github.com/hearthworks/remodel/pkg/bind"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/hearthworks/remodel/pkg/response"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// List handles GET /products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repositories.ProductFilters{
		Search:     q.Get("search"),
		CategoryID: uintParam(q, "category"),
		Status:     q.Get("status"),
		MinPrice:   floatParam(q, "minPrice"),
		MaxPrice:   floatParam(q, "maxPrice"),
		InStock:    boolParam(q, "inStock"),
		Brand:      q.Get("brand"),
	}
	opts := pagination.FromQuery(q, config.MaxPageSize())

	res, err := c.service.List(filters, opts)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Products retrieved", res)
}

// Search handles POST /products/search with filters in the body.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	var in services.SearchProductsInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	res, err := c.service.Search(in, config.MaxPageSize())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Products retrieved", res)
}

// Get handles GET /products/{id}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	product, err := c.service.Get(id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Product retrieved", product)
}

// Create handles POST /products.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	product, err := c.service.Create(in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Product created", product)
}

// BulkUpload handles POST /products/bulk-upload. Duplicate SKUs are
// skipped, not fatal.
func (c *ProductController) BulkUpload(w http.ResponseWriter, r *http.Request) {
	var in services.BulkUploadInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	result, err := c.service.BulkUpload(in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Products uploaded", result)
}

// Update handles PUT /products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.UpdateProductInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	product, err := c.service.Update(id, in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Product updated", product)
}

// SetStatus handles PATCH /products/{id}/status.
func (c *ProductController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	product, err := c.service.SetStatus(id, in.Status)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Product status updated", product)
}

// UploadImage handles POST /products/{id}/image (multipart form, field
// "image").
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
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

	product, err := c.service.UploadImage(id, header.Filename, file)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Product image uploaded", product)
}

// Delete handles DELETE /products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := c.service.Delete(id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Product deleted", nil)
}
