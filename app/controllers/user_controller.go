package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/app/services"
	"github.com/hearthworks/remodel/config"
	"github.com/hearthworks/remodel/pkg/auth"
	"github.com/hearthworks/remodel/pkg/bind"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/hearthworks/remodel/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// List handles GET /users.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repositories.UserFilters{
		Search:   q.Get("search"),
		Role:     q.Get("role"),
		IsActive: boolParam(q, "isActive"),
	}
	opts := pagination.FromQuery(q, config.MaxPageSize())

	res, err := c.service.List(filters, opts)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Users retrieved", res)
}

// Get handles GET /users/{id}.
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	user, err := c.service.Get(id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User retrieved", user)
}

// GetByEmail handles GET /users/email/{email}.
func (c *UserController) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.GetByEmail(chi.URLParam(r, "email"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User retrieved", user)
}

// Me handles GET /users/me; requires the Auth middleware.
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := c.service.Get(claims.UserID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User retrieved", user)
}

// Register handles POST /users/register.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	user, err := c.service.Register(in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "User registered", user)
}

// Login handles POST /users/login.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	result, err := c.service.Login(in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Login successful", result)
}

// Update handles PUT /users/{id}.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.UpdateUserInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	user, err := c.service.Update(id, in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User updated", user)
}

// SetStatus handles PATCH /users/{id}/status.
func (c *UserController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in struct {
		IsActive *bool `json:"isActive"`
	}
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}
	if in.IsActive == nil {
		response.ValidationErrors(w, map[string]string{"isActive": "The isActive field is required."})
		return
	}

	user, err := c.service.SetActive(id, *in.IsActive)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User status updated", user)
}

// ChangePassword handles PATCH /users/{id}/change-password.
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.ChangePasswordInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	if err := c.service.ChangePassword(id, in); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Password changed", nil)
}

// Delete handles DELETE /users/{id}.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := c.service.Delete(id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User deleted", nil)
}

// Statistics handles GET /users/statistics.
func (c *UserController) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Statistics()
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "User statistics retrieved", stats)
}
