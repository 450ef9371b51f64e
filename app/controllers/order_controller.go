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

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// List handles GET /orders. Invalid startDate/endDate values are a
// validation error, not silently ignored.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := dateParam(q, "startDate")
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	end, err := dateParam(q, "endDate")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	filters := repositories.OrderFilters{
		Search:        q.Get("search"),
		Status:        q.Get("status"),
		PaymentStatus: q.Get("paymentStatus"),
		CustomerEmail: q.Get("customerEmail"),
		StartDate:     start,
		EndDate:       end,
	}
	opts := pagination.FromQuery(q, config.MaxPageSize())

	res, err := c.service.List(filters, opts)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Orders retrieved", res)
}

// ListByCustomer handles GET /orders/customer/{email}.
func (c *OrderController) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	opts := pagination.FromQuery(r.URL.Query(), config.MaxPageSize())

	res, err := c.service.ListByCustomer(chi.URLParam(r, "email"), opts)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Paginated(w, "Customer orders retrieved", res)
}

// Get handles GET /orders/{id}.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	order, err := c.service.Get(id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order retrieved", order)
}

// GetByOrderNumber handles GET /orders/order-number/{orderNumber}.
func (c *OrderController) GetByOrderNumber(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.GetByOrderNumber(chi.URLParam(r, "orderNumber"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order retrieved", order)
}

// Create handles POST /orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	order, err := c.service.Create(in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Created(w, "Order created", order)
}

// Update handles PUT /orders/{id}.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.UpdateOrderInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	order, err := c.service.Update(id, in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order updated", order)
}

// SetStatus handles PATCH /orders/{id}/status.
func (c *OrderController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.UpdateOrderStatusInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	order, err := c.service.UpdateStatus(id, in.Status)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order status updated", order)
}

// SetPayment handles PATCH /orders/{id}/payment.
func (c *OrderController) SetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	var in services.UpdatePaymentInput
	if errs, err := bind.JSON(w, r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationErrors(w, errs)
		return
	}

	order, err := c.service.UpdatePayment(id, in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order payment updated", order)
}

// Delete handles DELETE /orders/{id}.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := c.service.Delete(id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order deleted", nil)
}

// Statistics handles GET /orders/statistics.
func (c *OrderController) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Statistics()
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, "Order statistics retrieved", stats)
}
