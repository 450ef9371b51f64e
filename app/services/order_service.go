package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/cache"
	"github.com/hearthworks/remodel/pkg/metrics"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/hearthworks/remodel/pkg/validate"
	"gorm.io/gorm"
)

const orderStatsCacheKey = "stats:orders"

// OrderItemInput is one line of an order payload.
type OrderItemInput struct {
	ProductID   *uint   `json:"productId"`
	ProductName string  `json:"productName" validate:"required,max=255"`
	ProductSKU  string  `json:"productSku" validate:"nullable,max=100"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	Notes       string  `json:"notes"`
}

// CreateOrderInput is the payload for POST /orders.
type CreateOrderInput struct {
	CustomerID      *uint            `json:"customerId"`
	CustomerName    string           `json:"customerName" validate:"required,min=2,max=255"`
	CustomerEmail   string           `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string           `json:"customerPhone" validate:"nullable,max=50"`
	CustomerAddress string           `json:"customerAddress"`
	PaymentMethod   string           `json:"paymentMethod" validate:"nullable,max=100"`
	Discount        *float64         `json:"discount" validate:"nullable,gte=0"`
	Tax             *float64         `json:"tax" validate:"nullable,gte=0"`
	Notes           string           `json:"notes"`
	ExpectedDate    string           `json:"expectedDate" validate:"nullable,date"`
	Items           []OrderItemInput `json:"items" validate:"required,dive"`
}

// UpdateOrderInput is the partial-update payload for PUT /orders/:id.
// When Items is non-nil the existing items are deleted and recreated
// wholesale and the totals recomputed.
type UpdateOrderInput struct {
	CustomerName    *string          `json:"customerName" validate:"nullable,min=2,max=255"`
	CustomerEmail   *string          `json:"customerEmail" validate:"nullable,email"`
	CustomerPhone   *string          `json:"customerPhone" validate:"nullable,max=50"`
	CustomerAddress *string          `json:"customerAddress"`
	PaymentMethod   *string          `json:"paymentMethod" validate:"nullable,max=100"`
	Discount        *float64         `json:"discount" validate:"nullable,gte=0"`
	Tax             *float64         `json:"tax" validate:"nullable,gte=0"`
	Notes           *string          `json:"notes"`
	ExpectedDate    *string          `json:"expectedDate" validate:"nullable,date"`
	Items           []OrderItemInput `json:"items" validate:"dive"`
}

// UpdateOrderStatusInput is the payload for PATCH /orders/:id/status.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,in=pending,processing,completed,cancelled"`
}

// UpdatePaymentInput is the payload for PATCH /orders/:id/payment.
type UpdatePaymentInput struct {
	PaymentStatus string  `json:"paymentStatus" validate:"required,in=unpaid,paid,refunded"`
	PaymentMethod *string `json:"paymentMethod" validate:"nullable,max=100"`
}

// OrderService implements order management: total computation, the status
// state machine and wholesale item replacement.
type OrderService struct {
	repo *repositories.OrderRepository
}

func NewOrderService(repo *repositories.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// newOrderNumber builds a human-readable token: ORD-<unix millis>-<3 random
// digits>. Unique enough under normal concurrency; a collision surfaces as
// the store's uniqueness error and the caller retries.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// buildItems converts inputs to models, stamping each line's total.
func buildItems(inputs []OrderItemInput) ([]models.OrderItem, float64) {
	items := make([]models.OrderItem, 0, len(inputs))
	var total float64
	for _, in := range inputs {
		lineTotal := float64(in.Quantity) * in.UnitPrice
		total += lineTotal
		items = append(items, models.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			ProductSKU:  in.ProductSKU,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  lineTotal,
			Notes:       in.Notes,
		})
	}
	return items, total
}

// finalAmount applies the discount/tax adjustment to an item total.
func finalAmount(total, discount, tax float64) float64 {
	return total - discount + tax
}

// createOrderErr classifies store failures on order creation. An order
// number collision comes back as gorm.ErrDuplicatedKey and is reported as a
// conflict the caller can retry; everything else stays internal.
func createOrderErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Domain("Order number already exists, please retry")
	}
	return apperr.Internal("create order", err)
}

// List returns a page of orders.
func (s *OrderService) List(f repositories.OrderFilters, opts pagination.Options) (pagination.Result, error) {
	orders, total, err := s.repo.List(f, opts)
	if err != nil {
		return pagination.Result{}, apperr.Internal("list orders", err)
	}
	return pagination.NewResult(orders, total, opts.Page, opts.Limit), nil
}

// ListByCustomer returns a page of one customer's orders.
func (s *OrderService) ListByCustomer(email string, opts pagination.Options) (pagination.Result, error) {
	return s.List(repositories.OrderFilters{CustomerEmail: email}, opts)
}

// Get fetches one order with its items.
func (s *OrderService) Get(id uint) (models.Order, error) {
	order, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound("Order")
		}
		return models.Order{}, apperr.Internal("find order", err)
	}
	return order, nil
}

// GetByOrderNumber fetches one order by its public number.
func (s *OrderService) GetByOrderNumber(orderNumber string) (models.Order, error) {
	order, err := s.repo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound("Order")
		}
		return models.Order{}, apperr.Internal("find order", err)
	}
	return order, nil
}

// Create stores a new pending order with computed totals.
func (s *OrderService) Create(in CreateOrderInput) (models.Order, error) {
	items, total := buildItems(in.Items)

	var discount, tax float64
	if in.Discount != nil {
		discount = *in.Discount
	}
	if in.Tax != nil {
		tax = *in.Tax
	}

	order := models.Order{
		OrderNumber:     newOrderNumber(),
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentUnpaid,
		PaymentMethod:   in.PaymentMethod,
		TotalAmount:     total,
		Discount:        discount,
		Tax:             tax,
		FinalAmount:     finalAmount(total, discount, tax),
		Notes:           in.Notes,
		OrderDate:       time.Now(),
		Items:           items,
	}

	if in.ExpectedDate != "" {
		t, err := validate.ParseDate(in.ExpectedDate)
		if err != nil {
			return models.Order{}, apperr.Validation("expectedDate is not a valid date")
		}
		order.ExpectedDate = &t
	}

	if err := s.repo.Create(&order); err != nil {
		return models.Order{}, createOrderErr(err)
	}

	metrics.OrdersCreated.Inc()
	cache.Del(orderStatsCacheKey) //nolint:errcheck
	return order, nil
}

// Update merges the non-nil fields over the stored order. A non-nil Items
// slice replaces every existing item and recomputes the totals; the stored
// discount/tax are reused unless the payload overrides them.
func (s *OrderService) Update(id uint, in UpdateOrderInput) (models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return models.Order{}, err
	}

	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.CustomerEmail != nil {
		order.CustomerEmail = *in.CustomerEmail
	}
	if in.CustomerPhone != nil {
		order.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerAddress != nil {
		order.CustomerAddress = *in.CustomerAddress
	}
	if in.PaymentMethod != nil {
		order.PaymentMethod = *in.PaymentMethod
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if in.ExpectedDate != nil {
		t, err := validate.ParseDate(*in.ExpectedDate)
		if err != nil {
			return models.Order{}, apperr.Validation("expectedDate is not a valid date")
		}
		order.ExpectedDate = &t
	}
	if in.Discount != nil {
		order.Discount = *in.Discount
	}
	if in.Tax != nil {
		order.Tax = *in.Tax
	}

	if in.Items != nil {
		items, total := buildItems(in.Items)
		order.TotalAmount = total
		order.FinalAmount = finalAmount(total, order.Discount, order.Tax)

		savedItems := order.Items
		order.Items = nil
		if err := s.repo.Update(&order); err != nil {
			return models.Order{}, apperr.Internal("update order", err)
		}
		order.Items = savedItems

		if err := s.repo.ReplaceItems(&order, items); err != nil {
			return models.Order{}, apperr.Internal("replace order items", err)
		}
	} else {
		order.FinalAmount = finalAmount(order.TotalAmount, order.Discount, order.Tax)
		savedItems := order.Items
		order.Items = nil
		if err := s.repo.Update(&order); err != nil {
			return models.Order{}, apperr.Internal("update order", err)
		}
		order.Items = savedItems
	}

	cache.Del(orderStatsCacheKey) //nolint:errcheck
	return order, nil
}

// UpdateStatus moves the order through the status machine. Entering
// completed stamps CompletionDate; every other transition leaves it as is.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return models.Order{}, apperr.Validation("Unknown order status %q", status)
	}

	order, err := s.Get(id)
	if err != nil {
		return models.Order{}, err
	}

	if !models.CanTransitionTo(order.Status, status) {
		return models.Order{}, apperr.Domain("Cannot change order status from %s to %s", order.Status, status)
	}

	order.Status = status
	if status == models.OrderCompleted {
		now := time.Now()
		order.CompletionDate = &now
	}

	savedItems := order.Items
	order.Items = nil
	if err := s.repo.Update(&order); err != nil {
		return models.Order{}, apperr.Internal("update order status", err)
	}
	order.Items = savedItems

	metrics.OrderStatusTransitions.WithLabelValues(status).Inc()
	cache.Del(orderStatsCacheKey) //nolint:errcheck
	return order, nil
}

// UpdatePayment patches the payment status and, optionally, the method.
func (s *OrderService) UpdatePayment(id uint, in UpdatePaymentInput) (models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return models.Order{}, err
	}

	order.PaymentStatus = in.PaymentStatus
	if in.PaymentMethod != nil {
		order.PaymentMethod = *in.PaymentMethod
	}

	savedItems := order.Items
	order.Items = nil
	if err := s.repo.Update(&order); err != nil {
		return models.Order{}, apperr.Internal("update order payment", err)
	}
	order.Items = savedItems

	cache.Del(orderStatsCacheKey) //nolint:errcheck
	return order, nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Order")
		}
		return apperr.Internal("delete order", err)
	}
	cache.Del(orderStatsCacheKey) //nolint:errcheck
	return nil
}

// Statistics aggregates order counts and revenue, cached briefly in Redis.
func (s *OrderService) Statistics() (repositories.OrderStatistics, error) {
	var stats repositories.OrderStatistics
	if cache.Get(orderStatsCacheKey, &stats) {
		return stats, nil
	}

	stats, err := s.repo.Statistics()
	if err != nil {
		return stats, apperr.Internal("aggregate order statistics", err)
	}

	cache.Set(orderStatsCacheKey, stats, 30*time.Second) //nolint:errcheck
	return stats, nil
}
