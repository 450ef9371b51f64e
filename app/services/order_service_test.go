package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) *OrderService {
	t.Helper()
	return NewOrderService(repositories.NewOrderRepository(newTestDB(t)))
}

func sampleOrderInput() CreateOrderInput {
	return CreateOrderInput{
		CustomerName:  "Jane Mason",
		CustomerEmail: "jane@example.com",
		Items: []OrderItemInput{
			{ProductName: "Shaker Base Cabinet", Quantity: 2, UnitPrice: 10},
			{ProductName: "Cabinet Handle", Quantity: 1, UnitPrice: 5},
		},
	}
}

func TestCreateOrder_Totals(t *testing.T) {
	s := newOrderService(t)

	order, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, 25.0, order.FinalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 20.0, order.Items[0].TotalPrice)
	assert.Equal(t, 5.0, order.Items[1].TotalPrice)
}

func TestCreateOrder_DiscountAndTax(t *testing.T) {
	s := newOrderService(t)

	in := sampleOrderInput()
	in.Discount = ptr(5.0)
	in.Tax = ptr(2.0)

	order, err := s.Create(in)
	require.NoError(t, err)

	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, 22.0, order.FinalAmount)
}

func TestCreateOrder_OrderNumberFormat(t *testing.T) {
	s := newOrderService(t)

	order, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+-\d{3}$`), order.OrderNumber)
}

func TestCreateOrder_DuplicateOrderNumberIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewOrderRepository(db)
	s := NewOrderService(repo)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	// Reusing the order number trips the unique index; the store reports it
	// as gorm.ErrDuplicatedKey and the service turns it into a retryable
	// conflict rather than an internal error.
	dup := models.Order{
		OrderNumber:   created.OrderNumber,
		CustomerName:  "Jane Mason",
		CustomerEmail: "jane@example.com",
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
		OrderDate:     time.Now(),
	}
	err = repo.Create(&dup)
	require.Error(t, err)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	mapped := createOrderErr(err)
	assert.Equal(t, apperr.KindDomain, apperr.KindOf(mapped))

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(createOrderErr(errors.New("disk full"))))
}

func TestUpdateOrder_ItemsOnlyPreservesStoredDiscountAndTax(t *testing.T) {
	s := newOrderService(t)

	in := sampleOrderInput()
	in.Discount = ptr(5.0)
	in.Tax = ptr(2.0)
	created, err := s.Create(in)
	require.NoError(t, err)

	// Replace items without touching discount/tax.
	updated, err := s.Update(created.ID, UpdateOrderInput{
		Items: []OrderItemInput{
			{ProductName: "Quartz Countertop", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, updated.TotalAmount)
	assert.Equal(t, 5.0, updated.Discount)
	assert.Equal(t, 2.0, updated.Tax)
	assert.Equal(t, 97.0, updated.FinalAmount)

	// Old items are gone; only the replacement remains.
	reloaded, err := s.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Quartz Countertop", reloaded.Items[0].ProductName)
	assert.Equal(t, 97.0, reloaded.FinalAmount)
}

func TestUpdateOrder_DiscountOnlyRecomputesFinal(t *testing.T) {
	s := newOrderService(t)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	updated, err := s.Update(created.ID, UpdateOrderInput{Discount: ptr(10.0)})
	require.NoError(t, err)

	assert.Equal(t, 25.0, updated.TotalAmount)
	assert.Equal(t, 15.0, updated.FinalAmount)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name string
		path []string
		ok   bool
	}{
		{"pending to processing", []string{models.OrderProcessing}, true},
		{"pending to completed", []string{models.OrderCompleted}, true},
		{"pending to cancelled", []string{models.OrderCancelled}, true},
		{"processing to completed", []string{models.OrderProcessing, models.OrderCompleted}, true},
		{"processing to cancelled", []string{models.OrderProcessing, models.OrderCancelled}, true},
		{"completed is terminal", []string{models.OrderCompleted, models.OrderProcessing}, false},
		{"cancelled is terminal", []string{models.OrderCancelled, models.OrderProcessing}, false},
		{"no self transition", []string{models.OrderPending}, true}, // first hop only
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newOrderService(t)
			created, err := s.Create(sampleOrderInput())
			require.NoError(t, err)

			if tt.name == "no self transition" {
				_, err := s.UpdateStatus(created.ID, models.OrderPending)
				require.Error(t, err)
				assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
				return
			}

			var lastErr error
			for _, status := range tt.path {
				_, lastErr = s.UpdateStatus(created.ID, status)
				if lastErr != nil {
					break
				}
			}

			if tt.ok {
				require.NoError(t, lastErr)
			} else {
				require.Error(t, lastErr)
				assert.Equal(t, apperr.KindDomain, apperr.KindOf(lastErr))
			}
		})
	}
}

func TestUpdateStatus_CompletedStampsCompletionDate(t *testing.T) {
	s := newOrderService(t)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)
	assert.Nil(t, created.CompletionDate)

	completed, err := s.UpdateStatus(created.ID, models.OrderCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletionDate)
	assert.False(t, completed.CompletionDate.IsZero())
}

func TestUpdateStatus_NonCompletedLeavesCompletionDateUntouched(t *testing.T) {
	s := newOrderService(t)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	processing, err := s.UpdateStatus(created.ID, models.OrderProcessing)
	require.NoError(t, err)
	assert.Nil(t, processing.CompletionDate)
}

func TestUpdateStatus_UnknownStatusIsValidationError(t *testing.T) {
	s := newOrderService(t)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	_, err = s.UpdateStatus(created.ID, "shipped")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdatePayment(t *testing.T) {
	s := newOrderService(t)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	order, err := s.UpdatePayment(created.ID, UpdatePaymentInput{
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: ptr("credit_card"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, "credit_card", order.PaymentMethod)
}

func TestGetByOrderNumber(t *testing.T) {
	s := newOrderService(t)

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	found, err := s.GetByOrderNumber(created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.GetByOrderNumber("ORD-0-000")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteOrder_RemovesItems(t *testing.T) {
	db := newTestDB(t)
	s := NewOrderService(repositories.NewOrderRepository(db))

	created, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.ID))

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", created.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderStatistics(t *testing.T) {
	s := newOrderService(t)

	// One pending order worth 25.
	_, err := s.Create(sampleOrderInput())
	require.NoError(t, err)

	// One completed + paid order worth 100.
	in := sampleOrderInput()
	in.Items = []OrderItemInput{{ProductName: "Countertop", Quantity: 1, UnitPrice: 100}}
	paid, err := s.Create(in)
	require.NoError(t, err)
	_, err = s.UpdateStatus(paid.ID, models.OrderCompleted)
	require.NoError(t, err)
	_, err = s.UpdatePayment(paid.ID, UpdatePaymentInput{PaymentStatus: models.PaymentPaid})
	require.NoError(t, err)

	stats, err := s.Statistics()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, 100.0, stats.TotalRevenue)
	assert.Equal(t, 25.0, stats.PendingRevenue)
}

func TestListOrders_FiltersAndPagination(t *testing.T) {
	s := newOrderService(t)

	for i := 0; i < 3; i++ {
		_, err := s.Create(sampleOrderInput())
		require.NoError(t, err)
	}
	other := sampleOrderInput()
	other.CustomerEmail = "bob@example.com"
	other.CustomerName = "Bob Field"
	_, err := s.Create(other)
	require.NoError(t, err)

	opts := pagination.Options{Page: 1, Limit: 2, SortBy: "createdAt", SortOrder: pagination.SortDesc}
	res, err := s.List(repositories.OrderFilters{CustomerEmail: "jane@example.com"}, opts)
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Meta.Total)
	assert.Equal(t, int64(2), res.Meta.TotalPages)

	// Search is case-insensitive across customer fields.
	res, err = s.List(repositories.OrderFilters{Search: "BOB"}, pagination.Options{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: pagination.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)
}
