package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Kitchen & Bath!", "kitchen-bath"},
		{"Cabinets", "cabinets"},
		{"  Sinks and Faucets  ", "sinks-and-faucets"},
		{"100% Quartz", "100-quartz"},
		{"---", ""},
		{"Déjà Vu", "d-j-vu"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MakeSlug(tt.name), "MakeSlug(%q)", tt.name)
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := map[[2]string]bool{
		{OrderPending, OrderProcessing}:   true,
		{OrderPending, OrderCompleted}:    true,
		{OrderPending, OrderCancelled}:    true,
		{OrderProcessing, OrderCompleted}: true,
		{OrderProcessing, OrderCancelled}: true,
	}

	statuses := []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransitionTo(from, to), "%s -> %s", from, to)
		}
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidRole(RoleContractor))
	assert.False(t, ValidRole("superuser"))
	assert.True(t, ValidProductStatus(ProductDiscontinued))
	assert.False(t, ValidProductStatus("retired"))
	assert.True(t, ValidOrderStatus(OrderCancelled))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.True(t, ValidPaymentStatus(PaymentRefunded))
	assert.False(t, ValidPaymentStatus("partial"))
}
