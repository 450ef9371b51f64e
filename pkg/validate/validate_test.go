package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=50"`
	Email string  `json:"email" validate:"required,email"`
	Role  string  `json:"role" validate:"nullable,in=admin,customer"`
	Price float64 `json:"price" validate:"nullable,gte=0"`
}

func TestStruct_Required(t *testing.T) {
	errs := Struct(signupInput{Email: "a@b.com"})
	assert.True(t, HasErrors(errs))
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestStruct_Email(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"jane@example.com", true},
		{"jane@example", false},
		{"not-an-email", false},
		{"a.b+tag@sub.domain.io", true},
	}
	for _, tt := range tests {
		errs := Struct(signupInput{Name: "Jane", Email: tt.email})
		if tt.ok {
			assert.NotContains(t, errs, "email", "email %q", tt.email)
		} else {
			assert.Equal(t, "The email must be a valid email address.", errs["email"], "email %q", tt.email)
		}
	}
}

func TestStruct_NullableSkipsEmpty(t *testing.T) {
	errs := Struct(signupInput{Name: "Jane", Email: "jane@example.com"})
	assert.False(t, HasErrors(errs))
}

func TestStruct_In(t *testing.T) {
	errs := Struct(signupInput{Name: "Jane", Email: "jane@example.com", Role: "superuser"})
	assert.Equal(t, "The selected role is invalid.", errs["role"])

	errs = Struct(signupInput{Name: "Jane", Email: "jane@example.com", Role: "customer"})
	assert.False(t, HasErrors(errs))
}

func TestStruct_MinMaxStrings(t *testing.T) {
	errs := Struct(signupInput{Name: "J", Email: "jane@example.com"})
	assert.Equal(t, "The name must be at least 2 characters.", errs["name"])
}

type orderInput struct {
	CustomerName string      `json:"customerName" validate:"required"`
	Items        []itemInput `json:"items" validate:"required,dive"`
}

type itemInput struct {
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"required,gte=0"`
}

func TestStruct_DiveValidatesElements(t *testing.T) {
	in := orderInput{
		CustomerName: "Jane",
		Items: []itemInput{
			{ProductName: "Cabinet", Quantity: 2, UnitPrice: 100},
			{ProductName: "", Quantity: 0, UnitPrice: 5},
		},
	}
	errs := Struct(in)
	assert.Equal(t, "The items.1.productName field is required.", errs["items.1.productName"])
	assert.Equal(t, "The items.1.quantity field is required.", errs["items.1.quantity"])
	assert.NotContains(t, errs, "items.0.productName")
}

func TestStruct_EmptyItemsFailsRequired(t *testing.T) {
	errs := Struct(orderInput{CustomerName: "Jane"})
	assert.Equal(t, "The items field is required.", errs["items"])
}

func TestSplitRules_KeepsInParams(t *testing.T) {
	rules := splitRules("required,in=admin,customer,max=100")
	assert.Equal(t, []string{"required", "in=admin,customer", "max=100"}, rules)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2025-06-15")
	assert.NoError(t, err)
	_, err = ParseDate("2025-06-15T10:30:00Z")
	assert.NoError(t, err)
	_, err = ParseDate("June nonsense")
	assert.Error(t, err)
}
