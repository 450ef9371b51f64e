package models

import "time"

// Order statuses. Completed and cancelled are terminal.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Order is a customer purchase. Customer contact fields are stored on the
// order itself; CustomerID links to a User account when one exists.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;size:50;not null" json:"orderNumber"`
	CustomerID      *uint       `gorm:"index" json:"customerId"`
	Customer        *User       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName    string      `gorm:"size:255;not null" json:"customerName"`
	CustomerEmail   string      `gorm:"size:255;not null;index" json:"customerEmail"`
	CustomerPhone   string      `gorm:"size:50" json:"customerPhone"`
	CustomerAddress string      `gorm:"type:text" json:"customerAddress"`
	Status          string      `gorm:"size:50;default:pending;index" json:"status"`
	PaymentStatus   string      `gorm:"size:50;default:unpaid;index" json:"paymentStatus"`
	PaymentMethod   string      `gorm:"size:100" json:"paymentMethod"`
	TotalAmount     float64     `gorm:"not null;default:0" json:"totalAmount"`
	Discount        float64     `gorm:"not null;default:0" json:"discount"`
	Tax             float64     `gorm:"not null;default:0" json:"tax"`
	FinalAmount     float64     `gorm:"not null;default:0" json:"finalAmount"`
	Notes           string      `gorm:"type:text" json:"notes"`
	OrderDate       time.Time   `json:"orderDate"`
	ExpectedDate    *time.Time  `json:"expectedDate"`
	CompletionDate  *time.Time  `json:"completionDate"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem is a line on an order. Items are owned exclusively by their
// order and replaced wholesale when an order's items change.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"orderId"`
	ProductID   *uint   `gorm:"index" json:"productId"`
	ProductName string  `gorm:"size:255;not null" json:"productName"`
	ProductSKU  string  `gorm:"size:100" json:"productSku"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
	TotalPrice  float64 `gorm:"not null" json:"totalPrice"`
	Notes       string  `gorm:"type:text" json:"notes"`
}

// ValidOrderStatus reports whether status is a known order status.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether status is a known payment status.
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status from may move to
// status to. Completed and cancelled accept no further transitions.
func CanTransitionTo(from, to string) bool {
	switch from {
	case OrderPending:
		return to == OrderProcessing || to == OrderCompleted || to == OrderCancelled
	case OrderProcessing:
		return to == OrderCompleted || to == OrderCancelled
	}
	return false
}
