package models

import "time"

// Product statuses.
const (
	ProductActive       = "active"
	ProductInactive     = "inactive"
	ProductDiscontinued = "discontinued"
)

// Product is a catalogue entry, optionally attached to a Category.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	SKU         string    `gorm:"uniqueIndex;size:100;not null" json:"sku"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Brand       string    `gorm:"size:255;index" json:"brand"`
	Supplier    string    `gorm:"size:255" json:"supplier"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	Status      string    `gorm:"size:50;default:active;index" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidProductStatus reports whether status is a known product status.
func ValidProductStatus(status string) bool {
	switch status {
	case ProductActive, ProductInactive, ProductDiscontinued:
		return true
	}
	return false
}
