package models

import (
	"strings"
	"time"
)

// Category groups products. Slug is derived from Name and regenerated on
// every rename.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// ProductCount is populated by list queries; not a column.
	ProductCount int64 `gorm:"-" json:"productCount"`
}

// MakeSlug lowercases name, collapses every run of characters outside
// [a-z0-9] (accented letters included) to a single hyphen, and strips
// leading/trailing hyphens. "Kitchen & Bath!" becomes "kitchen-bath".
func MakeSlug(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
