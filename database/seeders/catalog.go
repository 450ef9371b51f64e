package seeders

import (
	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/pkg/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

// SeedAdminUser creates the initial admin account if none exists.
func SeedAdminUser(db *gorm.DB) error {
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    "admin@remodel.local",
		Password: hash,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error
}

// SeedCategories inserts the base remodeling categories.
func SeedCategories(db *gorm.DB) error {
	names := []struct {
		name, description string
	}{
		{"Cabinets", "Base, wall and tall kitchen cabinets"},
		{"Countertops", "Stone, quartz and laminate countertops"},
		{"Sinks and Faucets", "Kitchen sinks, faucets and fittings"},
		{"Appliances", "Ranges, hoods, dishwashers and refrigerators"},
		{"Hardware", "Handles, knobs, hinges and drawer slides"},
	}

	for _, c := range names {
		category := models.Category{
			Name:        c.name,
			Slug:        models.MakeSlug(c.name),
			Description: c.description,
			IsActive:    true,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a handful of demo products into the first category.
func SeedProducts(db *gorm.DB) error {
	var category models.Category
	if err := db.Where("slug = ?", "cabinets").First(&category).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Name: "Shaker Base Cabinet 24in", SKU: "CAB-SHK-B24", CategoryID: &category.ID, Price: 249.99, Stock: 40, Brand: "Hearth", Supplier: "Hearth Supply Co", Status: models.ProductActive},
		{Name: "Shaker Wall Cabinet 30in", SKU: "CAB-SHK-W30", CategoryID: &category.ID, Price: 189.99, Stock: 35, Brand: "Hearth", Supplier: "Hearth Supply Co", Status: models.ProductActive},
		{Name: "Pantry Cabinet 84in", SKU: "CAB-PAN-84", CategoryID: &category.ID, Price: 599.00, Stock: 12, Brand: "Hearth", Supplier: "Hearth Supply Co", Status: models.ProductActive},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}
