// Package routes builds the HTTP route table for the API.
package routes

import (
	"net/http"
	"time"

	"github.com/hearthworks/remodel/app/controllers"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/app/services"
	"github.com/hearthworks/remodel/config"
	"github.com/hearthworks/remodel/pkg/metrics"
	"github.com/hearthworks/remodel/pkg/middleware"
	"github.com/hearthworks/remodel/pkg/response"
	"github.com/hearthworks/remodel/pkg/router"
	"gorm.io/gorm"
)

// RegisterAPI wires repositories, services and controllers onto the router
// under the configured API prefix.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	userCtl := controllers.NewUserController(services.NewUserService(userRepo))
	categoryCtl := controllers.NewCategoryController(services.NewCategoryService(categoryRepo, productRepo))
	productCtl := controllers.NewProductController(services.NewProductService(productRepo, categoryRepo))
	orderCtl := controllers.NewOrderController(services.NewOrderService(orderRepo))

	r.Get("/", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, "OK", nil)
	})
	r.HandleFunc("/metrics", metrics.Handler())

	api := r.Group(config.APIPrefix())

	loginLimit := middleware.RateLimit(10, time.Minute)

	users := api.Group("/users")
	users.Get("", "users.list", userCtl.List)
	users.Get("/statistics", "users.statistics", userCtl.Statistics)
	users.Get("/me", "users.me", userCtl.Me, middleware.Auth)
	users.Get("/email/{email}", "users.by_email", userCtl.GetByEmail)
	users.Get("/{id}", "users.get", userCtl.Get)
	users.Post("/register", "users.register", userCtl.Register)
	users.Post("/login", "users.login", userCtl.Login, loginLimit)
	users.Put("/{id}", "users.update", userCtl.Update)
	users.Patch("/{id}/status", "users.status", userCtl.SetStatus)
	users.Patch("/{id}/change-password", "users.change_password", userCtl.ChangePassword)
	users.Delete("/{id}", "users.delete", userCtl.Delete)

	categories := api.Group("/categories")
	categories.Get("", "categories.list", categoryCtl.List)
	categories.Get("/{slug}", "categories.get", categoryCtl.Get)
	categories.Get("/{slug}/products", "categories.products", categoryCtl.Products)
	categories.Post("", "categories.create", categoryCtl.Create)
	categories.Post("/{id}/image", "categories.image", categoryCtl.UploadImage)
	categories.Put("/{id}", "categories.update", categoryCtl.Update)
	categories.Delete("/{id}", "categories.delete", categoryCtl.Delete)

	products := api.Group("/products")
	products.Get("", "products.list", productCtl.List)
	products.Get("/{id}", "products.get", productCtl.Get)
	products.Post("", "products.create", productCtl.Create)
	products.Post("/search", "products.search", productCtl.Search)
	products.Post("/bulk-upload", "products.bulk_upload", productCtl.BulkUpload)
	products.Post("/{id}/image", "products.image", productCtl.UploadImage)
	products.Put("/{id}", "products.update", productCtl.Update)
	products.Patch("/{id}/status", "products.status", productCtl.SetStatus)
	products.Delete("/{id}", "products.delete", productCtl.Delete)

	orders := api.Group("/orders")
	orders.Get("", "orders.list", orderCtl.List)
	orders.Get("/statistics", "orders.statistics", orderCtl.Statistics)
	orders.Get("/customer/{email}", "orders.by_customer", orderCtl.ListByCustomer)
	orders.Get("/order-number/{orderNumber}", "orders.by_number", orderCtl.GetByOrderNumber)
	orders.Get("/{id}", "orders.get", orderCtl.Get)
	orders.Post("", "orders.create", orderCtl.Create)
	orders.Put("/{id}", "orders.update", orderCtl.Update)
	orders.Patch("/{id}/status", "orders.status", orderCtl.SetStatus)
	orders.Patch("/{id}/payment", "orders.payment", orderCtl.SetPayment)
	orders.Delete("/{id}", "orders.delete", orderCtl.Delete)
}
