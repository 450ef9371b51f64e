package repositories

import (
	"strings"
	"time"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/pkg/pagination"
	"gorm.io/gorm"
)

// OrderFilters is the typed filter bag for order list queries. Date bounds
// are inclusive on order_date.
type OrderFilters struct {
	Search        string
	Status        string
	PaymentStatus string
	CustomerEmail string
	StartDate     *time.Time
	EndDate       *time.Time
}

var orderSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"orderNumber": "order_number",
	"orderDate":   "order_date",
	"totalAmount": "total_amount",
	"finalAmount": "final_amount",
	"status":      "status",
}

// OrderStatistics is the aggregate view served by the statistics endpoint.
type OrderStatistics struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Processing     int64   `json:"processing"`
	Completed      int64   `json:"completed"`
	Cancelled      int64   `json:"cancelled"`
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingRevenue float64 `json:"pendingRevenue"`
}

// OrderRepository handles database operations for Order and its items.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) scope(f OrderFilters) *gorm.DB {
	q := r.db.Model(&models.Order{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(customer_phone) LIKE ?",
			like, like, like, like,
		)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.CustomerEmail != "" {
		q = q.Where("customer_email = ?", f.CustomerEmail)
	}
	if f.StartDate != nil {
		q = q.Where("order_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("order_date <= ?", *f.EndDate)
	}

	return q
}

// List returns one page of orders matching the filters plus the total count.
func (r *OrderRepository) List(f OrderFilters, opts pagination.Options) ([]models.Order, int64, error) {
	q := r.scope(f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := q.Preload("Items").
		Order(opts.OrderClause(orderSortColumns)).
		Offset(opts.Skip()).
		Limit(opts.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	return order, err
}

func (r *OrderRepository) FindByOrderNumber(orderNumber string) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	return order, err
}

func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) Update(order *models.Order) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: false}).Save(order).Error
}

// ReplaceItems deletes every item on the order and recreates the given
// set, updating the order's totals in the same transaction.
func (r *OrderRepository) ReplaceItems(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"total_amount": order.TotalAmount,
			"discount":     order.Discount,
			"tax":          order.Tax,
			"final_amount": order.FinalAmount,
		}).Error
	})
}

func (r *OrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Statistics aggregates order counts per status plus revenue figures.
// Total revenue sums finalAmount over completed+paid orders; pending
// revenue sums finalAmount over pending and processing orders.
func (r *OrderRepository) Statistics() (OrderStatistics, error) {
	var stats OrderStatistics

	if err := r.db.Model(&models.Order{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return stats, err
	}
	for _, rw := range rows {
		switch rw.Status {
		case models.OrderPending:
			stats.Pending = rw.Count
		case models.OrderProcessing:
			stats.Processing = rw.Count
		case models.OrderCompleted:
			stats.Completed = rw.Count
		case models.OrderCancelled:
			stats.Cancelled = rw.Count
		}
	}

	if err := r.db.Model(&models.Order{}).
		Where("status = ? AND payment_status = ?", models.OrderCompleted, models.PaymentPaid).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return stats, err
	}

	err := r.db.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderPending, models.OrderProcessing}).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&stats.PendingRevenue).Error
	return stats, err
}
