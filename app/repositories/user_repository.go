// Package repositories contains the GORM data access layer. Every
// repository receives its *gorm.DB at construction so tests can swap in an
// in-memory SQLite handle.
package repositories

import (
	"strings"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/pkg/pagination"
	"gorm.io/gorm"
)

// UserFilters is the typed filter bag for user list queries.
type UserFilters struct {
	Search   string
	Role     string
	IsActive *bool
}

// userSortColumns maps JSON sort keys to database columns.
var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
	"role":      "role",
}

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) scope(f UserFilters) *gorm.DB {
	q := r.db.Model(&models.User{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	return q
}

// List returns one page of users matching the filters plus the total count.
func (r *UserRepository) List(f UserFilters, opts pagination.Options) ([]models.User, int64, error) {
	q := r.scope(f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := q.Order(opts.OrderClause(userSortColumns)).
		Offset(opts.Skip()).
		Limit(opts.Limit).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByRole returns the number of users per role.
func (r *UserRepository) CountByRole() (map[string]int64, error) {
	type row struct {
		Role  string
		Count int64
	}
	var rows []row
	err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Role] = rw.Count
	}
	return counts, nil
}

// CountActive returns active and inactive user counts.
func (r *UserRepository) CountActive() (active, inactive int64, err error) {
	if err = r.db.Model(&models.User{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return
	}
	err = r.db.Model(&models.User{}).Where("is_active = ?", false).Count(&inactive).Error
	return
}
