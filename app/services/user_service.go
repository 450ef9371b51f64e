// Package services holds the business logic between controllers and
// repositories. Services return apperr-classified errors; controllers pass
// them to response.FromError unchanged.
package services

import (
	"errors"
	"time"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/auth"
	"github.com/hearthworks/remodel/pkg/cache"
	"github.com/hearthworks/remodel/pkg/pagination"
	"gorm.io/gorm"
)

const userStatsCacheKey = "stats:users"

// invalidCredentials is the single message for every login failure cause,
// so callers cannot probe which accounts exist.
const invalidCredentials = "Invalid email or password"

// RegisterInput is the payload for POST /users/register.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"nullable,max=50"`
	Address  string `json:"address"`
	Role     string `json:"role" validate:"nullable,in=customer,contractor,admin"`
}

// UpdateUserInput is the partial-update payload for PUT /users/:id.
// Nil fields keep the stored value.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"nullable,email"`
	Password *string `json:"password" validate:"nullable,min=6"`
	Name     *string `json:"name" validate:"nullable,min=2,max=255"`
	Phone    *string `json:"phone" validate:"nullable,max=50"`
	Address  *string `json:"address"`
	Role     *string `json:"role" validate:"nullable,in=customer,contractor,admin"`
	IsActive *bool   `json:"isActive"`
}

// LoginInput is the payload for POST /users/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput is the payload for PATCH /users/:id/change-password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// LoginResult carries the authenticated user plus issued tokens.
type LoginResult struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// UserStatistics is the aggregate served by GET /users/statistics.
type UserStatistics struct {
	Total       int64 `json:"total"`
	Customers   int64 `json:"customers"`
	Contractors int64 `json:"contractors"`
	Admins      int64 `json:"admins"`
	Active      int64 `json:"active"`
	Inactive    int64 `json:"inactive"`
}

// UserService implements account management and authentication.
type UserService struct {
	repo *repositories.UserRepository
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(in RegisterInput) (models.User, error) {
	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return models.User{}, apperr.Domain("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, apperr.Internal("look up email", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, apperr.Internal("hash password", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Email:    in.Email,
		Password: hash,
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.Create(&user); err != nil {
		return models.User{}, apperr.Internal("create user", err)
	}

	cache.Del(userStatsCacheKey) //nolint:errcheck
	return user, nil
}

// Login authenticates by email and password. Unknown email, wrong password
// and inactive account all fail with the same message.
func (s *UserService) Login(in LoginInput) (LoginResult, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, apperr.Unauthorized(invalidCredentials)
		}
		return LoginResult{}, apperr.Internal("look up user", err)
	}

	if !user.IsActive || !auth.CheckPassword(user.Password, in.Password) {
		return LoginResult{}, apperr.Unauthorized(invalidCredentials)
	}

	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, apperr.Internal("issue access token", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, apperr.Internal("issue refresh token", err)
	}

	return LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// List returns a page of users.
func (s *UserService) List(f repositories.UserFilters, opts pagination.Options) (pagination.Result, error) {
	users, total, err := s.repo.List(f, opts)
	if err != nil {
		return pagination.Result{}, apperr.Internal("list users", err)
	}
	return pagination.NewResult(users, total, opts.Page, opts.Limit), nil
}

// Get fetches one user by id.
func (s *UserService) Get(id uint) (models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User")
		}
		return models.User{}, apperr.Internal("find user", err)
	}
	return user, nil
}

// GetByEmail fetches one user by email address.
func (s *UserService) GetByEmail(email string) (models.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User")
		}
		return models.User{}, apperr.Internal("find user", err)
	}
	return user, nil
}

// Update merges the non-nil fields of in over the stored user. A new
// password is re-hashed before storage.
func (s *UserService) Update(id uint, in UpdateUserInput) (models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return models.User{}, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.repo.FindByEmail(*in.Email); err == nil {
			return models.User{}, apperr.Domain("Email is already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.Internal("look up email", err)
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return models.User{}, apperr.Internal("hash password", err)
		}
		user.Password = hash
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.repo.Update(&user); err != nil {
		return models.User{}, apperr.Internal("update user", err)
	}
	cache.Del(userStatsCacheKey) //nolint:errcheck
	return user, nil
}

// SetActive flips the account's active flag.
func (s *UserService) SetActive(id uint, active bool) (models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return models.User{}, err
	}

	user.IsActive = active
	if err := s.repo.Update(&user); err != nil {
		return models.User{}, apperr.Internal("update user status", err)
	}
	cache.Del(userStatsCacheKey) //nolint:errcheck
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
// Unlike login, the caller is already identified by id, so the messages
// distinguish the failure causes.
func (s *UserService) ChangePassword(id uint, in ChangePasswordInput) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, in.CurrentPassword) {
		return apperr.Validation("Current password is incorrect")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return apperr.Internal("hash password", err)
	}
	user.Password = hash

	if err := s.repo.Update(&user); err != nil {
		return apperr.Internal("update password", err)
	}
	return nil
}

// Delete removes the account.
func (s *UserService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User")
		}
		return apperr.Internal("delete user", err)
	}
	cache.Del(userStatsCacheKey) //nolint:errcheck
	return nil
}

// Statistics aggregates user counts, cached briefly in Redis.
func (s *UserService) Statistics() (UserStatistics, error) {
	var stats UserStatistics
	if cache.Get(userStatsCacheKey, &stats) {
		return stats, nil
	}

	roles, err := s.repo.CountByRole()
	if err != nil {
		return stats, apperr.Internal("count users by role", err)
	}
	stats.Customers = roles[models.RoleCustomer]
	stats.Contractors = roles[models.RoleContractor]
	stats.Admins = roles[models.RoleAdmin]
	for _, n := range roles {
		stats.Total += n
	}

	stats.Active, stats.Inactive, err = s.repo.CountActive()
	if err != nil {
		return stats, apperr.Internal("count active users", err)
	}

	cache.Set(userStatsCacheKey, stats, 30*time.Second) //nolint:errcheck
	return stats, nil
}
