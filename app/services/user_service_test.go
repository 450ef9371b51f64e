package services

import (
	"testing"

	"github.com/hearthworks/remodel/app/models"
	"github.com/hearthworks/remodel/app/repositories"
	"github.com/hearthworks/remodel/pkg/apperr"
	"github.com/hearthworks/remodel/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(repositories.NewUserRepository(newTestDB(t)))
}

func register(t *testing.T, s *UserService, email string) models.User {
	t.Helper()
	user, err := s.Register(RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     "Jane Mason",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	s := newUserService(t)

	user := register(t, s, "jane@example.com")

	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestRegister_DuplicateEmailIsDomainError(t *testing.T) {
	s := newUserService(t)
	register(t, s, "jane@example.com")

	_, err := s.Register(RegisterInput{
		Email:    "jane@example.com",
		Password: "another1",
		Name:     "Jane Again",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindDomain, apperr.KindOf(err))
}

func TestLogin_Success(t *testing.T) {
	s := newUserService(t)
	register(t, s, "jane@example.com")

	result, err := s.Login(LoginInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

// Login failure is uniform: unknown email, wrong password and inactive
// account all return the same 401 message.
func TestLogin_UniformFailure(t *testing.T) {
	s := newUserService(t)
	user := register(t, s, "jane@example.com")

	_, wrongPassword := s.Login(LoginInput{Email: "jane@example.com", Password: "nope"})
	_, unknownEmail := s.Login(LoginInput{Email: "ghost@example.com", Password: "secret123"})

	_, err := s.SetActive(user.ID, false)
	require.NoError(t, err)
	_, inactive := s.Login(LoginInput{Email: "jane@example.com", Password: "secret123"})

	for _, err := range []error{wrongPassword, unknownEmail, inactive} {
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.Equal(t, invalidCredentials, apperr.Message(err))
	}
}

func TestUpdateUser_PartialMergeAndRehash(t *testing.T) {
	s := newUserService(t)
	user := register(t, s, "jane@example.com")
	oldHash := user.Password

	updated, err := s.Update(user.ID, UpdateUserInput{
		Name:     ptr("Jane M. Mason"),
		Password: ptr("newsecret1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane M. Mason", updated.Name)
	assert.Equal(t, "jane@example.com", updated.Email) // untouched
	assert.NotEqual(t, oldHash, updated.Password)

	_, err = s.Login(LoginInput{Email: "jane@example.com", Password: "newsecret1"})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	s := newUserService(t)
	user := register(t, s, "jane@example.com")

	err := s.ChangePassword(user.ID, ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret1",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = s.ChangePassword(user.ID, ChangePasswordInput{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret1",
	})
	require.NoError(t, err)

	_, err = s.Login(LoginInput{Email: "jane@example.com", Password: "newsecret1"})
	assert.NoError(t, err)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newUserService(t)

	_, err := s.Get(999)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListUsers_Filters(t *testing.T) {
	s := newUserService(t)
	register(t, s, "jane@example.com")
	admin, err := s.Register(RegisterInput{
		Email:    "boss@example.com",
		Password: "secret123",
		Name:     "Boss Stone",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = s.SetActive(admin.ID, false)
	require.NoError(t, err)

	opts := pagination.Options{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: pagination.SortDesc}

	res, err := s.List(repositories.UserFilters{Role: models.RoleAdmin}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)

	active := true
	res, err = s.List(repositories.UserFilters{IsActive: &active}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)

	res, err = s.List(repositories.UserFilters{Search: "STONE"}, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Meta.Total)
}

func TestUserStatistics(t *testing.T) {
	s := newUserService(t)
	register(t, s, "jane@example.com")
	_, err := s.Register(RegisterInput{
		Email:    "boss@example.com",
		Password: "secret123",
		Name:     "Boss Stone",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	stats, err := s.Statistics()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Customers)
	assert.Equal(t, int64(1), stats.Admins)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(0), stats.Inactive)
}
