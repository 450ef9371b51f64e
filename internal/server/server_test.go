package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hearthworks/remodel/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer mounts the real route table and middleware stack over an
// in-memory database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	srv := httptest.NewServer(NewRouter(db).Handler())
	t.Cleanup(srv.Close)
	return srv
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	} `json:"meta"`
	Data   json.RawMessage   `json:"data"`
	Errors map[string]string `json:"errors"`
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "OK", env.Message)
}

func TestRegisterLoginAndMe(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/register", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
		"name":     "Jane Mason",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	// The password hash never appears in a response.
	assert.NotContains(t, string(env.Data), "password")

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	// /users/me requires the token.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/users/me", nil)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)

	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	resp3, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}

func TestLogin_BadCredentialsIs401(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestValidationFailureShape(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/register", map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
	assert.Contains(t, env.Errors, "name")
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", map[string]interface{}{
		"customerName":  "Jane Mason",
		"customerEmail": "jane@example.com",
		"items": []map[string]interface{}{
			{"productName": "Base Cabinet", "quantity": 2, "unitPrice": 10},
			{"productName": "Handle", "quantity": 1, "unitPrice": 5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var order struct {
		ID          uint    `json:"id"`
		FinalAmount float64 `json:"finalAmount"`
		Status      string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, 25.0, order.FinalAmount)
	assert.Equal(t, "pending", order.Status)

	// Complete it, then verify the state machine rejects further changes.
	url := fmt.Sprintf("%s/api/v1/orders/%d/status", srv.URL, order.ID)
	resp, _ = doJSON(t, http.MethodPatch, url, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doJSON(t, http.MethodPatch, url, map[string]string{"status": "processing"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestListCategories_DefaultsToActive(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/categories", map[string]interface{}{
		"name": "Cabinets",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/categories", map[string]interface{}{
		"name":     "Retired Lines",
		"isActive": false,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Plain listing hides the inactive category.
	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.NotContains(t, string(env.Data), "Retired Lines")

	// An explicit isActive=false flips the filter instead of widening it.
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/categories?isActive=false", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.Contains(t, string(env.Data), "Retired Lines")
}

func TestListOrders_InvalidDateIs400(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders?startDate=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestListOrders_PaginationMeta(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", map[string]interface{}{
			"customerName":  "Jane Mason",
			"customerEmail": "jane@example.com",
			"items": []map[string]interface{}{
				{"productName": "Handle", "quantity": 1, "unitPrice": 5},
			},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, int64(2), env.Meta.TotalPages)
	assert.Equal(t, 2, env.Meta.Limit)

	// Junk paging values fall back to defaults.
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders?page=abc&limit=-4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 10, env.Meta.Limit)
}
