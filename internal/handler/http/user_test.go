package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eskiden/marketplace/internal/domain"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
)

func TestCreateUser_Created(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"username": "bob",
		"password": "hunter22",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, "customer", body["role"])

	// The record comes back digest included; plaintext never does.
	assert.Len(t, body["password"], 64)
	assert.NotEqual(t, "hunter22", body["password"])

	userRepo.AssertExpectations(t)
}

func TestCreateUser_MissingPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"username": "bob",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"username": "bob",
		"password": "hunter22",
		"role":     "superuser",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers_OK(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	stored := []domain.User{
		{ID: "u1", Username: "bob", Password: "digest-1", Role: "customer", CreatedAt: time.Now().UTC()},
		{ID: "u2", Username: "carol", Password: "digest-2", Role: "admin", CreatedAt: time.Now().UTC()},
	}
	userRepo.On("List", mock.Anything).Return(stored, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0]["username"])
	assert.Equal(t, "digest-1", users[0]["password"])
}

func TestDeleteUser_OK(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	userRepo.On("Delete", mock.Anything, "u1").Return(nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/users/u1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "User deleted successfully", resp["message"])
}

func TestDeleteUser_NotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	userRepo.On("Delete", mock.Anything, "missing").
		Return(apperrors.NotFound("user", "missing"))

	rec := doJSON(t, router, http.MethodDelete, "/api/users/missing", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "user not found", resp["error"])
}
