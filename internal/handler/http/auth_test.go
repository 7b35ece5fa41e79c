package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eskiden/marketplace/internal/domain"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
)

func TestLogin_OK(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	stored := &domain.User{
		ID:       "u1",
		Username: "bob",
		Password: "20d2fe5e369db54ec7090639a9dc30ec4d608604936239d39e2de07fda09eb0b",
		Role:     domain.RoleCustomer,
	}
	userRepo.On("GetByCredentials", mock.Anything, "bob", stored.Password).Return(stored, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/login", map[string]any{
		"username": "bob",
		"password": "hunter22",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "bob", user["username"])

	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	userRepo.On("GetByCredentials", mock.Anything, "bob", mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)

	rec := doJSON(t, router, http.MethodPost, "/api/login", map[string]any{
		"username": "bob",
		"password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "invalid username or password", resp["error"])
}

func TestLogin_MissingCredentials(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := newTestRouter(new(mockItemRepo), userRepo)

	rec := doJSON(t, router, http.MethodPost, "/api/login", map[string]any{
		"username": "bob",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "GetByCredentials", mock.Anything, mock.Anything, mock.Anything)
}
