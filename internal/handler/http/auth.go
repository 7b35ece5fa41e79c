package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/internal/service"
	"github.com/eskiden/marketplace/pkg/httputil"
	"github.com/eskiden/marketplace/pkg/validator"
)

// AuthHandler handles HTTP requests for authentication endpoints.
type AuthHandler struct {
	service *service.DirectoryService
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication HTTP handler.
func NewAuthHandler(svc *service.DirectoryService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		logger:  logger,
	}
}

// LoginRequest is the JSON request body for a login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse confirms a successful login and echoes the matched account.
type LoginResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    user,
	})
}
