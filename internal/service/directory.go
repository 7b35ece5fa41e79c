package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/internal/event"
	"github.com/eskiden/marketplace/internal/repository"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
)

// DirectoryService implements the business logic for account operations.
//
// Credentials are stored as a deterministic, unsalted sha256 hex digest and
// authentication is a digest-equality lookup. This matches the storefront
// client's expectations and is a documented weakness, not an invitation to
// copy: see the design notes before reusing this scheme elsewhere.
type DirectoryService struct {
	repo     repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewDirectoryService creates a new user directory service.
func NewDirectoryService(repo repository.UserRepository, producer *event.Producer, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateUser hashes the password and persists the account. The role defaults
// to customer when omitted. The returned record includes the digest.
func (s *DirectoryService) CreateUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" {
		return nil, apperrors.InvalidInput("username is required")
	}
	if password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}
	if role == "" {
		role = domain.RoleCustomer
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  hashPassword(password),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserCreated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.created event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)

	return user, nil
}

// ListUsers returns all accounts.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account by id.
func (s *DirectoryService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.producer.PublishUserDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.deleted event",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.String("user_id", id),
	)

	return nil
}

// Authenticate computes the digest of the supplied password and looks up a
// user whose username and stored digest both match. Any mismatch fails the
// same way; a username hit with a wrong password is indistinguishable from an
// unknown username.
func (s *DirectoryService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	user, err := s.repo.GetByCredentials(ctx, username, hashPassword(password))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("authenticate user: %w", err)
	}

	s.logger.InfoContext(ctx, "user authenticated",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// hashPassword returns the sha256 hex digest of the given password.
func hashPassword(password string) string {
	h := sha256.Sum256([]byte(password))
	return hex.EncodeToString(h[:])
}
