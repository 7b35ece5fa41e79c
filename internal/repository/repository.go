package repository

import (
	"context"

	"github.com/eskiden/marketplace/internal/domain"
)

// ItemRepository defines the interface for item persistence operations.
type ItemRepository interface {
	// Create inserts a new item into the store.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Item, error)

	// List returns all items, no filtering or pagination.
	List(ctx context.Context) ([]domain.Item, error)

	// Delete removes an item from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// UpdateReviews persists a new review sequence and recomputed aggregate
	// rating as a single conditional update: it only succeeds if the stored
	// sequence still equals prev, and returns a conflict error otherwise.
	UpdateReviews(ctx context.Context, id string, reviews []domain.Review, rating float64, prev []domain.Review) error
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// Delete removes a user from the store by their identifier.
	Delete(ctx context.Context, id string) error

	// GetByCredentials retrieves the user whose username and password digest
	// both match exactly.
	GetByCredentials(ctx context.Context, username, passwordDigest string) (*domain.User, error)
}
