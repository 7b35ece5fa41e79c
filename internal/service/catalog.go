package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/internal/event"
	"github.com/eskiden/marketplace/internal/repository"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
)

// CreateItemInput holds the parameters for creating a catalog item.
// Attribute carries the raw value for the category-specific attribute; it is
// ignored for categories that carry none.
type CreateItemInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Seller      string
	Image       string
	Attribute   any
}

// CatalogService implements the business logic for item operations.
type CatalogService struct {
	repo     repository.ItemRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ItemRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateItem validates the input, constructs the item with a zero aggregate
// rating, an empty review sequence and the category-tagged attribute, and
// persists it.
func (s *CatalogService) CreateItem(ctx context.Context, input *CreateItemInput) (*domain.Item, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}
	if input.Description == "" {
		return nil, apperrors.InvalidInput("description is required")
	}
	if input.Price == 0 {
		return nil, apperrors.InvalidInput("price is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Seller == "" {
		return nil, apperrors.InvalidInput("seller is required")
	}
	if input.Image == "" {
		return nil, apperrors.InvalidInput("image is required")
	}

	item := &domain.Item{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Seller:      input.Seller,
		Image:       input.Image,
		Rating:      0,
		Reviews:     []domain.Review{},
		Attribute:   domain.NewAttribute(input.Category, input.Attribute),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	// Publish item created event (non-blocking on failure).
	if err := s.producer.PublishItemCreated(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish item.created event",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "item created",
		slog.String("item_id", item.ID),
		slog.String("category", item.Category),
		slog.String("seller", item.Seller),
	)

	return item, nil
}

// ListItems returns all catalog items.
func (s *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// DeleteItem removes an item and its reviews by id.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.producer.PublishItemDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish item.deleted event",
			slog.String("item_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "item deleted",
		slog.String("item_id", id),
	)

	return nil
}
