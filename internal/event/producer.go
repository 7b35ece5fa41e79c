package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eskiden/marketplace/internal/domain"
	pkgkafka "github.com/eskiden/marketplace/pkg/kafka"
)

// Kafka topic constants for marketplace domain events.
const (
	TopicItemCreated     = "marketplace.item.created"
	TopicItemDeleted     = "marketplace.item.deleted"
	TopicUserCreated     = "marketplace.user.created"
	TopicUserDeleted     = "marketplace.user.deleted"
	TopicReviewSubmitted = "marketplace.review.submitted"
)

// Aggregate type constants.
const (
	AggregateTypeItem = "item"
	AggregateTypeUser = "user"
)

// Source identifier for events originating from this service.
const SourceMarketplace = "marketplace"

// ItemCreatedData is the payload for an item.created event.
type ItemCreatedData struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Seller   string  `json:"seller"`
}

// ItemDeletedData is the payload for an item.deleted event.
type ItemDeletedData struct {
	ID string `json:"id"`
}

// UserCreatedData is the payload for a user.created event. The password
// digest never leaves the service, not even on the bus.
type UserCreatedData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserDeletedData is the payload for a user.deleted event.
type UserDeletedData struct {
	ID string `json:"id"`
}

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ItemID          string  `json:"item_id"`
	UserID          string  `json:"user_id"`
	Rating          int     `json:"rating"`
	AggregateRating float64 `json:"aggregate_rating"`
}

// Producer publishes marketplace domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishItemCreated publishes an item.created event.
func (p *Producer) PublishItemCreated(ctx context.Context, item *domain.Item) error {
	data := ItemCreatedData{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		Seller:   item.Seller,
	}

	return p.publish(ctx, TopicItemCreated, item.ID, AggregateTypeItem, data)
}

// PublishItemDeleted publishes an item.deleted event.
func (p *Producer) PublishItemDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicItemDeleted, id, AggregateTypeItem, ItemDeletedData{ID: id})
}

// PublishUserCreated publishes a user.created event.
func (p *Producer) PublishUserCreated(ctx context.Context, user *domain.User) error {
	data := UserCreatedData{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	return p.publish(ctx, TopicUserCreated, user.ID, AggregateTypeUser, data)
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicUserDeleted, id, AggregateTypeUser, UserDeletedData{ID: id})
}

// PublishReviewSubmitted publishes a review.submitted event keyed by item.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, itemID, userID string, rating int, aggregate float64) error {
	data := ReviewSubmittedData{
		ItemID:          itemID,
		UserID:          userID,
		Rating:          rating,
		AggregateRating: aggregate,
	}

	return p.publish(ctx, TopicReviewSubmitted, itemID, AggregateTypeItem, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceMarketplace, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
