package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/internal/event"
	"github.com/eskiden/marketplace/internal/repository"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
)

// submitAttempts bounds the conflict-retry loop. Contention on a single item
// is rare; three reads are plenty.
const submitAttempts = 3

// SubmitRatingInput holds the parameters for a rating submission.
type SubmitRatingInput struct {
	ItemID string
	UserID string
	Rating int
	Review string
}

// ReviewService applies rating submissions against an item's review sequence
// and keeps the aggregate rating consistent with it.
type ReviewService struct {
	items    repository.ItemRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(items repository.ItemRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		items:    items,
		producer: producer,
		logger:   logger,
	}
}

// SubmitRating validates the submission and applies the insert-or-replace
// rule: a user's first review of an item is appended, a repeat submission
// overwrites their prior review in place. The aggregate rating is recomputed
// from the complete updated sequence and persisted together with it.
//
// The read-modify-write runs under a conditional update: if another
// submission landed on the same item between read and write, the write is
// rejected and the whole cycle retries from a fresh read.
func (s *ReviewService) SubmitRating(ctx context.Context, input *SubmitRatingInput) error {
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	if strings.TrimSpace(input.Review) == "" {
		return apperrors.InvalidInput("review cannot be empty")
	}
	if input.UserID == "" {
		return apperrors.InvalidInput("user_id is required")
	}

	var lastErr error
	for attempt := 0; attempt < submitAttempts; attempt++ {
		item, err := s.items.GetByID(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NotFound("item", input.ItemID)
			}
			return fmt.Errorf("get item for rating: %w", err)
		}

		review := domain.Review{
			UserID: input.UserID,
			Rating: input.Rating,
			Review: input.Review,
			Date:   time.Now().UTC(),
		}

		updated, replaced := domain.UpsertReview(item.Reviews, review)
		rating := domain.AverageRating(updated)

		err = s.items.UpdateReviews(ctx, item.ID, updated, rating, item.Reviews)
		if err == nil {
			if err := s.producer.PublishReviewSubmitted(ctx, item.ID, input.UserID, input.Rating, rating); err != nil {
				s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
					slog.String("item_id", item.ID),
					slog.String("error", err.Error()),
				)
			}

			s.logger.InfoContext(ctx, "rating submitted",
				slog.String("item_id", item.ID),
				slog.String("user_id", input.UserID),
				slog.Int("rating", input.Rating),
				slog.Bool("replaced", replaced),
				slog.Float64("aggregate_rating", rating),
			)

			return nil
		}

		if !errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("update item reviews: %w", err)
		}

		// Another submission changed the sequence since our read; re-read
		// and re-apply.
		lastErr = err
		s.logger.WarnContext(ctx, "review update conflict, retrying",
			slog.String("item_id", input.ItemID),
			slog.Int("attempt", attempt+1),
		)
	}

	return apperrors.Internal(fmt.Errorf("submit rating for item %s: %w", input.ItemID, lastErr))
}
