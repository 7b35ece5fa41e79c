package domain

import (
	"time"
)

// Rating bounds accepted for a review submission, inclusive.
const (
	MinRating = 1
	MaxRating = 10
)

// Review represents a rating and review text submitted by a user for an item.
// An item holds at most one review per user.
type Review struct {
	UserID string    `json:"userId"`
	Rating int       `json:"rating"`
	Review string    `json:"review"`
	Date   time.Time `json:"date"`
}

// UpsertReview applies the insert-or-replace rule to a review sequence: if a
// review by the same user exists, it is overwritten in place (rating, text,
// date; position and identity unchanged), otherwise the review is appended.
// It returns the updated sequence and whether an existing review was replaced.
// The input slice is not mutated.
func UpsertReview(reviews []Review, r Review) ([]Review, bool) {
	updated := make([]Review, len(reviews))
	copy(updated, reviews)

	for i := range updated {
		if updated[i].UserID == r.UserID {
			updated[i].Rating = r.Rating
			updated[i].Review = r.Review
			updated[i].Date = r.Date
			return updated, true
		}
	}

	return append(updated, r), false
}

// AverageRating returns the arithmetic mean over the full review sequence,
// or 0 when the sequence is empty. It is always recomputed from the complete
// sequence rather than kept as a running average.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	return float64(sum) / float64(len(reviews))
}
