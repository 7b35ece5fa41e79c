package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eskiden/marketplace/internal/service"
	"github.com/eskiden/marketplace/pkg/httputil"
	"github.com/eskiden/marketplace/pkg/validator"
)

// ReviewHandler handles HTTP requests for rating submissions.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitRatingRequest is the JSON request body for submitting a rating.
// Rating carries no required tag: an omitted or zero rating decodes to 0 and
// fails the service's range check, so callers always get the same
// out-of-bounds message. Review emptiness is rechecked there too.
type SubmitRatingRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Rating int    `json:"rating"`
	Review string `json:"review" validate:"required"`
}

// SubmitRating handles POST /api/rate
func (h *ReviewHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.SubmitRatingInput{
		ItemID: req.ItemID,
		UserID: req.UserID,
		Rating: req.Rating,
		Review: req.Review,
	}

	if err := h.service.SubmitRating(r.Context(), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Rating and review submitted successfully")
}
