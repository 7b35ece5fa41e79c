package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/internal/service"
	"github.com/eskiden/marketplace/pkg/httputil"
	"github.com/eskiden/marketplace/pkg/validator"
)

// ItemHandler handles HTTP requests for catalog item endpoints.
type ItemHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewItemHandler creates a new item HTTP handler.
func NewItemHandler(svc *service.CatalogService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateItemRequest is the JSON request body for creating an item. The
// category-specific attribute arrives under its own key; exactly one of the
// attribute fields is meaningful depending on the category, the rest are
// ignored.
type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Seller      string  `json:"seller" validate:"required"`
	Image       string  `json:"image" validate:"required"`

	Age         any `json:"age,omitempty"`
	Material    any `json:"material,omitempty"`
	BatteryLife any `json:"batteryLife,omitempty"`
	Size        any `json:"size,omitempty"`
	Author      any `json:"author,omitempty"`
}

// attributeValue picks the request field that carries the attribute for the
// given category. Categories outside the tagged set return nil.
func (req *CreateItemRequest) attributeValue() any {
	switch req.Category {
	case domain.CategoryVinyls:
		return req.Age
	case domain.CategoryFurniture:
		return req.Material
	case domain.CategoryWatches:
		return req.BatteryLife
	case domain.CategoryShoes:
		return req.Size
	case domain.CategoryBooks:
		return req.Author
	default:
		return nil
	}
}

// CreateItem handles POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Seller:      req.Seller,
		Image:       req.Image,
		Attribute:   req.attributeValue(),
	}

	item, err := h.service.CreateItem(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, item)
}

// ListItems handles GET /api/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, items)
}

// DeleteItem handles DELETE /api/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "item id is required"})
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Item deleted successfully")
}
