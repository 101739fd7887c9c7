package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// List handles GET /api/cart requests.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.List(r.Context(), authContext(r))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.CartResponse{Cart: lines})
}

// Add handles POST /api/cart requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddCartLineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	line, err := h.service.Add(r.Context(), authContext(r), req.Product)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

// Remove handles DELETE /api/cart?productId= requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), authContext(r), r.URL.Query().Get("productId")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product removed from cart"})
}

// SetQuantity handles PATCH /api/cart requests.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req model.CartQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.SetQuantity(r.Context(), authContext(r), req.ProductID, req.Quantity); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Cart updated"})
}
