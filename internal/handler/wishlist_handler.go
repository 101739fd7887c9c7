package handler

import (
	"net/http"

	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// wishlistRequest is the payload for adding to the wishlist.
type wishlistRequest struct {
	ProductID string `json:"productId"`
}

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), authContext(r))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Add(r.Context(), authContext(r), req.ProductID); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Product added to wishlist"})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), authContext(r), r.URL.Query().Get("productId")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product removed from wishlist"})
}
