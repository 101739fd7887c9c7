package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	orders, err := h.service.Checkout(r.Context(), authContext(r), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, model.CheckoutResponse{Orders: orders})
}

// ConfirmPayment handles PUT /api/orders requests.
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentConfirmationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		// A non-boolean paymentClear fails decoding as well
		writeError(w, model.Errorf(model.ErrInvalidInput, "orderIdsArray must be a list of ids and paymentClear a boolean"), h.logger)
		return
	}

	result, err := h.service.ConfirmPayment(r.Context(), authContext(r), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context(), authContext(r))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.OrdersResponse{Orders: orders})
}

// Cancel handles DELETE /api/orders?orderId= requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Cancel(r.Context(), authContext(r), r.URL.Query().Get("orderId")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Order cancelled"})
}
