package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusCompleted OrderStatus = "Completed"
	StatusCancel    OrderStatus = "Cancel"
)

// statusTransitions lists the statuses reachable from each status.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusShipped, StatusCancel},
	StatusShipped:   {StatusCompleted, StatusCancel},
	StatusCompleted: {},
	StatusCancel:    {},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(statusTransitions[s]) == 0
}

// Order is the durable record created from one cart line at checkout.
type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	UserID       string      `json:"userId" db:"user_id"`
	SellerID     string      `json:"sellerId" db:"seller_id"`
	ProductID    string      `json:"productId" db:"product_id"`
	TotalAmount  float64     `json:"totalAmount" db:"total_amount"`
	Quantity     int         `json:"quantity" db:"quantity"`
	Status       OrderStatus `json:"status" db:"status"`
	PaymentClear bool        `json:"paymentClear" db:"payment_clear"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

// CheckoutRequest represents the request payload for creating orders from the cart.
type CheckoutRequest struct {
	Products []CheckoutLine `json:"products"`
}

// CheckoutLine is a single cart entry being checked out. Price is what the
// client displayed; billing always uses the catalogue price.
type CheckoutLine struct {
	ProductID string   `json:"productId"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
}

// CheckoutResponse lists the orders created by a checkout.
type CheckoutResponse struct {
	Orders []Order `json:"orders"`
}

// PaymentConfirmationRequest is sent once the external payment capture finished.
type PaymentConfirmationRequest struct {
	OrderIDs     []string `json:"orderIdsArray"`
	PaymentClear *bool    `json:"paymentClear"`
}

// PaymentConfirmationResult reports how much of a confirmation batch applied.
type PaymentConfirmationResult struct {
	Requested          int      `json:"requested"`
	Updated            int      `json:"updated"`
	RemovedFromCart    []string `json:"removedFromCart"`
	PartiallyUnmatched bool     `json:"partiallyUnmatched"`
}

// OrdersResponse wraps order listings.
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// StatusUpdateRequest is the seller payload for moving an order along.
type StatusUpdateRequest struct {
	OrderID string      `json:"orderId"`
	Status  OrderStatus `json:"status"`
}

// DashboardStats summarises a seller's activity.
type DashboardStats struct {
	TotalSales     float64 `json:"totalSales"`
	TotalOrders    int     `json:"totalOrders"`
	InventoryCount int     `json:"inventoryCount"`
}
