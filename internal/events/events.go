package events

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Type names an order lifecycle event.
type Type string

const (
	OrderCreated          Type = "order.created"
	OrderPaymentConfirmed Type = "order.payment_confirmed"
	OrderCancelled        Type = "order.cancelled"
	OrderStatusChanged    Type = "order.status_changed"
)

// OrderEvent is published after the change it describes has been committed.
type OrderEvent struct {
	EventID      string            `json:"event_id"`
	Type         Type              `json:"type"`
	OrderID      uuid.UUID         `json:"order_id"`
	UserID       string            `json:"user_id"`
	SellerID     string            `json:"seller_id"`
	ProductID    string            `json:"product_id"`
	TotalAmount  float64           `json:"total_amount"`
	Quantity     int               `json:"quantity"`
	Status       model.OrderStatus `json:"status"`
	PrevStatus   model.OrderStatus `json:"prev_status,omitempty"`
	PaymentClear bool              `json:"payment_clear"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewOrderEvent builds an event of type t from the order's current state.
func NewOrderEvent(t Type, o model.Order) OrderEvent {
	return OrderEvent{
		EventID:      uuid.NewString(),
		Type:         t,
		OrderID:      o.ID,
		UserID:       o.UserID,
		SellerID:     o.SellerID,
		ProductID:    o.ProductID,
		TotalAmount:  o.TotalAmount,
		Quantity:     o.Quantity,
		Status:       o.Status,
		PaymentClear: o.PaymentClear,
		Timestamp:    time.Now().UTC(),
	}
}

// Publisher delivers order events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, events ...OrderEvent) error
	Close() error
}

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a publisher used when no broker is configured.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, events ...OrderEvent) error {
	for _, e := range events {
		p.logger.Info().
			Str("event_id", e.EventID).
			Str("type", string(e.Type)).
			Str("order_id", e.OrderID.String()).
			Str("status", string(e.Status)).
			Msg("order event")
	}
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
