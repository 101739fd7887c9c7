package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Checkout creates one Pending order per line. Seller and price come from each
// line's own catalogue product; the client price is ignored for billing.
func (s *orderService) Checkout(ctx context.Context, ac model.AuthContext, req *model.CheckoutRequest) ([]model.Order, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	if err := s.validateCheckout(req); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(req.Products))
	for i, line := range req.Products {
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(productIDs)).Msg("failed to load checkout products")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	catalog := make(map[string]model.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	now := time.Now()
	orders := make([]model.Order, len(req.Products))
	for i, line := range req.Products {
		product, ok := catalog[line.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", line.ProductID).Msg("checkout product not found")
			return nil, model.Errorf(model.ErrProductNotFound, "Product %s not found", line.ProductID)
		}

		orders[i] = model.Order{
			ID:          uuid.New(),
			UserID:      ac.UserID,
			SellerID:    product.SellerID,
			ProductID:   product.ID,
			TotalAmount: lineTotal(product.Price, *line.Quantity),
			Quantity:    *line.Quantity,
			Status:      model.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	for _, o := range orders {
		var exists bool
		exists, err = s.orderRepo.ExistsForUserProduct(ctx, tx, ac.UserID, o.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to create orders: %w", err)
		}
		if exists {
			s.logger.Info().
				Str("user_id", ac.UserID).
				Str("product_id", o.ProductID).
				Msg("order for product already exists")
			err = model.Errorf(model.ErrDuplicateOrder, "Order for product %q already exists", catalog[o.ProductID].Name)
			return nil, err
		}
	}

	if err = s.orderRepo.CreateOrders(ctx, tx, orders); err != nil {
		if errors.Is(err, model.ErrDuplicateOrder) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", ac.UserID).Msg("failed to commit checkout")
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}

	s.logger.Info().
		Str("user_id", ac.UserID).
		Int("order_count", len(orders)).
		Msg("checkout completed")

	evts := make([]events.OrderEvent, len(orders))
	for i, o := range orders {
		evts[i] = events.NewOrderEvent(events.OrderCreated, o)
	}
	publish(ctx, s.publisher, s.logger, evts...)

	return orders, nil
}

// ConfirmPayment applies a payment outcome to the caller's orders. When the
// payment cleared, the products of the confirmed orders leave the cart in the
// same transaction.
func (s *orderService) ConfirmPayment(ctx context.Context, ac model.AuthContext, req *model.PaymentConfirmationRequest) (*model.PaymentConfirmationResult, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	if req == nil || req.PaymentClear == nil || len(req.OrderIDs) == 0 {
		return nil, model.Errorf(model.ErrInvalidInput, "orderIdsArray must be a non-empty list and paymentClear a boolean")
	}

	ids, err := parseOrderIDs(req.OrderIDs)
	if err != nil {
		return nil, err
	}
	paid := *req.PaymentClear

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	defer func() {
		if err != nil {
			s.rollback(ctx, tx)
		}
	}()

	var orders []model.Order
	orders, err = s.orderRepo.MarkPaymentClear(ctx, tx, ac.UserID, ids, paid)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	if len(orders) == 0 {
		s.logger.Info().
			Str("user_id", ac.UserID).
			Int("requested", len(ids)).
			Msg("payment confirmation matched no orders")
		err = model.ErrNothingUpdated
		return nil, err
	}

	result := &model.PaymentConfirmationResult{
		Requested:          len(ids),
		Updated:            len(orders),
		RemovedFromCart:    []string{},
		PartiallyUnmatched: len(orders) < len(ids),
	}

	if paid {
		productIDs := make([]string, len(orders))
		for i, o := range orders {
			productIDs[i] = o.ProductID
		}
		if _, err = s.cartRepo.RemoveProducts(ctx, tx, ac.UserID, productIDs); err != nil {
			return nil, fmt.Errorf("failed to clean up cart: %w", err)
		}
		result.RemovedFromCart = productIDs
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", ac.UserID).Msg("failed to commit payment confirmation")
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	s.logger.Info().
		Str("user_id", ac.UserID).
		Int("requested", result.Requested).
		Int("updated", result.Updated).
		Bool("payment_clear", paid).
		Msg("payment confirmation applied")

	if paid {
		evts := make([]events.OrderEvent, len(orders))
		for i, o := range orders {
			evts[i] = events.NewOrderEvent(events.OrderPaymentConfirmed, o)
		}
		publish(ctx, s.publisher, s.logger, evts...)
	}

	return result, nil
}

func (s *orderService) List(ctx context.Context, ac model.AuthContext) ([]model.Order, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByUser(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// Cancel deletes the caller's order while it is Pending. Absent orders and
// orders of other users are reported the same way.
func (s *orderService) Cancel(ctx context.Context, ac model.AuthContext, orderID string) (*model.Order, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	if orderID == "" {
		return nil, model.Errorf(model.ErrInvalidInput, "orderId is required")
	}
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, model.ErrNotFoundOrForbidden
	}

	order, err := s.orderRepo.DeletePending(ctx, ac.UserID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	if order == nil {
		existing, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to cancel order: %w", err)
		}
		if existing != nil && existing.UserID == ac.UserID {
			return nil, model.Errorf(model.ErrNotCancellable, "Order is %s and can no longer be cancelled", existing.Status)
		}
		return nil, model.ErrNotFoundOrForbidden
	}

	s.logger.Info().
		Str("user_id", ac.UserID).
		Str("order_id", order.ID.String()).
		Msg("order cancelled")

	evt := events.NewOrderEvent(events.OrderCancelled, *order)
	evt.PrevStatus = order.Status
	evt.Status = model.StatusCancel
	publish(ctx, s.publisher, s.logger, evt)

	return order, nil
}

func (s *orderService) validateCheckout(req *model.CheckoutRequest) error {
	if req == nil || len(req.Products) == 0 {
		return model.ErrEmptyCart
	}

	seen := make(map[string]struct{}, len(req.Products))
	for i, line := range req.Products {
		if line.ProductID == "" || line.Price == nil || line.Quantity == nil {
			s.logger.Warn().Int("item_index", i).Msg("checkout line is missing fields")
			return model.ErrMissingFields
		}
		if *line.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", line.ProductID).
				Int("quantity", *line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if _, dup := seen[line.ProductID]; dup {
			return model.Errorf(model.ErrDuplicateOrder, "Product %s appears more than once in the checkout", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

func (s *orderService) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		s.logger.Error().Err(err).Msg("failed to rollback transaction")
	}
}

// parseOrderIDs parses and de-duplicates order identifiers.
func parseOrderIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, model.Errorf(model.ErrInvalidInput, "Invalid order id %q", r)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// lineTotal is the billed amount for quantity units at price, in cents precision.
func lineTotal(price float64, quantity int) float64 {
	return math.Round(price*float64(quantity)*100) / 100
}
