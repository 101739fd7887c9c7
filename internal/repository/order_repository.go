package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	orderColumns = `id, user_id, seller_id, product_id, total_amount, quantity,
		status, payment_clear, created_at, updated_at`

	// orderUserProductKey is the unique constraint on (user_id, product_id).
	orderUserProductKey = "orders_user_product_key"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.SellerID, &o.ProductID, &o.TotalAmount, &o.Quantity,
		&o.Status, &o.PaymentClear, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *orderRepository) collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// ExistsForUserProduct reports whether the user already has an order for the product.
func (r *orderRepository) ExistsForUserProduct(ctx context.Context, tx pgx.Tx, userID, productID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to check existing order")
		return false, fmt.Errorf("failed to check existing order: %w", err)
	}
	return exists, nil
}

// CreateOrders inserts orders within the provided transaction.
func (r *orderRepository) CreateOrders(ctx context.Context, tx pgx.Tx, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	query := `
		INSERT INTO orders (id, user_id, seller_id, product_id, total_amount, quantity,
			status, payment_clear, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(query,
			o.ID, o.UserID, o.SellerID, o.ProductID, o.TotalAmount, o.Quantity,
			o.Status, o.PaymentClear, o.CreatedAt, o.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(orders); i++ {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err, orderUserProductKey) {
				r.logger.Warn().
					Str("user_id", orders[i].UserID).
					Str("product_id", orders[i].ProductID).
					Msg("concurrent order for the same product")
				return model.ErrDuplicateOrder
			}
			r.logger.Error().
				Err(err).
				Str("order_id", orders[i].ID.String()).
				Str("product_id", orders[i].ProductID).
				Msg("failed to create order")
			return fmt.Errorf("failed to create order: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(orders)).
		Msg("orders created successfully")

	return nil
}

// MarkPaymentClear sets the payment flag on the user's orders among ids.
func (r *orderRepository) MarkPaymentClear(ctx context.Context, tx pgx.Tx, userID string, ids []uuid.UUID, clear bool) ([]model.Order, error) {
	if len(ids) == 0 {
		return []model.Order{}, nil
	}

	query := `
		UPDATE orders
		SET payment_clear = payment_clear OR $3, updated_at = NOW()
		WHERE user_id = $1 AND id = ANY($2)
		RETURNING ` + orderColumns

	rows, err := tx.Query(ctx, query, userID, ids, clear)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Int("count", len(ids)).
			Msg("failed to update payment status")
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	return r.collectOrders(rows)
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return &o, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query user orders")
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	return r.collectOrders(rows)
}

// ListBySeller retrieves the orders attributed to a seller, newest first.
func (r *orderRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE seller_id = $1 ORDER BY created_at DESC, id`,
		sellerID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to query seller orders")
		return nil, fmt.Errorf("failed to query seller orders: %w", err)
	}
	return r.collectOrders(rows)
}

// DeletePending removes the user's order when it is still Pending.
func (r *orderRepository) DeletePending(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error) {
	query := `
		DELETE FROM orders
		WHERE id = $1 AND user_id = $2 AND status = 'Pending'
		RETURNING ` + orderColumns

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	r.logger.Debug().Str("order_id", id.String()).Msg("order deleted")
	return &o, nil
}

// UpdateStatus moves a seller's order from one status to another.
func (r *orderRepository) UpdateStatus(ctx context.Context, sellerID string, id uuid.UUID, from, to model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders SET status = $4, updated_at = NOW()
		WHERE id = $1 AND seller_id = $2 AND status = $3
		RETURNING ` + orderColumns

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id, sellerID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("order_id", id.String()).
			Str("to", string(to)).
			Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &o, nil
}

// SellerStats sums completed sales and counts all orders of a seller.
func (r *orderRepository) SellerStats(ctx context.Context, sellerID string) (float64, int, error) {
	query := `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'Completed'), 0)::float8,
			COUNT(*)
		FROM orders
		WHERE seller_id = $1
	`

	var total float64
	var count int
	if err := r.pool.QueryRow(ctx, query, sellerID).Scan(&total, &count); err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to compute seller stats")
		return 0, 0, fmt.Errorf("failed to compute seller stats: %w", err)
	}
	return total, count, nil
}
