package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// List retrieves a user's cart lines in insertion order.
func (r *cartRepository) List(ctx context.Context, userID string) ([]model.CartLine, error) {
	query := `
		SELECT product_id, name, pic, price, size, color, quantity, added_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Pic, &l.Price, &l.Size, &l.Color, &l.Quantity, &l.AddedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart line row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart line rows")
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// Add appends a line unless the product is already in the cart.
func (r *cartRepository) Add(ctx context.Context, userID string, line *model.CartLine) error {
	query := `
		INSERT INTO cart_lines (user_id, product_id, name, pic, price, size, color, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		userID, line.ProductID, line.Name, line.Pic, line.Price,
		line.Size, line.Color, line.Quantity, line.AddedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", line.ProductID).
			Msg("failed to add cart line")
		return fmt.Errorf("failed to add cart line: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("user_id", userID).
			Str("product_id", line.ProductID).
			Msg("product already in cart")
		return model.ErrDuplicateItem
	}

	return nil
}

// Remove deletes a line. Removing an absent line is not an error.
func (r *cartRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to remove cart line")
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

// SetQuantity changes the quantity of a line.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_lines SET quantity = $3 WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to set cart quantity")
		return false, fmt.Errorf("failed to set cart quantity: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveProducts deletes the lines for productIDs within the provided transaction.
func (r *cartRepository) RemoveProducts(ctx context.Context, tx pgx.Tx, userID string, productIDs []string) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM cart_lines WHERE user_id = $1 AND product_id = ANY($2)`,
		userID, productIDs,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Int("count", len(productIDs)).
			Msg("failed to remove paid products from cart")
		return 0, fmt.Errorf("failed to remove products from cart: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID).
		Int64("removed", tag.RowsAffected()).
		Msg("paid products removed from cart")

	return tag.RowsAffected(), nil
}
