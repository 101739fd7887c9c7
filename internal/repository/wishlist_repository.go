package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type wishlistRepository struct {
	pool     *pgxpool.Pool
	products *productRepository
	logger   zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	logger = logger.With().Str("repository", "wishlist").Logger()
	return &wishlistRepository{
		pool:     pool,
		products: &productRepository{pool: pool, logger: logger},
		logger:   logger,
	}
}

func (r *wishlistRepository) List(ctx context.Context, userID string) ([]model.Product, error) {
	query := `
		SELECT p.id, p.name, p.about, p.description, p.price, p.stock, p.seller_id,
			p.colors, p.sizes, p.categories, p.images, p.ratings, p.created_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.added_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	return r.products.collectProducts(rows)
}

func (r *wishlistRepository) Add(ctx context.Context, userID, productID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Str("product_id", productID).Msg("failed to add wishlist item")
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Str("product_id", productID).Msg("failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}
