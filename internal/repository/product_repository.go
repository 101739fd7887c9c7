package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, about, description, price, stock, seller_id,
	colors, sizes, categories, images, ratings, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// scanProduct reads one product row and derives its average rating.
func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.About, &p.Description, &p.Price, &p.Stock, &p.SellerID,
		&p.Colors, &p.Sizes, &p.Categories, &p.Images, &p.Ratings, &p.CreatedAt,
	)
	if err != nil {
		return p, err
	}
	p.AvgRating = model.AverageRating(p.Ratings)
	return p, nil
}

// collectProducts drains rows into a slice.
func (r *productRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// List retrieves products matching the filter with pagination support.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR $1 = ANY(categories))
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, filter.Category, filter.Limit, filter.Offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category", filter.Category).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collectProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return r.collectProducts(rows)
}

// ListBySeller retrieves every product offered by a seller.
func (r *productRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to query seller products")
		return nil, fmt.Errorf("failed to query seller products: %w", err)
	}

	return r.collectProducts(rows)
}

// CountBySeller counts the products offered by a seller.
func (r *productRepository) CountBySeller(ctx context.Context, sellerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE seller_id = $1`, sellerID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to count seller products")
		return 0, fmt.Errorf("failed to count seller products: %w", err)
	}
	return count, nil
}

// TopSelling ranks products by the number of completed orders.
func (r *productRepository) TopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	query := `
		SELECT p.id, p.name, p.about, p.description, p.price, p.stock, p.seller_id,
			p.colors, p.sizes, p.categories, p.images, p.ratings, p.created_at
		FROM products p
		JOIN orders o ON o.product_id = p.id AND o.status = 'Completed'
		GROUP BY p.id
		ORDER BY COUNT(o.id) DESC, p.name
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query top selling products")
		return nil, fmt.Errorf("failed to query top selling products: %w", err)
	}

	return r.collectProducts(rows)
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, about, description, price, stock, seller_id,
			colors, sizes, categories, images, ratings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.About, p.Description, p.Price, p.Stock, p.SellerID,
		nonNil(p.Colors), nonNil(p.Sizes), nonNil(p.Categories), nonNil(p.Images),
		nonNilFloats(p.Ratings), p.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Str("seller_id", p.SellerID).Msg("product created successfully")
	return nil
}

// UpdateInventory sets stock and price of a product owned by sellerID.
func (r *productRepository) UpdateInventory(ctx context.Context, sellerID, id string, stock int, price float64) (*model.Product, error) {
	query := `
		UPDATE products SET stock = $3, price = $4
		WHERE id = $1 AND seller_id = $2
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, sellerID, stock, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Str("seller_id", sellerID).Msg("product not found for seller")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update inventory")
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	return &p, nil
}

// Delete removes a product owned by sellerID.
func (r *productRepository) Delete(ctx context.Context, sellerID, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND seller_id = $2`, id, sellerID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddRating appends a score to the product ratings.
func (r *productRepository) AddRating(ctx context.Context, id string, score float64) (*model.Product, error) {
	query := `
		UPDATE products SET ratings = array_append(ratings, $2)
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, score))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to add rating")
		return nil, fmt.Errorf("failed to add rating: %w", err)
	}

	return &p, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilFloats(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}
	return values
}
