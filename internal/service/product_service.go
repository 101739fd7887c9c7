package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultTopLimit = 5
	maxTopLimit     = 50
	minRating       = 1
	maxRating       = 5
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves catalogue products with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Str("category", filter.Category).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset).
		Msg("retrieved products")

	return products, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.Errorf(model.ErrNotFound, "Product not found")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.Errorf(model.ErrNotFound, "Product not found")
	}

	return product, nil
}

// TopSelling ranks products by completed orders.
func (s *productService) TopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	products, err := s.productRepo.TopSelling(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top selling products: %w", err)
	}
	return products, nil
}

// Rate records a score between 1 and 5.
func (s *productService) Rate(ctx context.Context, ac model.AuthContext, id string, score float64) (*model.Product, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}
	if score < minRating || score > maxRating {
		return nil, model.Errorf(model.ErrValidation, "Rating must be between %d and %d", minRating, maxRating)
	}

	product, err := s.productRepo.AddRating(ctx, id, score)
	if err != nil {
		return nil, fmt.Errorf("failed to rate product: %w", err)
	}
	if product == nil {
		return nil, model.Errorf(model.ErrNotFound, "Product not found")
	}

	s.logger.Debug().
		Str("user_id", ac.UserID).
		Str("product_id", id).
		Float64("score", score).
		Msg("product rated")

	return product, nil
}
