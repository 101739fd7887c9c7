package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository, logger zerolog.Logger) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "wishlist").Logger(),
	}
}

func (s *wishlistService) List(ctx context.Context, ac model.AuthContext) ([]model.Product, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	products, err := s.wishlistRepo.List(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return products, nil
}

func (s *wishlistService) Add(ctx context.Context, ac model.AuthContext, productID string) error {
	if err := requireUser(ac); err != nil {
		return err
	}
	if productID == "" {
		return model.Errorf(model.ErrValidation, "productId is required")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if product == nil {
		return model.Errorf(model.ErrNotFound, "Product not found")
	}

	added, err := s.wishlistRepo.Add(ctx, ac.UserID, productID)
	if err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if !added {
		return model.Errorf(model.ErrDuplicateItem, "This product is already in the wishlist")
	}
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, ac model.AuthContext, productID string) error {
	if err := requireUser(ac); err != nil {
		return err
	}
	if productID == "" {
		return model.Errorf(model.ErrValidation, "productId is required")
	}

	if err := s.wishlistRepo.Remove(ctx, ac.UserID, productID); err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return nil
}
