package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) List(ctx context.Context, ac model.AuthContext) ([]model.CartLine, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	lines, err := s.cartRepo.List(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return lines, nil
}

func (s *cartService) Add(ctx context.Context, ac model.AuthContext, in *model.CartLineInput) (*model.CartLine, error) {
	if err := requireUser(ac); err != nil {
		return nil, err
	}

	if in == nil || in.ProductID == "" || in.Name == "" || in.Pic == "" {
		return nil, model.Errorf(model.ErrValidation, "productId, name and pic are required")
	}

	price, err := in.Price.Float()
	if err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, model.ErrInvalidPrice
	}

	line := &model.CartLine{
		ProductID: in.ProductID,
		Name:      in.Name,
		Pic:       in.Pic,
		Price:     price,
		Size:      in.Size,
		Color:     in.Color,
		Quantity:  1,
		AddedAt:   time.Now(),
	}

	if err := s.cartRepo.Add(ctx, ac.UserID, line); err != nil {
		if errors.Is(err, model.ErrDuplicateItem) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", ac.UserID).
		Str("product_id", line.ProductID).
		Msg("product added to cart")

	return line, nil
}

func (s *cartService) Remove(ctx context.Context, ac model.AuthContext, productID string) error {
	if err := requireUser(ac); err != nil {
		return err
	}
	if productID == "" {
		return model.Errorf(model.ErrValidation, "productId is required")
	}

	if err := s.cartRepo.Remove(ctx, ac.UserID, productID); err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	return nil
}

func (s *cartService) SetQuantity(ctx context.Context, ac model.AuthContext, productID string, quantity int) error {
	if err := requireUser(ac); err != nil {
		return err
	}
	if productID == "" {
		return model.Errorf(model.ErrValidation, "productId is required")
	}
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	found, err := s.cartRepo.SetQuantity(ctx, ac.UserID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if !found {
		return model.Errorf(model.ErrNotFound, "Product is not in the cart")
	}
	return nil
}
