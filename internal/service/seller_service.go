package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var errProductNotOwned = model.Errorf(model.ErrNotFoundOrForbidden, "Product not found or you are not authorized to modify this product")

// sellerService implements SellerService.
type sellerService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	uploader    storage.ImageUploader
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewSellerService creates a new seller panel service.
func NewSellerService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	uploader storage.ImageUploader,
	publisher events.Publisher,
	logger zerolog.Logger,
) SellerService {
	return &sellerService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		uploader:    uploader,
		publisher:   publisher,
		logger:      logger.With().Str("service", "seller").Logger(),
	}
}

func (s *sellerService) ListOrders(ctx context.Context, ac model.AuthContext) ([]model.Order, error) {
	if err := requireSeller(ac); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListBySeller(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves one of the seller's orders along the status machine.
func (s *sellerService) UpdateOrderStatus(ctx context.Context, ac model.AuthContext, req *model.StatusUpdateRequest) (*model.Order, error) {
	if err := requireSeller(ac); err != nil {
		return nil, err
	}

	if req == nil || req.OrderID == "" || req.Status == "" {
		return nil, model.Errorf(model.ErrInvalidInput, "orderId and status are required")
	}
	if !req.Status.Valid() {
		return nil, model.Errorf(model.ErrInvalidStatus, "Unknown order status %q", req.Status)
	}

	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, model.ErrNotFoundOrForbidden
	}

	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if current == nil || current.SellerID != ac.UserID {
		return nil, model.ErrNotFoundOrForbidden
	}

	if current.Status.Terminal() {
		return nil, model.Errorf(model.ErrInvalidTransition, "Order is already %s", current.Status)
	}
	if !current.Status.CanTransitionTo(req.Status) {
		s.logger.Info().
			Str("order_id", id.String()).
			Str("from", string(current.Status)).
			Str("to", string(req.Status)).
			Msg("rejected order status transition")
		return nil, model.Errorf(model.ErrInvalidTransition, "Cannot move order from %s to %s", current.Status, req.Status)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, ac.UserID, id, current.Status, req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if updated == nil {
		// The order moved between the read and the conditional update.
		return nil, model.Errorf(model.ErrInvalidTransition, "Order status changed concurrently; reload and retry")
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(current.Status)).
		Str("to", string(updated.Status)).
		Msg("order status updated")

	evt := events.NewOrderEvent(events.OrderStatusChanged, *updated)
	evt.PrevStatus = current.Status
	publish(ctx, s.publisher, s.logger, evt)

	return updated, nil
}

func (s *sellerService) ListProducts(ctx context.Context, ac model.AuthContext) ([]model.Product, error) {
	if err := requireSeller(ac); err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListBySeller(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return products, nil
}

// CreateProduct uploads the images and stores the new product with their URLs.
func (s *sellerService) CreateProduct(ctx context.Context, ac model.AuthContext, req *model.NewProductRequest, images []storage.Image) (*model.Product, error) {
	if err := requireSeller(ac); err != nil {
		return nil, err
	}
	if err := validateNewProduct(req, len(images)); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.uploader.Upload(ctx, ac.UserID, img)
		if err != nil {
			if errors.Is(err, model.ErrUploadUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		urls = append(urls, url)
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		About:       req.About,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SellerID:    ac.UserID,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		Categories:  req.Categories,
		Images:      urls,
		Ratings:     []float64{},
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("seller_id", ac.UserID).
		Str("product_id", product.ID).
		Int("image_count", len(urls)).
		Msg("product created")

	return product, nil
}

// UpdateInventory sets stock and price of one of the seller's products.
func (s *sellerService) UpdateInventory(ctx context.Context, ac model.AuthContext, req *model.InventoryUpdate) (*model.Product, error) {
	if err := requireSeller(ac); err != nil {
		return nil, err
	}

	if req == nil || req.ID == "" || req.Stock == nil || req.Price == nil {
		return nil, model.Errorf(model.ErrValidation, "id, stockQuantity and price are required")
	}
	if *req.Stock < 0 {
		return nil, model.Errorf(model.ErrInvalidQuantity, "Stock cannot be negative")
	}
	if !validPrice(*req.Price) {
		return nil, model.ErrInvalidPrice
	}

	product, err := s.productRepo.UpdateInventory(ctx, ac.UserID, req.ID, *req.Stock, *req.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	if product == nil {
		return nil, errProductNotOwned
	}
	return product, nil
}

func (s *sellerService) DeleteProduct(ctx context.Context, ac model.AuthContext, id string) error {
	if err := requireSeller(ac); err != nil {
		return err
	}
	if id == "" {
		return model.Errorf(model.ErrValidation, "id is required")
	}

	deleted, err := s.productRepo.Delete(ctx, ac.UserID, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return errProductNotOwned
	}

	s.logger.Info().Str("seller_id", ac.UserID).Str("product_id", id).Msg("product deleted")
	return nil
}

// Dashboard computes the seller statistics.
func (s *sellerService) Dashboard(ctx context.Context, ac model.AuthContext) (*model.DashboardStats, error) {
	if err := requireSeller(ac); err != nil {
		return nil, err
	}

	totalSales, totalOrders, err := s.orderRepo.SellerStats(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	inventory, err := s.productRepo.CountBySeller(ctx, ac.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	return &model.DashboardStats{
		TotalSales:     totalSales,
		TotalOrders:    totalOrders,
		InventoryCount: inventory,
	}, nil
}

func validateNewProduct(req *model.NewProductRequest, imageCount int) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return model.Errorf(model.ErrValidation, "name is required")
	}
	if !validPrice(req.Price) {
		return model.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return model.Errorf(model.ErrInvalidQuantity, "Stock cannot be negative")
	}
	if imageCount > model.MaxProductImages {
		return model.Errorf(model.ErrValidation, "A product can have at most %d images", model.MaxProductImages)
	}
	return nil
}

func validPrice(price float64) bool {
	return price >= 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}
