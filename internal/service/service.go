package service

import (
	"context"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// CartService defines operations on the caller's cart.
type CartService interface {
	// List returns the cart lines in the order they were added.
	List(ctx context.Context, ac model.AuthContext) ([]model.CartLine, error)

	// Add appends a line with quantity one. Re-adding a product is rejected.
	Add(ctx context.Context, ac model.AuthContext, in *model.CartLineInput) (*model.CartLine, error)

	// Remove deletes a line. Removing an absent product succeeds.
	Remove(ctx context.Context, ac model.AuthContext, productID string) error

	// SetQuantity changes the quantity of an existing line.
	SetQuantity(ctx context.Context, ac model.AuthContext, productID string, quantity int) error
}

// OrderService defines the buyer side of the order lifecycle.
type OrderService interface {
	// Checkout creates one Pending order per line, all or nothing.
	Checkout(ctx context.Context, ac model.AuthContext, req *model.CheckoutRequest) ([]model.Order, error)

	// ConfirmPayment marks the caller's orders as paid and removes their products from the cart.
	ConfirmPayment(ctx context.Context, ac model.AuthContext, req *model.PaymentConfirmationRequest) (*model.PaymentConfirmationResult, error)

	// List returns the caller's orders, newest first.
	List(ctx context.Context, ac model.AuthContext) ([]model.Order, error)

	// Cancel deletes one of the caller's Pending orders.
	Cancel(ctx context.Context, ac model.AuthContext, orderID string) (*model.Order, error)
}

// ProductService defines catalogue operations.
type ProductService interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	TopSelling(ctx context.Context, limit int) ([]model.Product, error)
	Rate(ctx context.Context, ac model.AuthContext, id string, score float64) (*model.Product, error)
}

// WishlistService defines operations on the caller's wishlist.
type WishlistService interface {
	List(ctx context.Context, ac model.AuthContext) ([]model.Product, error)
	Add(ctx context.Context, ac model.AuthContext, productID string) error
	Remove(ctx context.Context, ac model.AuthContext, productID string) error
}

// SellerService defines the seller panel. Every operation requires the Seller role
// and is scoped to the caller's own products and orders.
type SellerService interface {
	ListOrders(ctx context.Context, ac model.AuthContext) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, ac model.AuthContext, req *model.StatusUpdateRequest) (*model.Order, error)
	ListProducts(ctx context.Context, ac model.AuthContext) ([]model.Product, error)
	CreateProduct(ctx context.Context, ac model.AuthContext, req *model.NewProductRequest, images []storage.Image) (*model.Product, error)
	UpdateInventory(ctx context.Context, ac model.AuthContext, req *model.InventoryUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, ac model.AuthContext, id string) error
	Dashboard(ctx context.Context, ac model.AuthContext) (*model.DashboardStats, error)
}

func requireUser(ac model.AuthContext) error {
	if !ac.Authenticated() {
		return model.ErrUnauthenticated
	}
	return nil
}

func requireSeller(ac model.AuthContext) error {
	if err := requireUser(ac); err != nil {
		return err
	}
	if !ac.IsSeller() {
		return model.ErrForbidden
	}
	return nil
}

// publish delivers events after the change was committed. Failures are logged
// and never undo the committed change.
func publish(ctx context.Context, publisher events.Publisher, logger zerolog.Logger, evts ...events.OrderEvent) {
	if len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn().
			Err(err).
			Str("type", string(evts[0].Type)).
			Int("count", len(evts)).
			Msg("failed to publish order events")
	}
}
