package repository

import (
	"context"
	"errors"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter with pagination support.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ListBySeller retrieves every product offered by a seller.
	ListBySeller(ctx context.Context, sellerID string) ([]model.Product, error)

	// CountBySeller counts the products offered by a seller.
	CountBySeller(ctx context.Context, sellerID string) (int, error)

	// TopSelling ranks products by the number of completed orders.
	TopSelling(ctx context.Context, limit int) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// UpdateInventory sets stock and price of a product owned by sellerID.
	// Returns nil when the product does not exist or belongs to another seller.
	UpdateInventory(ctx context.Context, sellerID, id string, stock int, price float64) (*model.Product, error)

	// Delete removes a product owned by sellerID and reports whether a row was removed.
	Delete(ctx context.Context, sellerID, id string) (bool, error)

	// AddRating appends a score to the product ratings. Returns nil when absent.
	AddRating(ctx context.Context, id string, score float64) (*model.Product, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// List retrieves a user's cart lines in insertion order.
	List(ctx context.Context, userID string) ([]model.CartLine, error)

	// Add appends a line. Returns model.ErrDuplicateItem when the product is already carted.
	Add(ctx context.Context, userID string, line *model.CartLine) error

	// Remove deletes a line. Removing an absent line is not an error.
	Remove(ctx context.Context, userID, productID string) error

	// SetQuantity changes the quantity of a line and reports whether it exists.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error)

	// RemoveProducts deletes the lines for productIDs within the provided transaction.
	RemoveProducts(ctx context.Context, tx pgx.Tx, userID string, productIDs []string) (int64, error)
}

// WishlistRepository defines the interface for wishlist data access operations.
type WishlistRepository interface {
	// List retrieves the wishlisted products of a user.
	List(ctx context.Context, userID string) ([]model.Product, error)

	// Add records a product and reports whether it was newly added.
	Add(ctx context.Context, userID, productID string) (bool, error)

	// Remove deletes a product from the wishlist. Absent entries are ignored.
	Remove(ctx context.Context, userID, productID string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// ExistsForUserProduct reports whether the user already has an order for the product.
	ExistsForUserProduct(ctx context.Context, tx pgx.Tx, userID, productID string) (bool, error)

	// CreateOrders inserts orders within the provided transaction.
	// A unique (user, product) violation is returned as model.ErrDuplicateOrder.
	CreateOrders(ctx context.Context, tx pgx.Tx, orders []model.Order) error

	// MarkPaymentClear sets the payment flag on the user's orders among ids and
	// returns every matched order. The flag never goes back from true to false.
	MarkPaymentClear(ctx context.Context, tx pgx.Tx, userID string, ids []uuid.UUID, clear bool) ([]model.Order, error)

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListBySeller retrieves the orders attributed to a seller, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error)

	// DeletePending removes the user's order when it is still Pending.
	// Returns nil when nothing matched.
	DeletePending(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error)

	// UpdateStatus moves a seller's order from one status to another.
	// Returns nil when the order is absent, not the seller's, or no longer in from.
	UpdateStatus(ctx context.Context, sellerID string, id uuid.UUID, from, to model.OrderStatus) (*model.Order, error)

	// SellerStats sums completed sales and counts all orders of a seller.
	SellerStats(ctx context.Context, sellerID string) (totalSales float64, totalOrders int, err error)
}

// isUniqueViolation reports whether err is a unique constraint failure, optionally
// restricted to the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
