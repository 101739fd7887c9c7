package router

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Product  *handler.ProductHandler
	Wishlist *handler.WishlistHandler
	Seller   *handler.SellerHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, resolver auth.Resolver, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authenticated := middleware.Authenticate(resolver, logger)
	sellerOnly := middleware.RequireRole(model.RoleSeller, logger)

	user := func(fn http.HandlerFunc) http.Handler {
		return authenticated(fn)
	}
	seller := func(fn http.HandlerFunc) http.Handler {
		return authenticated(sellerOnly(fn))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue reads are public
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/top", h.Product.TopSelling)
	mux.HandleFunc("GET /api/products/{id}", h.Product.Get)
	mux.Handle("POST /api/products/{id}/ratings", user(h.Product.Rate))

	mux.Handle("GET /api/cart", user(h.Cart.List))
	mux.Handle("POST /api/cart", user(h.Cart.Add))
	mux.Handle("PATCH /api/cart", user(h.Cart.SetQuantity))
	mux.Handle("DELETE /api/cart", user(h.Cart.Remove))

	mux.Handle("GET /api/orders", user(h.Order.List))
	mux.Handle("POST /api/orders", user(h.Order.Checkout))
	mux.Handle("PUT /api/orders", user(h.Order.ConfirmPayment))
	mux.Handle("DELETE /api/orders", user(h.Order.Cancel))

	mux.Handle("GET /api/wishlist", user(h.Wishlist.List))
	mux.Handle("POST /api/wishlist", user(h.Wishlist.Add))
	mux.Handle("DELETE /api/wishlist", user(h.Wishlist.Remove))

	mux.Handle("GET /api/seller/orders", seller(h.Seller.ListOrders))
	mux.Handle("PATCH /api/seller/orders", seller(h.Seller.UpdateOrderStatus))
	mux.Handle("GET /api/seller/products", seller(h.Seller.ListProducts))
	mux.Handle("POST /api/seller/products", seller(h.Seller.CreateProduct))
	mux.Handle("PUT /api/seller/products", seller(h.Seller.UpdateInventory))
	mux.Handle("DELETE /api/seller/products", seller(h.Seller.DeleteProduct))
	mux.Handle("GET /api/seller/dashboard", seller(h.Seller.Dashboard))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
