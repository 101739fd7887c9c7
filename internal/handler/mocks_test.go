package handler

import (
	"context"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/stretchr/testify/mock"
)

var (
	buyer  = model.AuthContext{UserID: "U1", Role: model.RoleUser}
	seller = model.AuthContext{UserID: "S1", Role: model.RoleSeller}
)

// withAuth attaches ac to the request the way the authentication middleware does.
func withAuth(r *http.Request, ac model.AuthContext) *http.Request {
	return r.WithContext(auth.WithAuthContext(r.Context(), ac))
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) List(ctx context.Context, ac model.AuthContext) ([]model.CartLine, error) {
	args := m.Called(ctx, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, ac model.AuthContext, in *model.CartLineInput) (*model.CartLine, error) {
	args := m.Called(ctx, ac, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartLine), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, ac model.AuthContext, productID string) error {
	return m.Called(ctx, ac, productID).Error(0)
}

func (m *MockCartService) SetQuantity(ctx context.Context, ac model.AuthContext, productID string, quantity int) error {
	return m.Called(ctx, ac, productID, quantity).Error(0)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, ac model.AuthContext, req *model.CheckoutRequest) ([]model.Order, error) {
	args := m.Called(ctx, ac, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ConfirmPayment(ctx context.Context, ac model.AuthContext, req *model.PaymentConfirmationRequest) (*model.PaymentConfirmationResult, error) {
	args := m.Called(ctx, ac, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentConfirmationResult), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, ac model.AuthContext) ([]model.Order, error) {
	args := m.Called(ctx, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, ac model.AuthContext, orderID string) (*model.Order, error) {
	args := m.Called(ctx, ac, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) TopSelling(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Rate(ctx context.Context, ac model.AuthContext, id string, score float64) (*model.Product, error) {
	args := m.Called(ctx, ac, id, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockWishlistService is a mock implementation of WishlistService.
type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) List(ctx context.Context, ac model.AuthContext) ([]model.Product, error) {
	args := m.Called(ctx, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockWishlistService) Add(ctx context.Context, ac model.AuthContext, productID string) error {
	return m.Called(ctx, ac, productID).Error(0)
}

func (m *MockWishlistService) Remove(ctx context.Context, ac model.AuthContext, productID string) error {
	return m.Called(ctx, ac, productID).Error(0)
}

// MockSellerService is a mock implementation of SellerService.
type MockSellerService struct {
	mock.Mock
}

func (m *MockSellerService) ListOrders(ctx context.Context, ac model.AuthContext) ([]model.Order, error) {
	args := m.Called(ctx, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockSellerService) UpdateOrderStatus(ctx context.Context, ac model.AuthContext, req *model.StatusUpdateRequest) (*model.Order, error) {
	args := m.Called(ctx, ac, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockSellerService) ListProducts(ctx context.Context, ac model.AuthContext) ([]model.Product, error) {
	args := m.Called(ctx, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockSellerService) CreateProduct(ctx context.Context, ac model.AuthContext, req *model.NewProductRequest, images []storage.Image) (*model.Product, error) {
	args := m.Called(ctx, ac, req, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockSellerService) UpdateInventory(ctx context.Context, ac model.AuthContext, req *model.InventoryUpdate) (*model.Product, error) {
	args := m.Called(ctx, ac, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockSellerService) DeleteProduct(ctx context.Context, ac model.AuthContext, id string) error {
	return m.Called(ctx, ac, id).Error(0)
}

func (m *MockSellerService) Dashboard(ctx context.Context, ac model.AuthContext) (*model.DashboardStats, error) {
	args := m.Called(ctx, ac)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}
