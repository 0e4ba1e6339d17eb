package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// MockIdentityStorer is a mock implementation of store.IdentityStorer
type MockIdentityStorer struct {
	mock.Mock
}

func (m *MockIdentityStorer) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityStorer) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityStorer) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityStorer) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockIdentityStorer) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	args := m.Called(ctx)
	var users []domain.UserSummary
	if arg0 := args.Get(0); arg0 != nil {
		users = arg0.([]domain.UserSummary)
	}
	return users, args.Error(1)
}

func (m *MockIdentityStorer) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	args := m.Called(ctx, userID, isAdmin)
	return args.Error(0)
}

// MockCatalogStorer is a mock implementation of store.CatalogStorer
type MockCatalogStorer struct {
	mock.Mock
}

func (m *MockCatalogStorer) ListProducts(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockCatalogStorer) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogStorer) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCatalogStorer) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogStorer) SearchSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	args := m.Called(ctx, query)
	var suggestions []domain.Suggestion
	if arg0 := args.Get(0); arg0 != nil {
		suggestions = arg0.([]domain.Suggestion)
	}
	return suggestions, args.Error(1)
}

func (m *MockCatalogStorer) RelatedProducts(ctx context.Context, productID int64, categoryID *int64) ([]domain.Product, error) {
	args := m.Called(ctx, productID, categoryID)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockCatalogStorer) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogStorer) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogStorer) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogStorer) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockCartStorer is a mock implementation of store.CartStorer
type MockCartStorer struct {
	mock.Mock
}

func (m *MockCartStorer) GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	var items []domain.CartItem
	if arg0 := args.Get(0); arg0 != nil {
		items = arg0.([]domain.CartItem)
	}
	return items, args.Error(1)
}

func (m *MockCartStorer) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartStorer) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartStorer) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCartStorer) ClearCart(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartStorer) ReplaceCart(ctx context.Context, userID int64, lines []domain.CartLine) error {
	args := m.Called(ctx, userID, lines)
	return args.Error(0)
}

// MockOrderStorer is a mock implementation of store.OrderStorer
type MockOrderStorer struct {
	mock.Mock
}

func (m *MockOrderStorer) PlaceOrder(ctx context.Context, userID int64, shippingAddr, billingAddr, paymentMethod string) (*domain.Order, error) {
	args := m.Called(ctx, userID, shippingAddr, billingAddr, paymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStorer) GetOrderDetails(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	var order *domain.Order
	if arg0 := args.Get(0); arg0 != nil {
		order = arg0.(*domain.Order)
	}
	var items []domain.OrderItem
	if arg1 := args.Get(1); arg1 != nil {
		items = arg1.([]domain.OrderItem)
	}
	return order, items, args.Error(2)
}

func (m *MockOrderStorer) GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	var orders []domain.Order
	if arg0 := args.Get(0); arg0 != nil {
		orders = arg0.([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderStorer) ListOrders(ctx context.Context, statusFilter string) ([]domain.Order, error) {
	args := m.Called(ctx, statusFilter)
	var orders []domain.Order
	if arg0 := args.Get(0); arg0 != nil {
		orders = arg0.([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockOrderStorer) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// MockReviewStorer is a mock implementation of store.ReviewStorer
type MockReviewStorer struct {
	mock.Mock
}

func (m *MockReviewStorer) SubmitReview(ctx context.Context, productID, userID int64, rating int, title, comment string) (*domain.Review, error) {
	args := m.Called(ctx, productID, userID, rating, title, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewStorer) ListApprovedReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	var reviews []domain.Review
	if arg0 := args.Get(0); arg0 != nil {
		reviews = arg0.([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockReviewStorer) ListReviewsByStatus(ctx context.Context, status string, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, status, limit)
	var reviews []domain.Review
	if arg0 := args.Get(0); arg0 != nil {
		reviews = arg0.([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockReviewStorer) ListUserReviews(ctx context.Context, userID int64) ([]domain.Review, error) {
	args := m.Called(ctx, userID)
	var reviews []domain.Review
	if arg0 := args.Get(0); arg0 != nil {
		reviews = arg0.([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockReviewStorer) ModerateReview(ctx context.Context, reviewID int64, action string) error {
	args := m.Called(ctx, reviewID, action)
	return args.Error(0)
}

// MockAddressStorer is a mock implementation of store.AddressStorer
type MockAddressStorer struct {
	mock.Mock
}

func (m *MockAddressStorer) ListAddresses(ctx context.Context, userID int64, addressType string) ([]domain.Address, error) {
	args := m.Called(ctx, userID, addressType)
	var addresses []domain.Address
	if arg0 := args.Get(0); arg0 != nil {
		addresses = arg0.([]domain.Address)
	}
	return addresses, args.Error(1)
}

func (m *MockAddressStorer) CreateAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

// MockWishlistStorer is a mock implementation of store.WishlistStorer
type MockWishlistStorer struct {
	mock.Mock
}

func (m *MockWishlistStorer) GetOrCreateDefaultWishlist(ctx context.Context, userID int64) (*domain.Wishlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *MockWishlistStorer) GetWishlist(ctx context.Context, wishlistID int64) (*domain.Wishlist, error) {
	args := m.Called(ctx, wishlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *MockWishlistStorer) ListWishlistItems(ctx context.Context, wishlistID int64) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, wishlistID)
	var items []domain.WishlistItem
	if arg0 := args.Get(0); arg0 != nil {
		items = arg0.([]domain.WishlistItem)
	}
	return items, args.Error(1)
}

func (m *MockWishlistStorer) AddToWishlist(ctx context.Context, wishlistID, productID int64) (bool, error) {
	args := m.Called(ctx, wishlistID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistStorer) RemoveFromWishlist(ctx context.Context, wishlistID, productID int64) error {
	args := m.Called(ctx, wishlistID, productID)
	return args.Error(0)
}

func (m *MockWishlistStorer) WishlistContains(ctx context.Context, wishlistID, productID int64) (bool, error) {
	args := m.Called(ctx, wishlistID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistStorer) ListPublicWishlists(ctx context.Context) ([]domain.Wishlist, error) {
	args := m.Called(ctx)
	var wishlists []domain.Wishlist
	if arg0 := args.Get(0); arg0 != nil {
		wishlists = arg0.([]domain.Wishlist)
	}
	return wishlists, args.Error(1)
}

func (m *MockWishlistStorer) MoveToCart(ctx context.Context, userID, wishlistID, productID int64) error {
	args := m.Called(ctx, userID, wishlistID, productID)
	return args.Error(0)
}

func (m *MockWishlistStorer) ToggleWishlistVisibility(ctx context.Context, wishlistID int64) (bool, error) {
	args := m.Called(ctx, wishlistID)
	return args.Bool(0), args.Error(1)
}
