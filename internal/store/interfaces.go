package store

import (
	"context"

	"storefront-service/internal/domain"
)

// ProductFilter holds the structured catalog filter. Sort keys are
// validated against a whitelist before they reach SQL; anything
// unrecognized falls back to newest-first.
type ProductFilter struct {
	CategoryID  *int64
	SearchQuery *string // substring match over name, description, category name
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	SortBy      string // name, price, rating, date, reviews
	SortOrder   string // asc or desc
}

// IdentityStorer defines user lookup, creation and credential checks.
type IdentityStorer interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Authenticate returns (nil, nil) for unknown users and wrong passwords
	// alike; callers must not distinguish the two.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	SetAdmin(ctx context.Context, userID int64, isAdmin bool) error
}

// CatalogStorer defines product and category reads plus the admin-side
// catalog writes.
type CatalogStorer interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	SearchSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
	RelatedProducts(ctx context.Context, productID int64, categoryID *int64) ([]domain.Product, error)

	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
}

// CartStorer defines the per-user line-item operations. All operations are
// scoped to the given user id; there is no cross-user access path.
type CartStorer interface {
	GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
	// ReplaceCart swaps the entire server cart for the given snapshot in one
	// transaction. It is a full replacement, never a merge.
	ReplaceCart(ctx context.Context, userID int64, lines []domain.CartLine) error
}

// OrderStorer defines checkout and order reads. PlaceOrder is atomic:
// order, items and cart clearing commit together or not at all.
type OrderStorer interface {
	PlaceOrder(ctx context.Context, userID int64, shippingAddr, billingAddr, paymentMethod string) (*domain.Order, error)
	GetOrderDetails(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderItem, error)
	GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	ListOrders(ctx context.Context, statusFilter string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}

// AddressStorer defines the address book. addressType may be empty in
// ListAddresses to return both types.
type AddressStorer interface {
	ListAddresses(ctx context.Context, userID int64, addressType string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error)
}

// WishlistStorer defines wishlist membership and the cart transfer.
type WishlistStorer interface {
	GetOrCreateDefaultWishlist(ctx context.Context, userID int64) (*domain.Wishlist, error)
	GetWishlist(ctx context.Context, wishlistID int64) (*domain.Wishlist, error)
	ListWishlistItems(ctx context.Context, wishlistID int64) ([]domain.WishlistItem, error)
	// AddToWishlist reports false, nil when the product was already present.
	AddToWishlist(ctx context.Context, wishlistID, productID int64) (bool, error)
	RemoveFromWishlist(ctx context.Context, wishlistID, productID int64) error
	WishlistContains(ctx context.Context, wishlistID, productID int64) (bool, error)
	ListPublicWishlists(ctx context.Context) ([]domain.Wishlist, error)
	// MoveToCart removes the product from the wishlist if and only if the
	// cart upsert succeeds, in one transaction.
	MoveToCart(ctx context.Context, userID, wishlistID, productID int64) error
	ToggleWishlistVisibility(ctx context.Context, wishlistID int64) (bool, error)
}

// ReviewStorer defines submission, listings and moderation.
type ReviewStorer interface {
	SubmitReview(ctx context.Context, productID, userID int64, rating int, title, comment string) (*domain.Review, error)
	ListApprovedReviews(ctx context.Context, productID int64) ([]domain.Review, error)
	ListReviewsByStatus(ctx context.Context, status string, limit int) ([]domain.Review, error)
	ListUserReviews(ctx context.Context, userID int64) ([]domain.Review, error)
	ModerateReview(ctx context.Context, reviewID int64, action string) error
}

// ReportStorer defines the read-only admin dashboard aggregates.
type ReportStorer interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	LowStockProducts(ctx context.Context, threshold, limit int) ([]domain.Product, error)
	MonthlySales(ctx context.Context, limit int) ([]domain.MonthlySales, error)
	DailySales(ctx context.Context, days int) ([]domain.DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
	OrderStatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}
