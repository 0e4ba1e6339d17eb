package store

import "errors"

// Predefined errors for store operations. Handlers translate these into
// HTTP status codes; the messages never carry UI text.
var (
	// Not-found family.
	ErrUserNotFound     = errors.New("store: user not found")
	ErrCategoryNotFound = errors.New("store: category not found")
	ErrProductNotFound  = errors.New("store: product not found")
	ErrOrderNotFound    = errors.New("store: order not found")
	ErrAddressNotFound  = errors.New("store: address not found")
	ErrReviewNotFound   = errors.New("store: review not found")
	ErrWishlistNotFound = errors.New("store: wishlist not found")
	ErrItemNotFound     = errors.New("store: item not found")

	// Duplicate-key family, mapped from unique-constraint violations.
	ErrUserExists         = errors.New("store: username or email already exists")
	ErrCategorySlugExists = errors.New("store: category slug already exists")
	ErrReviewExists       = errors.New("store: user already reviewed this product")

	// Validation family.
	ErrPasswordTooShort  = errors.New("store: password must be at least 6 characters")
	ErrInvalidRating     = errors.New("store: rating must be between 1 and 5")
	ErrEmptyReviewTitle  = errors.New("store: review title must not be empty")
	ErrEmptyReviewText   = errors.New("store: review comment must not be empty")
	ErrInvalidQuantity   = errors.New("store: quantity must be at least 1")
	ErrInvalidModeration = errors.New("store: moderation action must be approve or reject")
	ErrInvalidAddrType   = errors.New("store: address type must be shipping or billing")
	ErrInvalidStatus     = errors.New("store: invalid order status")

	// Checkout.
	ErrEmptyCart           = errors.New("store: cart is empty")
	ErrOrderCreationFailed = errors.New("store: order creation failed")

	// Admin product management.
	ErrProductInOrders = errors.New("store: product is referenced by orders and cannot be deleted")
)
