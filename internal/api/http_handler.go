package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"storefront-service/internal/store"
)

// Stores bundles the per-component storer interfaces the handlers depend on.
// Tests substitute mocks for individual fields.
type Stores struct {
	Identity store.IdentityStorer
	Catalog  store.CatalogStorer
	Cart     store.CartStorer
	Order    store.OrderStorer
	Address  store.AddressStorer
	Wishlist store.WishlistStorer
	Review   store.ReviewStorer
	Report   store.ReportStorer
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	stores   Stores
	sessions *scs.SessionManager
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(stores Stores, sessions *scs.SessionManager) *HTTPHandler {
	return &HTTPHandler{
		stores:   stores,
		sessions: sessions,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service. The session
// middleware must already be installed on the parent router.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.withPrincipal)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.RegisterUser)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.requireUser(h.CurrentUser))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			// Before {productId} so "suggestions" is not parsed as an ID.
			r.Get("/suggestions", h.SearchSuggestions)
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", h.GetProductByID)
				r.Get("/related", h.RelatedProducts)
				r.Get("/reviews", h.ListProductReviews)
				r.Post("/reviews", h.requireUser(h.SubmitReview))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{slug}", h.GetCategoryBySlug)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.requireUser(h.GetCart))
			r.Delete("/", h.requireUser(h.ClearCart))
			r.Post("/items", h.requireUser(h.AddToCart))
			r.Put("/items/{productId}", h.requireUser(h.SetCartQuantity))
			r.Delete("/items/{productId}", h.requireUser(h.RemoveFromCart))
			r.Post("/sync", h.requireUser(h.SyncCart))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.requireUser(h.PlaceOrder))
			r.Get("/", h.requireUser(h.ListUserOrders))
			r.Get("/{orderId}", h.requireUser(h.GetOrderDetails))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", h.requireUser(h.ListAddresses))
			r.Post("/", h.requireUser(h.CreateAddress))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.requireUser(h.GetWishlist))
			r.Post("/items", h.requireUser(h.AddToWishlist))
			r.Delete("/items/{productId}", h.requireUser(h.RemoveFromWishlist))
			r.Post("/items/{productId}/move-to-cart", h.requireUser(h.MoveToCart))
			r.Post("/toggle-visibility", h.requireUser(h.ToggleWishlistVisibility))
		})

		r.Route("/wishlists", func(r chi.Router) {
			r.Get("/public", h.ListPublicWishlists)
			r.Get("/{wishlistId}", h.GetSharedWishlist)
		})

		r.Get("/reviews/mine", h.requireUser(h.ListMyReviews))

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/dashboard", h.AdminDashboard)
			r.Get("/analytics", h.AdminAnalytics)

			r.Get("/orders", h.AdminListOrders)
			r.Put("/orders/{orderId}/status", h.AdminUpdateOrderStatus)

			r.Get("/users", h.AdminListUsers)
			r.Put("/users/{userId}/admin", h.AdminSetAdmin)

			r.Get("/reviews", h.AdminListReviews)
			r.Put("/reviews/{reviewId}/moderate", h.AdminModerateReview)

			r.Post("/products", h.AdminCreateProduct)
			r.Put("/products/{productId}", h.AdminUpdateProduct)
			r.Delete("/products/{productId}", h.AdminDeleteProduct)
			r.Post("/categories", h.AdminCreateCategory)
		})
	})
}
