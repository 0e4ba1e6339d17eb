package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// --- Dashboard and analytics ---

func (h *HTTPHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.stores.Report.DashboardStats(ctx)
	if err != nil {
		log.Printf("ERROR: AdminDashboard stats query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	recentOrders, err := h.stores.Report.RecentOrders(ctx, 5)
	if err != nil {
		log.Printf("ERROR: AdminDashboard recent orders query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	lowStock, err := h.stores.Report.LowStockProducts(ctx, 10, 5)
	if err != nil {
		log.Printf("ERROR: AdminDashboard low stock query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	pendingReviews, err := h.stores.Review.ListReviewsByStatus(ctx, domain.ReviewStatusPending, 5)
	if err != nil {
		log.Printf("ERROR: AdminDashboard pending reviews query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Stats          *domain.DashboardStats `json:"stats"`
		RecentOrders   []domain.Order         `json:"recent_orders"`
		LowStock       []domain.Product       `json:"low_stock_products"`
		PendingReviews []domain.Review        `json:"pending_reviews"`
	}{Stats: stats, RecentOrders: recentOrders, LowStock: lowStock, PendingReviews: pendingReviews})
}

func (h *HTTPHandler) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	monthly, err := h.stores.Report.MonthlySales(ctx, 12)
	if err != nil {
		log.Printf("ERROR: AdminAnalytics monthly sales query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	daily, err := h.stores.Report.DailySales(ctx, 7)
	if err != nil {
		log.Printf("ERROR: AdminAnalytics daily sales query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	topProducts, err := h.stores.Report.TopProducts(ctx, 5)
	if err != nil {
		log.Printf("ERROR: AdminAnalytics top products query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	statusCounts, err := h.stores.Report.OrderStatusCounts(ctx)
	if err != nil {
		log.Printf("ERROR: AdminAnalytics status counts query failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		MonthlySales []domain.MonthlySales `json:"monthly_sales"`
		DailySales   []domain.DailySales   `json:"daily_sales"`
		TopProducts  []domain.TopProduct   `json:"top_products"`
		StatusCounts []domain.StatusCount  `json:"order_status_counts"`
	}{MonthlySales: monthly, DailySales: daily, TopProducts: topProducts, StatusCounts: statusCounts})
}

// --- Order management ---

func (h *HTTPHandler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.stores.Order.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("ERROR: AdminListOrders store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatusInput defines the expected input for an order status change.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

func (h *HTTPHandler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(r, "orderId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err := h.stores.Order.UpdateOrderStatus(r.Context(), orderID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, store.ErrInvalidStatus.Error())
		case errors.Is(err, store.ErrOrderNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrOrderNotFound.Error())
		default:
			log.Printf("ERROR: AdminUpdateOrderStatus store operation for ID %d failed: %v", orderID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}

// --- User management ---

func (h *HTTPHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.stores.Identity.ListUsers(r.Context())
	if err != nil {
		log.Printf("ERROR: AdminListUsers store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// SetAdminInput defines the expected input for toggling the admin flag.
type SetAdminInput struct {
	IsAdmin bool `json:"is_admin"`
}

func (h *HTTPHandler) AdminSetAdmin(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	userID, ok := parseIDParam(r, "userId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	// Admins cannot strip their own flag; another admin must do it.
	if userID == principal.UserID {
		respondWithError(w, http.StatusBadRequest, "Cannot change your own admin status")
		return
	}

	var input SetAdminInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	err := h.stores.Identity.SetAdmin(r.Context(), userID, input.IsAdmin)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrUserNotFound.Error())
			return
		}
		log.Printf("ERROR: AdminSetAdmin store operation for ID %d failed: %v", userID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}

// --- Review moderation ---

func (h *HTTPHandler) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	reviews, err := h.stores.Review.ListReviewsByStatus(r.Context(), r.URL.Query().Get("status"), limit)
	if err != nil {
		if errors.Is(err, store.ErrInvalidStatus) {
			respondWithError(w, http.StatusBadRequest, store.ErrInvalidStatus.Error())
			return
		}
		log.Printf("ERROR: AdminListReviews store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, reviews)
}

// ModerateReviewInput defines the expected moderation verdict.
type ModerateReviewInput struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

func (h *HTTPHandler) AdminModerateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := parseIDParam(r, "reviewId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var input ModerateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	err := h.stores.Review.ModerateReview(r.Context(), reviewID, input.Action)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidModeration):
			respondWithError(w, http.StatusBadRequest, store.ErrInvalidModeration.Error())
		case errors.Is(err, store.ErrReviewNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrReviewNotFound.Error())
		default:
			log.Printf("ERROR: AdminModerateReview store operation for ID %d failed: %v", reviewID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to moderate review")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Review " + input.Action + "d"})
}

// --- Catalog management ---

// ProductInput defines the expected input for creating or updating a product.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Description *string `json:"description" validate:"omitempty"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=2048"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (h *HTTPHandler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		Stock:       input.Stock,
	}

	created, err := h.stores.Catalog.CreateProduct(r.Context(), product)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusBadRequest, "Invalid category_id: category does not exist.")
			return
		}
		log.Printf("ERROR: AdminCreateProduct store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	product := &domain.Product{
		ID:          productID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		Stock:       input.Stock,
	}

	updated, err := h.stores.Catalog.UpdateProduct(r.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		case errors.Is(err, store.ErrCategoryNotFound):
			respondWithError(w, http.StatusBadRequest, "Invalid category_id: category does not exist.")
		default:
			log.Printf("ERROR: AdminUpdateProduct store operation for ID %d failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	err := h.stores.Catalog.DeleteProduct(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		case errors.Is(err, store.ErrProductInOrders):
			respondWithError(w, http.StatusConflict, store.ErrProductInOrders.Error())
		default:
			log.Printf("ERROR: AdminDeleteProduct store operation for ID %d failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		}
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// CategoryInput defines the expected input for creating a category.
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Slug        string  `json:"slug" validate:"required,max=255,lowercase"`
	Description *string `json:"description" validate:"omitempty"`
}

func (h *HTTPHandler) AdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	category := &domain.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}

	created, err := h.stores.Catalog.CreateCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, store.ErrCategorySlugExists) {
			respondWithError(w, http.StatusConflict, store.ErrCategorySlugExists.Error())
			return
		}
		log.Printf("ERROR: AdminCreateCategory store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}
