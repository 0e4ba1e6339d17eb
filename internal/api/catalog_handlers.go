package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()
	filter := store.ProductFilter{}

	if q := qParams.Get("q"); q != "" {
		filter.SearchQuery = &q
	}
	if idStr := qParams.Get("category_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
			filter.CategoryID = &id
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid category_id format")
			return
		}
	}
	if priceStr := qParams.Get("min_price"); priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil && price >= 0 {
			filter.MinPrice = &price
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid min_price format")
			return
		}
	}
	if priceStr := qParams.Get("max_price"); priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil && price >= 0 {
			filter.MaxPrice = &price
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid max_price format")
			return
		}
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		respondWithError(w, http.StatusBadRequest, "min_price cannot exceed max_price")
		return
	}
	if stockStr := qParams.Get("in_stock"); stockStr != "" {
		if b, err := strconv.ParseBool(stockStr); err == nil {
			filter.InStockOnly = b
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid in_stock value: must be true or false")
			return
		}
	}

	filter.SortBy = qParams.Get("sort_by")
	filter.SortOrder = qParams.Get("sort_order")
	if filter.SortOrder != "" && strings.ToLower(filter.SortOrder) != "asc" && strings.ToLower(filter.SortOrder) != "desc" {
		respondWithError(w, http.StatusBadRequest, "Invalid sort_order value. Allowed: asc, desc")
		return
	}

	products, err := h.stores.Catalog.ListProducts(r.Context(), filter)
	if err != nil {
		log.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.stores.Catalog.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		log.Printf("ERROR: GetProductByID store operation for ID %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.stores.Catalog.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		log.Printf("ERROR: RelatedProducts lookup for ID %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve related products")
		return
	}

	related, err := h.stores.Catalog.RelatedProducts(r.Context(), productID, product.CategoryID)
	if err != nil {
		log.Printf("ERROR: RelatedProducts store operation for ID %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve related products")
		return
	}

	if related == nil {
		related = []domain.Product{}
	}
	respondWithJSON(w, http.StatusOK, related)
}

func (h *HTTPHandler) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.stores.Catalog.SearchSuggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("ERROR: SearchSuggestions store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve suggestions")
		return
	}
	respondWithJSON(w, http.StatusOK, suggestions)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.stores.Catalog.ListCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: ListCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// GetCategoryBySlug returns the category together with its products.
func (h *HTTPHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(strings.ToLower(chi.URLParam(r, "slug")))
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid category slug")
		return
	}

	category, err := h.stores.Catalog.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
			return
		}
		log.Printf("ERROR: GetCategoryBySlug store operation for %q failed: %v", slug, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve category")
		return
	}

	products, err := h.stores.Catalog.ListProducts(r.Context(), store.ProductFilter{CategoryID: &category.ID})
	if err != nil {
		log.Printf("ERROR: GetCategoryBySlug product listing for %q failed: %v", slug, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve category products")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Category *domain.Category `json:"category"`
		Products []domain.Product `json:"products"`
	}{Category: category, Products: products})
}
