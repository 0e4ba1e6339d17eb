package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

func TestHTTPHandler_AddToCart(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockCart := new(MockCartStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Cart: mockCart})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	items := []domain.CartItem{
		{ID: 1, ProductID: 10, Name: "Wireless Earbuds", Price: 79.99, Quantity: 2},
	}
	mockCart.On("AddToCart", mock.Anything, user.ID, int64(10), 2).Return(nil).Once()
	mockCart.On("GetCart", mock.Anything, user.ID).Return(items, nil).Once()

	res := postJSON(t, client, server.URL+"/api/v1/cart/items", AddToCartInput{ProductID: 10, Quantity: 2})
	defer res.Body.Close()

	require.Equal(t, http.StatusCreated, res.StatusCode)

	var got cartResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	assert.InDelta(t, 159.98, got.Total, 0.001)

	mockCart.AssertExpectations(t)
}

func TestHTTPHandler_AddToCart_UnknownProduct(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockCart := new(MockCartStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Cart: mockCart})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	mockCart.On("AddToCart", mock.Anything, user.ID, int64(999), 1).Return(store.ErrProductNotFound).Once()

	res := postJSON(t, client, server.URL+"/api/v1/cart/items", AddToCartInput{ProductID: 999, Quantity: 1})
	defer res.Body.Close()

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	mockCart.AssertExpectations(t)
}

func TestHTTPHandler_SetCartQuantity_ZeroRemovesLine(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockCart := new(MockCartStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Cart: mockCart})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	// The store layer turns quantity 0 into a removal; the handler passes it
	// through untouched.
	mockCart.On("SetQuantity", mock.Anything, user.ID, int64(10), 0).Return(nil).Once()
	mockCart.On("GetCart", mock.Anything, user.ID).Return([]domain.CartItem{}, nil).Once()

	res := putJSON(t, client, server.URL+"/api/v1/cart/items/10", SetCartQuantityInput{Quantity: 0})
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got cartResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)

	mockCart.AssertExpectations(t)
}

func TestHTTPHandler_SyncCart_ReplacesServerCart(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockCart := new(MockCartStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Cart: mockCart})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	lines := []domain.CartLine{{ProductID: 10, Quantity: 2}, {ProductID: 12, Quantity: 1}}
	items := []domain.CartItem{
		{ID: 1, ProductID: 10, Name: "Wireless Earbuds", Price: 79.99, Quantity: 2},
		{ID: 2, ProductID: 12, Name: "Phone Case - Premium", Price: 29.99, Quantity: 1},
	}

	mockCart.On("ReplaceCart", mock.Anything, user.ID, lines).Return(nil).Once()
	mockCart.On("GetCart", mock.Anything, user.ID).Return(items, nil).Once()

	res := postJSON(t, client, server.URL+"/api/v1/cart/sync", SyncCartInput{Items: lines})
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got cartResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 189.97, got.Total, 0.001)

	mockCart.AssertExpectations(t)
}

func TestHTTPHandler_GetCart_ComputesTotal(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockCart := new(MockCartStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Cart: mockCart})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	items := []domain.CartItem{
		{ID: 1, ProductID: 10, Name: "Phone Case - Premium", Price: 9.99, Quantity: 2},
		{ID: 2, ProductID: 11, Name: "Cable Tie Pack", Price: 3.52, Quantity: 1},
	}
	mockCart.On("GetCart", mock.Anything, user.ID).Return(items, nil).Once()

	res, err := client.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got cartResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.InDelta(t, 23.50, got.Total, 0.001)

	mockCart.AssertExpectations(t)
}
