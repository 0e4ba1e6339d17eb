package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

func TestHTTPHandler_SubmitReview(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockReview := new(MockReviewStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Review: mockReview})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	review := &domain.Review{
		ID: 7, ProductID: 10, UserID: user.ID, Rating: 4,
		Title: "Solid", Comment: "Does the job", Status: domain.ReviewStatusPending,
		CreatedAt: time.Now(),
	}
	mockReview.On("SubmitReview", mock.Anything, int64(10), user.ID, 4, "Solid", "Does the job").
		Return(review, nil).Once()

	res := postJSON(t, client, server.URL+"/api/v1/products/10/reviews", SubmitReviewInput{
		Rating: 4, Title: "Solid", Comment: "Does the job",
	})
	defer res.Body.Close()

	require.Equal(t, http.StatusCreated, res.StatusCode)

	var got domain.Review
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, domain.ReviewStatusPending, got.Status, "New reviews must start pending")

	mockReview.AssertExpectations(t)
}

func TestHTTPHandler_SubmitReview_Duplicate(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockReview := new(MockReviewStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Review: mockReview})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	mockReview.On("SubmitReview", mock.Anything, int64(10), user.ID, 5, "Again", "Second try").
		Return(nil, store.ErrReviewExists).Once()

	res := postJSON(t, client, server.URL+"/api/v1/products/10/reviews", SubmitReviewInput{
		Rating: 5, Title: "Again", Comment: "Second try",
	})
	defer res.Body.Close()

	require.Equal(t, http.StatusConflict, res.StatusCode)
	mockReview.AssertExpectations(t)
}

func TestHTTPHandler_SubmitReview_ValidationFailure(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockReview := new(MockReviewStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Review: mockReview})
	defer server.Close()

	loginAs(t, client, server.URL, mockIdentity, testUser())

	inputs := []SubmitReviewInput{
		{Rating: 6, Title: "Great", Comment: "Too enthusiastic"},
		{Rating: 4, Comment: "No title given"},
	}
	for _, input := range inputs {
		res := postJSON(t, client, server.URL+"/api/v1/products/10/reviews", input)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		res.Body.Close()
	}
	mockReview.AssertNotCalled(t, "SubmitReview")
}

func TestHTTPHandler_SubmitReview_RequiresSession(t *testing.T) {
	mockReview := new(MockReviewStorer)
	server, client := setupTestServer(t, Stores{Review: mockReview})
	defer server.Close()

	res := postJSON(t, client, server.URL+"/api/v1/products/10/reviews", SubmitReviewInput{
		Rating: 4, Comment: "Anonymous opinion",
	})
	defer res.Body.Close()

	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	mockReview.AssertNotCalled(t, "SubmitReview")
}

func TestHTTPHandler_ListProductReviews(t *testing.T) {
	mockReview := new(MockReviewStorer)
	server, client := setupTestServer(t, Stores{Review: mockReview})
	defer server.Close()

	reviews := []domain.Review{
		{ID: 7, ProductID: 10, UserID: 5, Rating: 4, Comment: "Does the job", Status: domain.ReviewStatusApproved, Username: "alice"},
	}
	mockReview.On("ListApprovedReviews", mock.Anything, int64(10)).Return(reviews, nil).Once()

	res, err := client.Get(server.URL + "/api/v1/products/10/reviews")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []domain.Review
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, domain.ReviewStatusApproved, got[0].Status)

	mockReview.AssertExpectations(t)
}

func TestHTTPHandler_ListMyReviews(t *testing.T) {
	mockIdentity := new(MockIdentityStorer)
	mockReview := new(MockReviewStorer)
	server, client := setupTestServer(t, Stores{Identity: mockIdentity, Review: mockReview})
	defer server.Close()

	user := testUser()
	loginAs(t, client, server.URL, mockIdentity, user)

	reviews := []domain.Review{
		{ID: 7, ProductID: 10, UserID: user.ID, Rating: 4, Status: domain.ReviewStatusPending, ProductName: "Wireless Earbuds"},
		{ID: 3, ProductID: 12, UserID: user.ID, Rating: 5, Status: domain.ReviewStatusApproved, ProductName: "Phone Case - Premium"},
	}
	mockReview.On("ListUserReviews", mock.Anything, user.ID).Return(reviews, nil).Once()

	res, err := client.Get(server.URL + "/api/v1/reviews/mine")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []domain.Review
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 2)

	mockReview.AssertExpectations(t)
}
