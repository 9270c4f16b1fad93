package upstream

import (
	"context"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
)

// ReviewClient talks to the review store.
type ReviewClient struct {
	c *Client
}

func NewReviewClient(c *Client) *ReviewClient {
	return &ReviewClient{c: c}
}

func (r *ReviewClient) Create(ctx context.Context, review models.Review) (models.Review, error) {
	var created models.Review
	err := r.c.do(ctx, http.MethodPost, "/review", nil, review, &created)
	return created, err
}

func (r *ReviewClient) Get(ctx context.Context, reviewID string) (models.Review, error) {
	var review models.Review
	err := r.c.do(ctx, http.MethodGet, "/review/"+reviewID, nil, nil, &review)
	return review, err
}

func (r *ReviewClient) ListByVendor(ctx context.Context, vendorID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.c.do(ctx, http.MethodGet, "/review?vendorId="+vendorID, nil, nil, &reviews)
	return reviews, err
}

func (r *ReviewClient) Update(ctx context.Context, reviewID string, review models.Review) (models.Review, error) {
	var updated models.Review
	err := r.c.do(ctx, http.MethodPut, "/review/"+reviewID, nil, review, &updated)
	return updated, err
}

func (r *ReviewClient) Delete(ctx context.Context, reviewID string) error {
	return r.c.do(ctx, http.MethodDelete, "/review/"+reviewID, nil, nil, nil)
}
