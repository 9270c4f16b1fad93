package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviews   *upstream.ReviewClient
	validator *ValidationHelper
}

func NewReviewHandler(reviews *upstream.ReviewClient) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		validator: NewValidationHelper(),
	}
}

// Create submits a review. Reviewer identity and contact fields come from
// the session, never from the payload.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		VendorID   string            `json:"vendorId" validate:"required"`
		ReviewItem models.ReviewItem `json:"reviewItem" validate:"required"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	review := models.Review{
		UserID:       sess.AccountID,
		VendorID:     req.VendorID,
		ReviewItem:   req.ReviewItem,
		Name:         sess.Name,
		Email:        sess.Email,
		MobileNumber: sess.MobileNumber,
	}

	created, err := h.reviews.Create(r.Context(), review)
	if err != nil {
		log.Printf("[REVIEW] create failed for user %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Failed to submit review", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) ListByVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := r.URL.Query().Get("vendorId")
	if vendorID == "" {
		SendErrorResponse(w, "vendorId query parameter required", http.StatusBadRequest, nil)
		return
	}

	reviews, err := h.reviews.ListByVendor(r.Context(), vendorID)
	if err != nil {
		SendErrorResponse(w, "Failed to fetch reviews", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	reviewID := chi.URLParam(r, "reviewId")

	var req struct {
		ReviewItem models.ReviewItem `json:"reviewItem" validate:"required"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	existing, err := h.reviews.Get(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Review not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to fetch review", http.StatusBadGateway, nil)
		return
	}
	if existing.UserID != sess.AccountID {
		SendErrorResponse(w, "Forbidden", http.StatusForbidden, nil)
		return
	}

	existing.ReviewItem = req.ReviewItem
	updated, err := h.reviews.Update(r.Context(), reviewID, existing)
	if err != nil {
		SendErrorResponse(w, "Failed to update review", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")

	if err := h.reviews.Delete(r.Context(), reviewID); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Review not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to delete review", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
