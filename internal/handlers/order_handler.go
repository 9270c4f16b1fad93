package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders    *upstream.OrderClient
	validator *ValidationHelper
}

func NewOrderHandler(orders *upstream.OrderClient) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		validator: NewValidationHelper(),
	}
}

// ListMine returns the caller's own orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), sess.AccountID)
	if err != nil {
		log.Printf("[ORDER] list failed for user %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Failed to fetch orders", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, orders)
}

// ListForVendor returns the orders placed against the calling vendor.
func (h *OrderHandler) ListForVendor(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	orders, err := h.orders.ListByVendor(r.Context(), sess.AccountID)
	if err != nil {
		log.Printf("[ORDER] vendor list failed for %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Failed to fetch orders", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Order not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to fetch order", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

// UpdateStatus lets a vendor move an order through its fulfilment states.
// Only the status field is writable through the gateway.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending preparing ready delivered cancelled"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	order, err := h.orders.Update(r.Context(), orderID, map[string]any{"status": req.Status})
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Order not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to update order", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.orders.Delete(r.Context(), orderID); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Order not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to delete order", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
