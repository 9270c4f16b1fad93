package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
)

// topUpRetries bounds the fetch-then-conditional-write loop when another
// writer races the credit.
const topUpRetries = 3

type CreditsHandler struct {
	payments  *upstream.PaymentClient
	accounts  *upstream.AccountClient
	validator *ValidationHelper
}

func NewCreditsHandler(payments *upstream.PaymentClient, accounts *upstream.AccountClient) *CreditsHandler {
	return &CreditsHandler{
		payments:  payments,
		accounts:  accounts,
		validator: NewValidationHelper(),
	}
}

// Account returns the session profile together with a freshly fetched
// balance.
func (h *CreditsHandler) Account(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	snap, err := h.accounts.FetchBalance(r.Context(), sess.AccountID)
	if err != nil {
		log.Printf("[CREDITS] balance fetch failed for %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Account is unavailable", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"profile": snap.Profile,
		"credits": snap.Balance,
	})
}

// CreateTopUpSession opens a card-payment redirect session for the given
// amount. The browser follows the returned URL; no card data passes
// through the gateway.
func (h *CreditsHandler) CreateTopUpSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	checkoutSession, err := h.payments.CreateCheckoutSession(r.Context(), sess.AccountID, req.Amount)
	if err != nil {
		log.Printf("[CREDITS] payment session failed for %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Payment gateway unavailable", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, checkoutSession)
}

// ConfirmTopUp is called after a successful payment redirect. It credits
// the paid amount on top of the live balance with a conditional write,
// retrying on version conflicts.
// TODO: verify the amount against the payment gateway session once it
// exposes a session lookup endpoint.
func (h *CreditsHandler) ConfirmTopUp(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		SessionID string  `json:"sessionId" validate:"required"`
		Amount    float64 `json:"amount" validate:"required,gt=0"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	for attempt := 0; attempt < topUpRetries; attempt++ {
		snap, err := h.accounts.FetchBalance(r.Context(), sess.AccountID)
		if err != nil {
			log.Printf("[CREDITS] top-up fetch failed for %s: %v", sess.AccountID, err)
			SendErrorResponse(w, "Account is unavailable", http.StatusBadGateway, nil)
			return
		}

		newBalance := snap.Balance + req.Amount
		err = h.accounts.SetBalance(r.Context(), sess.AccountID, newBalance, snap.Version)
		if errors.Is(err, upstream.ErrVersionConflict) {
			continue
		}
		if err != nil {
			log.Printf("[CREDITS] top-up write failed for %s: %v", sess.AccountID, err)
			SendErrorResponse(w, "Could not apply credits", http.StatusBadGateway, nil)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{"credits": newBalance})
		return
	}

	SendErrorResponse(w, "Account is busy, please retry", http.StatusConflict, nil)
}
