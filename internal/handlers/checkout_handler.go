package handlers

import (
	"errors"
	"net/http"

	"github.com/campuseats/gateway/internal/checkout"
	"github.com/campuseats/gateway/internal/session"
)

type CheckoutHandler struct {
	sequencer *checkout.Sequencer
	validator *ValidationHelper
}

func NewCheckoutHandler(sequencer *checkout.Sequencer) *CheckoutHandler {
	return &CheckoutHandler{
		sequencer: sequencer,
		validator: NewValidationHelper(),
	}
}

// PlaceOrder runs one checkout attempt for the caller's session. The cart
// arrives in the request and is never stored; the client clears it only on
// a success response.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		VendorID string              `json:"vendorId" validate:"required"`
		Items    []checkout.LineItem `json:"items" validate:"required,min=1,dive"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	result, err := h.sequencer.Attempt(r.Context(), sess, req.VendorID, req.Items)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			SendErrorResponse(w, "Cart is empty", http.StatusBadRequest, nil)
			return
		}
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	WriteJSON(w, outcomeStatus(result.Outcome), result)
}

func outcomeStatus(outcome checkout.Outcome) int {
	switch outcome {
	case checkout.OutcomeSuccess:
		return http.StatusCreated
	case checkout.OutcomeInsufficientFunds:
		return http.StatusPaymentRequired
	case checkout.OutcomeAccountUnavailable,
		checkout.OutcomeLedgerWriteFailed,
		checkout.OutcomeOrderCreationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
