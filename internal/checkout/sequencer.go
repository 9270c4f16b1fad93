package checkout

import (
	"context"
	"log"
	"time"

	"github.com/campuseats/gateway/internal/metrics"
	"github.com/campuseats/gateway/internal/models"
	"github.com/campuseats/gateway/internal/session"
	"github.com/google/uuid"
)

// deliveryOffset is how far ahead of order acceptance the delivery deadline
// is set.
const deliveryOffset = 30 * time.Minute

// AccountStore is the slice of the account store the sequencer needs.
type AccountStore interface {
	FetchBalance(ctx context.Context, accountID string) (models.BalanceSnapshot, error)
	SetBalance(ctx context.Context, accountID string, newBalance float64, expectedVersion int64) error
}

// OrderStore is the slice of the order store the sequencer needs.
type OrderStore interface {
	Create(ctx context.Context, order models.Order) (string, error)
}

// RefundQueue accepts refunds whose inline compensating write failed.
type RefundQueue interface {
	Enqueue(ctx context.Context, refund Refund) error
}

// Outcome is the terminal state of one checkout attempt.
type Outcome string

const (
	OutcomeSuccess             Outcome = "SUCCESS"
	OutcomeAccountUnavailable  Outcome = "ACCOUNT_UNAVAILABLE"
	OutcomeInsufficientFunds   Outcome = "INSUFFICIENT_FUNDS"
	OutcomeLedgerWriteFailed   Outcome = "LEDGER_WRITE_FAILED"
	OutcomeOrderCreationFailed Outcome = "ORDER_CREATION_FAILED"
)

// Result reports one attempt. OrderID is set only on success. Balance is
// the ledger balance as of the attempt's end, best knowledge.
type Result struct {
	AttemptID string  `json:"attemptId"`
	Outcome   Outcome `json:"outcome"`
	OrderID   string  `json:"orderId,omitempty"`
	Total     float64 `json:"total"`
	Balance   float64 `json:"balance"`
	Message   string  `json:"message,omitempty"`
}

// Sequencer executes a purchase attempt as an ordered, partially
// compensable sequence of two remote mutations: a conditional ledger debit
// followed by order creation. At most two mutations are issued per attempt,
// debit strictly before order submit, compensation only after both ran.
type Sequencer struct {
	accounts AccountStore
	orders   OrderStore
	refunds  RefundQueue
}

func NewSequencer(accounts AccountStore, orders OrderStore, refunds RefundQueue) *Sequencer {
	return &Sequencer{
		accounts: accounts,
		orders:   orders,
		refunds:  refunds,
	}
}

// Attempt runs one checkout. Every attempt starts from scratch: the balance
// is fetched fresh, and nothing carries over from previous attempts. Input
// errors (bad cart) return an error before any remote call; remote failures
// come back as Result outcomes.
func (s *Sequencer) Attempt(ctx context.Context, sess session.Session, vendorID string, items []LineItem) (*Result, error) {
	if err := ValidateCart(items); err != nil {
		return nil, err
	}

	attemptID := uuid.NewString()
	res := &Result{AttemptID: attemptID}

	snap, err := s.accounts.FetchBalance(ctx, sess.AccountID)
	if err != nil {
		log.Printf("[CHECKOUT] %s balance fetch failed for %s: %v", attemptID, sess.AccountID, err)
		return s.finish(res, OutcomeAccountUnavailable, "account is unavailable"), nil
	}
	res.Balance = snap.Balance

	total := CartTotal(items)
	res.Total = total

	// The single gating invariant: a debit is never attempted when the
	// fetched balance cannot cover the cart.
	if total > snap.Balance {
		return s.finish(res, OutcomeInsufficientFunds, "insufficient credits, please recharge"), nil
	}

	if err := s.accounts.SetBalance(ctx, sess.AccountID, snap.Balance-total, snap.Version); err != nil {
		log.Printf("[CHECKOUT] %s debit failed for %s: %v", attemptID, sess.AccountID, err)
		return s.finish(res, OutcomeLedgerWriteFailed, "could not reserve credits, please retry"), nil
	}
	res.Balance = snap.Balance - total

	order := buildOrder(sess, vendorID, items, total)

	orderID, err := s.orders.Create(ctx, order)
	if err != nil {
		log.Printf("[CHECKOUT] %s order submit failed for %s: %v", attemptID, sess.AccountID, err)
		s.compensate(ctx, attemptID, sess.AccountID, snap, total)
		res.Balance = snap.Balance
		return s.finish(res, OutcomeOrderCreationFailed, "order was not accepted, credits restored"), nil
	}

	res.OrderID = orderID
	return s.finish(res, OutcomeSuccess, ""), nil
}

// compensate restores the pre-deduction balance after a failed order
// submit. The first write goes out inline with the balance captured before
// the debit; the debit bumped the account version by one, so that is the
// version it is conditioned on. If the inline write fails the refund is
// enqueued for durable retry instead of being dropped.
func (s *Sequencer) compensate(ctx context.Context, attemptID, accountID string, snap models.BalanceSnapshot, total float64) {
	err := s.accounts.SetBalance(ctx, accountID, snap.Balance, snap.Version+1)
	if err == nil {
		return
	}
	log.Printf("[CHECKOUT] %s inline compensation failed for %s: %v", attemptID, accountID, err)
	metrics.CompensationEnqueued.Inc()

	refund := Refund{
		EntryID:      uuid.NewString(),
		AccountID:    accountID,
		Amount:       total,
		PriorBalance: snap.Balance,
		EnqueuedAt:   time.Now().UTC(),
	}
	if qErr := s.refunds.Enqueue(ctx, refund); qErr != nil {
		// Last line of defense; the worker cannot pick this one up.
		log.Printf("[CHECKOUT] %s refund enqueue failed for %s (amount %.2f): %v", attemptID, accountID, total, qErr)
	}
}

func (s *Sequencer) finish(res *Result, outcome Outcome, message string) *Result {
	res.Outcome = outcome
	res.Message = message
	metrics.CheckoutAttempts.WithLabelValues(string(outcome)).Inc()
	return res
}

func buildOrder(sess session.Session, vendorID string, items []LineItem, total float64) models.Order {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Calories:   item.Calories,
			Name:       item.Name,
			Price:      item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: item.UnitPrice * float64(item.Quantity),
		})
	}

	return models.Order{
		UserID:       sess.AccountID,
		VendorID:     vendorID,
		MenuItems:    orderItems,
		TotalAmount:  total,
		DeliveryTime: time.Now().Add(deliveryOffset),
		Name:         sess.Name,
		Email:        sess.Email,
		MobileNumber: sess.MobileNumber,
	}
}
