package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/campuseats/gateway/internal/config"
)

// CheckoutSession is the card-payment redirect session the payment gateway
// hands back. The browser is sent to URL; the gateway never sees card data.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentClient creates top-up sessions against the payment gateway. The
// gateway speaks plain JSON, not the backend envelope, so it keeps its own
// transport.
type PaymentClient struct {
	baseURL    string
	successURL string
	cancelURL  string
	http       *http.Client
}

func NewPaymentClient(cfg config.PaymentConfig) *PaymentClient {
	return &PaymentClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		http:       &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateCheckoutSession registers a top-up of amount credits for accountID.
// Amount is converted to the smallest currency unit on the wire.
func (p *PaymentClient) CreateCheckoutSession(ctx context.Context, accountID string, amount float64) (CheckoutSession, error) {
	body := map[string]any{
		"amount":     int64(amount * 100),
		"userId":     accountID,
		"successUrl": p.successURL,
		"cancelUrl":  p.cancelURL,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return CheckoutSession{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/create-checkout-session", strings.NewReader(string(data)))
	if err != nil {
		return CheckoutSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return CheckoutSession{}, fmt.Errorf("payment gateway: status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return CheckoutSession{}, fmt.Errorf("payment gateway: decode session: %w", err)
	}
	return session, nil
}
