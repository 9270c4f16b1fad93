package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutAttempts counts terminal checkout outcomes by status.
	CheckoutAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_checkout_attempts_total",
		Help: "Checkout attempts by terminal outcome.",
	}, []string{"outcome"})

	// CompensationEnqueued counts refunds that could not be applied inline
	// and were handed to the durable outbox.
	CompensationEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_compensation_enqueued_total",
		Help: "Compensating writes deferred to the outbox.",
	})

	// CompensationRetries counts outbox delivery attempts, successful or not.
	CompensationRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_compensation_retries_total",
		Help: "Outbox refund delivery attempts by result.",
	}, []string{"result"})

	// HTTPRequests counts gateway requests by route, method and code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_http_requests_total",
		Help: "HTTP requests served by the gateway.",
	}, []string{"route", "method", "code"})
)
