package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/campuseats/gateway/internal/config"
	"github.com/campuseats/gateway/internal/metrics"
	"github.com/go-redis/redis/v8"
)

const (
	refundQueueKey      = "checkout:refunds"
	refundProcessingKey = "checkout:refunds:processing"
)

// Refund is an outbox entry: a compensating credit that must eventually be
// applied. PriorBalance is kept for the audit trail; the worker recomputes
// the target balance from a fresh fetch, since the account may have moved
// since the failed attempt.
type Refund struct {
	EntryID      string    `json:"entryId"`
	AccountID    string    `json:"accountId"`
	Amount       float64   `json:"amount"`
	PriorBalance float64   `json:"priorBalance"`
	Attempts     int       `json:"attempts"`
	EnqueuedAt   time.Time `json:"enqueuedAt"`
}

// Outbox is the durable retry path for compensating writes. Entries sit in
// a Redis list and are retried until the account store acknowledges the
// credit. The worker moves each entry onto a processing list before
// touching the account store and removes it only after the write is
// acknowledged, so a crash mid-flight leaves the refund in Redis and the
// next start recovers it.
type Outbox struct {
	redis     *redis.Client
	accounts  AccountStore
	tick      time.Duration
	batchSize int
}

func NewOutbox(rdb *redis.Client, accounts AccountStore, cfg config.OutboxConfig) *Outbox {
	return &Outbox{
		redis:     rdb,
		accounts:  accounts,
		tick:      cfg.Tick,
		batchSize: cfg.BatchSize,
	}
}

// Enqueue appends a refund to the queue.
func (o *Outbox) Enqueue(ctx context.Context, refund Refund) error {
	data, err := json.Marshal(refund)
	if err != nil {
		return err
	}
	if err := o.redis.RPush(ctx, refundQueueKey, data).Err(); err != nil {
		return fmt.Errorf("enqueue refund: %w", err)
	}
	return nil
}

// Run recovers entries a previous run left on the processing list, then
// drives the worker until ctx is cancelled.
func (o *Outbox) Run(ctx context.Context) {
	o.recover(ctx)

	ticker := time.NewTicker(o.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			o.drainOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// recover moves entries stranded on the processing list by a crash back
// onto the queue tail.
func (o *Outbox) recover(ctx context.Context) {
	for {
		err := o.redis.LMove(ctx, refundProcessingKey, refundQueueKey, "LEFT", "RIGHT").Err()
		if err == redis.Nil {
			return
		}
		if err != nil {
			log.Printf("[OUTBOX] processing list recovery failed: %v", err)
			return
		}
		log.Printf("[OUTBOX] recovered stranded refund from processing list")
	}
}

// drainOnce processes up to batchSize pending refunds. Each entry is moved
// to the processing list first and removed only after the credit is
// acknowledged (or the entry was requeued with a bumped attempt count), so
// the refund exists in Redis at every point. On the first failure the pass
// stops, so a dead account store does not spin the worker.
func (o *Outbox) drainOnce(ctx context.Context) {
	for i := 0; i < o.batchSize; i++ {
		data, err := o.redis.LMove(ctx, refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").Bytes()
		if err == redis.Nil {
			return
		}
		if err != nil {
			log.Printf("[OUTBOX] queue read failed: %v", err)
			return
		}

		var refund Refund
		if err := json.Unmarshal(data, &refund); err != nil {
			log.Printf("[OUTBOX] dropping undecodable entry: %v", err)
			o.ack(ctx, data)
			continue
		}

		if err := o.apply(ctx, refund); err != nil {
			refund.Attempts++
			metrics.CompensationRetries.WithLabelValues("failure").Inc()
			log.Printf("[OUTBOX] refund %s attempt %d failed: %v", refund.EntryID, refund.Attempts, err)
			o.requeue(ctx, refund, data)
			return
		}

		metrics.CompensationRetries.WithLabelValues("success").Inc()
		o.ack(ctx, data)
		log.Printf("[OUTBOX] refund %s applied to %s (amount %.2f)", refund.EntryID, refund.AccountID, refund.Amount)
	}
}

// apply credits the refund amount on top of the live balance, conditional
// on the version that balance was read at.
func (o *Outbox) apply(ctx context.Context, refund Refund) error {
	snap, err := o.accounts.FetchBalance(ctx, refund.AccountID)
	if err != nil {
		return err
	}
	return o.accounts.SetBalance(ctx, refund.AccountID, snap.Balance+refund.Amount, snap.Version)
}

// ack removes an acknowledged (or undecodable) entry from the processing
// list.
func (o *Outbox) ack(ctx context.Context, data []byte) {
	if err := o.redis.LRem(ctx, refundProcessingKey, 1, data).Err(); err != nil {
		log.Printf("[OUTBOX] processing list cleanup failed: %v", err)
	}
}

// requeue pushes the bumped entry onto the queue tail and only then drops
// the old one from the processing list. If the push fails the old entry
// stays on the processing list and recovery picks it up.
func (o *Outbox) requeue(ctx context.Context, refund Refund, old []byte) {
	data, err := json.Marshal(refund)
	if err != nil {
		log.Printf("[OUTBOX] refund %s kept on processing list, marshal failed: %v", refund.EntryID, err)
		return
	}
	if err := o.redis.RPush(ctx, refundQueueKey, data).Err(); err != nil {
		log.Printf("[OUTBOX] refund %s kept on processing list, requeue failed: %v", refund.EntryID, err)
		return
	}
	o.ack(ctx, old)
}
