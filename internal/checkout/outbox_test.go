package checkout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/campuseats/gateway/internal/config"
	"github.com/campuseats/gateway/internal/models"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testRefund() Refund {
	return Refund{
		EntryID:      "entry-1",
		AccountID:    "user1",
		Amount:       60,
		PriorBalance: 100,
		EnqueuedAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestOutboxEnqueue(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	outbox := NewOutbox(db, nil, config.OutboxConfig{Tick: time.Second, BatchSize: 10})

	refund := testRefund()
	payload, err := json.Marshal(refund)
	assert.NoError(t, err)

	redisMock.ExpectRPush(refundQueueKey, payload).SetVal(1)

	err = outbox.Enqueue(context.Background(), refund)
	assert.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestOutboxDrain(t *testing.T) {
	t.Run("applies pending refund on top of live balance", func(t *testing.T) {
		db, redisMock := redismock.NewClientMock()
		accounts := new(MockAccountStore)
		outbox := NewOutbox(db, accounts, config.OutboxConfig{Tick: time.Second, BatchSize: 10})

		refund := testRefund()
		payload, _ := json.Marshal(refund)
		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").SetVal(string(payload))
		redisMock.ExpectLRem(refundProcessingKey, 1, payload).SetVal(1)
		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").RedisNil()

		// The account moved since the failed attempt; the credit lands on
		// the fresh balance, not the recorded prior one.
		accounts.On("FetchBalance", mock.Anything, "user1").
			Return(models.BalanceSnapshot{AccountID: "user1", Balance: 15, Version: 7}, nil)
		accounts.On("SetBalance", mock.Anything, "user1", float64(75), int64(7)).Return(nil)

		outbox.drainOnce(context.Background())

		accounts.AssertExpectations(t)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("entry is parked on the processing list before any write", func(t *testing.T) {
		// The move to the processing list happens before the account store
		// is touched; a crash between the two leaves the entry in Redis
		// rather than losing it.
		db, redisMock := redismock.NewClientMock()
		accounts := new(MockAccountStore)
		outbox := NewOutbox(db, accounts, config.OutboxConfig{Tick: time.Second, BatchSize: 10})

		refund := testRefund()
		payload, _ := json.Marshal(refund)

		// Apply fails and the requeue push fails too: the entry must stay
		// on the processing list untouched, so no LRem is expected.
		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").SetVal(string(payload))
		retried := refund
		retried.Attempts = 1
		retriedPayload, _ := json.Marshal(retried)
		redisMock.ExpectRPush(refundQueueKey, retriedPayload).SetErr(assert.AnError)

		accounts.On("FetchBalance", mock.Anything, "user1").
			Return(models.BalanceSnapshot{}, assert.AnError)

		outbox.drainOnce(context.Background())

		accounts.AssertExpectations(t)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("requeues with bumped attempts when the store is down", func(t *testing.T) {
		db, redisMock := redismock.NewClientMock()
		accounts := new(MockAccountStore)
		outbox := NewOutbox(db, accounts, config.OutboxConfig{Tick: time.Second, BatchSize: 10})

		refund := testRefund()
		payload, _ := json.Marshal(refund)

		retried := refund
		retried.Attempts = 1
		retriedPayload, _ := json.Marshal(retried)

		// The bumped copy reaches the queue before the old one leaves the
		// processing list.
		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").SetVal(string(payload))
		redisMock.ExpectRPush(refundQueueKey, retriedPayload).SetVal(1)
		redisMock.ExpectLRem(refundProcessingKey, 1, payload).SetVal(1)

		accounts.On("FetchBalance", mock.Anything, "user1").
			Return(models.BalanceSnapshot{}, assert.AnError)

		outbox.drainOnce(context.Background())

		accounts.AssertExpectations(t)
		accounts.AssertNotCalled(t, "SetBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("drops undecodable entries and keeps draining", func(t *testing.T) {
		db, redisMock := redismock.NewClientMock()
		accounts := new(MockAccountStore)
		outbox := NewOutbox(db, accounts, config.OutboxConfig{Tick: time.Second, BatchSize: 10})

		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").SetVal("not json")
		redisMock.ExpectLRem(refundProcessingKey, 1, []byte("not json")).SetVal(1)
		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").RedisNil()

		outbox.drainOnce(context.Background())

		accounts.AssertNotCalled(t, "FetchBalance", mock.Anything, mock.Anything)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("stops at batch size", func(t *testing.T) {
		db, redisMock := redismock.NewClientMock()
		accounts := new(MockAccountStore)
		outbox := NewOutbox(db, accounts, config.OutboxConfig{Tick: time.Second, BatchSize: 1})

		refund := testRefund()
		payload, _ := json.Marshal(refund)
		redisMock.ExpectLMove(refundQueueKey, refundProcessingKey, "LEFT", "RIGHT").SetVal(string(payload))
		redisMock.ExpectLRem(refundProcessingKey, 1, payload).SetVal(1)

		accounts.On("FetchBalance", mock.Anything, "user1").
			Return(models.BalanceSnapshot{AccountID: "user1", Balance: 0, Version: 1}, nil)
		accounts.On("SetBalance", mock.Anything, "user1", float64(60), int64(1)).Return(nil)

		outbox.drainOnce(context.Background())

		accounts.AssertExpectations(t)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestOutboxRecover(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	outbox := NewOutbox(db, nil, config.OutboxConfig{Tick: time.Second, BatchSize: 10})

	refund := testRefund()
	payload, _ := json.Marshal(refund)

	// One entry stranded by a crash goes back onto the queue tail.
	redisMock.ExpectLMove(refundProcessingKey, refundQueueKey, "LEFT", "RIGHT").SetVal(string(payload))
	redisMock.ExpectLMove(refundProcessingKey, refundQueueKey, "LEFT", "RIGHT").RedisNil()

	outbox.recover(context.Background())

	assert.NoError(t, redisMock.ExpectationsWereMet())
}
