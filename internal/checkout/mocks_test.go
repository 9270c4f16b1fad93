package checkout

import (
	"context"

	"github.com/campuseats/gateway/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockAccountStore struct {
	mock.Mock
	calls *[]string
}

func (m *MockAccountStore) FetchBalance(ctx context.Context, accountID string) (models.BalanceSnapshot, error) {
	if m.calls != nil {
		*m.calls = append(*m.calls, "FetchBalance")
	}
	args := m.Called(ctx, accountID)
	return args.Get(0).(models.BalanceSnapshot), args.Error(1)
}

func (m *MockAccountStore) SetBalance(ctx context.Context, accountID string, newBalance float64, expectedVersion int64) error {
	if m.calls != nil {
		*m.calls = append(*m.calls, "SetBalance")
	}
	args := m.Called(ctx, accountID, newBalance, expectedVersion)
	return args.Error(0)
}

type MockOrderStore struct {
	mock.Mock
	calls *[]string
}

func (m *MockOrderStore) Create(ctx context.Context, order models.Order) (string, error) {
	if m.calls != nil {
		*m.calls = append(*m.calls, "CreateOrder")
	}
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

type MockRefundQueue struct {
	mock.Mock
}

func (m *MockRefundQueue) Enqueue(ctx context.Context, refund Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}
