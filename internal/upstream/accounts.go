package upstream

import (
	"context"
	"net/http"
	"strconv"

	"github.com/campuseats/gateway/internal/models"
)

// AccountClient talks to the account store. Balance writes carry the
// version observed at fetch time via If-Match, so a concurrent mutation
// fails the precondition instead of silently overwriting.
type AccountClient struct {
	c *Client
}

func NewAccountClient(c *Client) *AccountClient {
	return &AccountClient{c: c}
}

// FetchBalance reads the account fresh and returns the balance together
// with the version it was observed at.
func (a *AccountClient) FetchBalance(ctx context.Context, accountID string) (models.BalanceSnapshot, error) {
	var p models.Profile
	if err := a.c.do(ctx, http.MethodGet, "/user/"+accountID, nil, nil, &p); err != nil {
		return models.BalanceSnapshot{}, err
	}
	return models.BalanceSnapshot{
		AccountID: accountID,
		Balance:   p.Credits,
		Version:   p.Version,
		Profile:   p,
	}, nil
}

// SetBalance writes an absolute balance, conditional on expectedVersion.
// Returns ErrVersionConflict when another writer got there first.
func (a *AccountClient) SetBalance(ctx context.Context, accountID string, newBalance float64, expectedVersion int64) error {
	headers := map[string]string{"If-Match": strconv.FormatInt(expectedVersion, 10)}
	body := map[string]float64{"credits": newBalance}
	return a.c.do(ctx, http.MethodPut, "/user/"+accountID+"/credits", headers, body, nil)
}

func (a *AccountClient) GetUser(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := a.c.do(ctx, http.MethodGet, "/user/"+userID, nil, nil, &p)
	return p, err
}

func (a *AccountClient) ListUsers(ctx context.Context) ([]models.Profile, error) {
	var users []models.Profile
	err := a.c.do(ctx, http.MethodGet, "/user", nil, nil, &users)
	return users, err
}

func (a *AccountClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.Profile, error) {
	var p models.Profile
	err := a.c.do(ctx, http.MethodPost, "/user", nil, req, &p)
	return p, err
}

func (a *AccountClient) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (models.Profile, error) {
	var p models.Profile
	err := a.c.do(ctx, http.MethodPut, "/user/"+userID, nil, req, &p)
	return p, err
}

func (a *AccountClient) DeleteUser(ctx context.Context, userID string) error {
	return a.c.do(ctx, http.MethodDelete, "/user/"+userID, nil, nil, nil)
}
