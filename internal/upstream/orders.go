package upstream

import (
	"context"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
)

// OrderClient talks to the order store.
type OrderClient struct {
	c *Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

// Create submits the order record. Ownership transfers to the order store
// on acceptance; only the generated order ID comes back.
func (o *OrderClient) Create(ctx context.Context, order models.Order) (string, error) {
	var created models.Order
	if err := o.c.do(ctx, http.MethodPost, "/order", nil, order, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (o *OrderClient) Get(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := o.c.do(ctx, http.MethodGet, "/order/"+orderID, nil, nil, &order)
	return order, err
}

func (o *OrderClient) Update(ctx context.Context, orderID string, fields map[string]any) (models.Order, error) {
	var order models.Order
	err := o.c.do(ctx, http.MethodPut, "/order/"+orderID, nil, fields, &order)
	return order, err
}

func (o *OrderClient) Delete(ctx context.Context, orderID string) error {
	return o.c.do(ctx, http.MethodDelete, "/order/"+orderID, nil, nil, nil)
}

func (o *OrderClient) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := o.c.do(ctx, http.MethodGet, "/order?userId="+userID, nil, nil, &orders)
	return orders, err
}

func (o *OrderClient) ListByVendor(ctx context.Context, vendorID string) ([]models.Order, error) {
	var orders []models.Order
	err := o.c.do(ctx, http.MethodGet, "/order?vendorId="+vendorID, nil, nil, &orders)
	return orders, err
}
