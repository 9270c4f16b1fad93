package upstream

import (
	"context"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
)

// MenuClient talks to the menu store.
type MenuClient struct {
	c *Client
}

func NewMenuClient(c *Client) *MenuClient {
	return &MenuClient{c: c}
}

func (m *MenuClient) Create(ctx context.Context, menu models.Menu) (models.Menu, error) {
	var created models.Menu
	err := m.c.do(ctx, http.MethodPost, "/menu", nil, menu, &created)
	return created, err
}

func (m *MenuClient) Get(ctx context.Context, menuID string) (models.Menu, error) {
	var menu models.Menu
	err := m.c.do(ctx, http.MethodGet, "/menu/"+menuID, nil, nil, &menu)
	return menu, err
}

func (m *MenuClient) GetByVendor(ctx context.Context, vendorID string) ([]models.Menu, error) {
	var menus []models.Menu
	err := m.c.do(ctx, http.MethodGet, "/menu?vendorId="+vendorID, nil, nil, &menus)
	return menus, err
}

func (m *MenuClient) Update(ctx context.Context, menuID string, menu models.Menu) (models.Menu, error) {
	var updated models.Menu
	err := m.c.do(ctx, http.MethodPut, "/menu/"+menuID, nil, menu, &updated)
	return updated, err
}

func (m *MenuClient) Delete(ctx context.Context, menuID string) error {
	return m.c.do(ctx, http.MethodDelete, "/menu/"+menuID, nil, nil, nil)
}
