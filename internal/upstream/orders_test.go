package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuseats/gateway/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order", r.URL.Path)

		var received models.Order
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "user1", received.UserID)
		assert.Equal(t, float64(60), received.TotalAmount)

		received.ID = "order42"
		respond(w, http.StatusCreated, received)
	}))
	defer srv.Close()

	orders := NewOrderClient(newTestClient(srv))
	id, err := orders.Create(context.Background(), models.Order{
		UserID:      "user1",
		VendorID:    "vendor9",
		TotalAmount: 60,
	})
	assert.NoError(t, err)
	assert.Equal(t, "order42", id)
}

func TestOrderCreateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "vendor closed"})
	}))
	defer srv.Close()

	orders := NewOrderClient(newTestClient(srv))
	id, err := orders.Create(context.Background(), models.Order{UserID: "user1"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, id)
}

func TestOrderListByUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "user1", r.URL.Query().Get("userId"))
		respond(w, http.StatusOK, []models.Order{{ID: "order42"}, {ID: "order43"}})
	}))
	defer srv.Close()

	orders := NewOrderClient(newTestClient(srv))
	list, err := orders.ListByUser(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "order42", list[0].ID)
}

func TestOrderUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/order/order42", r.URL.Path)

		var fields map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "ready", fields["status"])

		respond(w, http.StatusOK, models.Order{ID: "order42", Status: "ready"})
	}))
	defer srv.Close()

	orders := NewOrderClient(newTestClient(srv))
	updated, err := orders.Update(context.Background(), "order42", map[string]any{"status": "ready"})
	assert.NoError(t, err)
	assert.Equal(t, "ready", updated.Status)
}
