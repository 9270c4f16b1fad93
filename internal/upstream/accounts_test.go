package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuseats/gateway/internal/config"
	"github.com/campuseats/gateway/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func respond(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

func TestFetchBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/user1", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		respond(w, http.StatusOK, models.Profile{
			ID:      "user1",
			Name:    "Asha Rao",
			Credits: 120.5,
			Version: 3,
		})
	}))
	defer srv.Close()

	accounts := NewAccountClient(newTestClient(srv))
	ctx := WithBearer(context.Background(), "tok-1")

	snap, err := accounts.FetchBalance(ctx, "user1")
	assert.NoError(t, err)
	assert.Equal(t, "user1", snap.AccountID)
	assert.Equal(t, 120.5, snap.Balance)
	assert.Equal(t, int64(3), snap.Version)
	assert.Equal(t, "Asha Rao", snap.Profile.Name)
}

func TestFetchBalanceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	accounts := NewAccountClient(newTestClient(srv))

	_, err := accounts.FetchBalance(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetBalance(t *testing.T) {
	t.Run("carries the observed version as a precondition", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/user/user1/credits", r.URL.Path)
			assert.Equal(t, "3", r.Header.Get("If-Match"))

			var body map[string]float64
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 60.5, body["credits"])

			respond(w, http.StatusOK, nil)
		}))
		defer srv.Close()

		accounts := NewAccountClient(newTestClient(srv))
		err := accounts.SetBalance(context.Background(), "user1", 60.5, 3)
		assert.NoError(t, err)
	})

	t.Run("stale version maps to a conflict", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPreconditionFailed)
		}))
		defer srv.Close()

		accounts := NewAccountClient(newTestClient(srv))
		err := accounts.SetBalance(context.Background(), "user1", 60.5, 3)
		assert.ErrorIs(t, err, ErrVersionConflict)
	})
}

func TestEnvelopeErrors(t *testing.T) {
	t.Run("error status with message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "bad payload"})
		}))
		defer srv.Close()

		accounts := NewAccountClient(newTestClient(srv))
		_, err := accounts.GetUser(context.Background(), "user1")
		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "bad payload")
	})

	t.Run("200 with non-success envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "store offline"})
		}))
		defer srv.Close()

		accounts := NewAccountClient(newTestClient(srv))
		_, err := accounts.GetUser(context.Background(), "user1")
		assert.ErrorIs(t, err, ErrRejected)
	})
}
