package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campuseats/gateway/internal/config"
	"github.com/campuseats/gateway/internal/models"
	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
	"github.com/stretchr/testify/assert"
)

func creditsHandlerAgainst(t *testing.T, accountStore http.HandlerFunc) (*CreditsHandler, func()) {
	t.Helper()
	srv := httptest.NewServer(accountStore)
	client := upstream.NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	h := NewCreditsHandler(nil, upstream.NewAccountClient(client))
	return h, srv.Close
}

func confirmRequest(t *testing.T, amount float64) *http.Request {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"sessionId": "cs_123", "amount": amount})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/credits/confirm", bytes.NewReader(body))
	sess := session.Session{AccountID: "user1", Name: "Asha Rao"}
	return req.WithContext(context.WithValue(req.Context(), "session", sess))
}

func TestConfirmTopUp(t *testing.T) {
	t.Run("credits land on the live balance", func(t *testing.T) {
		h, closeSrv := creditsHandlerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode(map[string]any{
					"status": "success",
					"data":   models.Profile{ID: "user1", Credits: 40, Version: 5},
				})
			case http.MethodPut:
				assert.Equal(t, "5", r.Header.Get("If-Match"))
				var body map[string]float64
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, float64(140), body["credits"])
				json.NewEncoder(w).Encode(map[string]any{"status": "success"})
			}
		})
		defer closeSrv()

		rec := httptest.NewRecorder()
		h.ConfirmTopUp(rec, confirmRequest(t, 100))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data map[string]float64 `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(140), resp.Data["credits"])
	})

	t.Run("version conflict refetches and retries", func(t *testing.T) {
		var puts int32
		h, closeSrv := creditsHandlerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				// Version moves between the two fetches.
				version := 5 + atomic.LoadInt32(&puts)
				json.NewEncoder(w).Encode(map[string]any{
					"status": "success",
					"data":   models.Profile{ID: "user1", Credits: 40, Version: int64(version)},
				})
			case http.MethodPut:
				if atomic.AddInt32(&puts, 1) == 1 {
					w.WriteHeader(http.StatusPreconditionFailed)
					return
				}
				assert.Equal(t, "6", r.Header.Get("If-Match"))
				json.NewEncoder(w).Encode(map[string]any{"status": "success"})
			}
		})
		defer closeSrv()

		rec := httptest.NewRecorder()
		h.ConfirmTopUp(rec, confirmRequest(t, 100))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int32(2), atomic.LoadInt32(&puts))
	})

	t.Run("persistent conflicts give up with 409", func(t *testing.T) {
		h, closeSrv := creditsHandlerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode(map[string]any{
					"status": "success",
					"data":   models.Profile{ID: "user1", Credits: 40, Version: 5},
				})
			case http.MethodPut:
				w.WriteHeader(http.StatusPreconditionFailed)
			}
		})
		defer closeSrv()

		rec := httptest.NewRecorder()
		h.ConfirmTopUp(rec, confirmRequest(t, 100))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		h, closeSrv := creditsHandlerAgainst(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Fail(t, "account store must not be called")
		})
		defer closeSrv()

		rec := httptest.NewRecorder()
		h.ConfirmTopUp(rec, confirmRequest(t, 0))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
