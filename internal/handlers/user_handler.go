package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
	"github.com/campuseats/gateway/internal/upstream"
	"github.com/go-chi/chi/v5"
)

// UserHandler exposes the admin dashboard's user management. All routes
// sit behind the admin role gate.
type UserHandler struct {
	accounts  *upstream.AccountClient
	validator *ValidationHelper
}

func NewUserHandler(accounts *upstream.AccountClient) *UserHandler {
	return &UserHandler{
		accounts:  accounts,
		validator: NewValidationHelper(),
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		log.Printf("[USER] list failed: %v", err)
		SendErrorResponse(w, "Failed to fetch users", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.accounts.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to fetch user", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	created, err := h.accounts.CreateUser(r.Context(), req)
	if err != nil {
		log.Printf("[USER] create failed: %v", err)
		SendErrorResponse(w, "Failed to create user", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req models.UpdateUserRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	updated, err := h.accounts.UpdateUser(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to update user", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.accounts.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to delete user", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
