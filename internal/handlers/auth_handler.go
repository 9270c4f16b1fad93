package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/campuseats/gateway/internal/models"
	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
)

type AuthHandler struct {
	auth      *upstream.AuthClient
	accounts  *upstream.AccountClient
	sessions  *session.Store
	validator *ValidationHelper
}

func NewAuthHandler(auth *upstream.AuthClient, accounts *upstream.AccountClient, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		accounts:  accounts,
		sessions:  sessions,
		validator: NewValidationHelper(),
	}
}

// Signup registers a new account. The role is always "user"; vendor and
// admin accounts are provisioned through the admin surface.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string              `json:"name" validate:"required"`
		AdmissionNumber string              `json:"admissionNumber" validate:"required"`
		Email           string              `json:"email" validate:"required,email"`
		Password        string              `json:"password" validate:"required,min=8"`
		UserCategory    models.UserCategory `json:"userCategory" validate:"required,oneof=management teaching_staff non_teaching_staff student union"`
		MobileNumber    string              `json:"mobileNumber" validate:"required"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	profile, err := h.accounts.CreateUser(r.Context(), models.CreateUserRequest{
		Name:            req.Name,
		AdmissionNumber: req.AdmissionNumber,
		Email:           req.Email,
		Password:        req.Password,
		Role:            "user",
		UserCategory:    req.UserCategory,
		MobileNumber:    req.MobileNumber,
	})
	if err != nil {
		if errors.Is(err, upstream.ErrRejected) {
			SendErrorResponse(w, "Signup was rejected", http.StatusConflict, nil)
			return
		}
		log.Printf("[AUTH] signup failed: %v", err)
		SendErrorResponse(w, "Signup service unavailable", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusCreated, profile)
}

// Login proxies the credential check upstream and, on success, caches the
// session profile so later requests carry an explicit session object.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := DecodeJSON(w, r, &req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, upstream.ErrRejected) || errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
			return
		}
		log.Printf("[AUTH] login failed: %v", err)
		SendErrorResponse(w, "Login service unavailable", http.StatusBadGateway, nil)
		return
	}

	sess := session.FromProfile(result.User)
	if err := h.sessions.Put(r.Context(), result.AccessToken, sess); err != nil {
		log.Printf("[AUTH] session store failed for %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Could not establish session", http.StatusInternalServerError, nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// Logout drops the cached session for the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		SendErrorResponse(w, "Authorization header required", http.StatusUnauthorized, nil)
		return
	}

	if err := h.sessions.Delete(r.Context(), parts[1]); err != nil {
		log.Printf("[AUTH] logout failed: %v", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
