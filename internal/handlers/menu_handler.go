package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/campuseats/gateway/internal/models"
	"github.com/campuseats/gateway/internal/session"
	"github.com/campuseats/gateway/internal/upstream"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	menus     *upstream.MenuClient
	validator *ValidationHelper
}

func NewMenuHandler(menus *upstream.MenuClient) *MenuHandler {
	return &MenuHandler{
		menus:     menus,
		validator: NewValidationHelper(),
	}
}

// ListByVendor returns the menus of a single vendor for browsing.
func (h *MenuHandler) ListByVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := r.URL.Query().Get("vendorId")
	if vendorID == "" {
		SendErrorResponse(w, "vendorId query parameter required", http.StatusBadRequest, nil)
		return
	}

	menus, err := h.menus.GetByVendor(r.Context(), vendorID)
	if err != nil {
		log.Printf("[MENU] list failed for vendor %s: %v", vendorID, err)
		SendErrorResponse(w, "Failed to fetch menus", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, menus)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	menuID := chi.URLParam(r, "menuId")

	menu, err := h.menus.Get(r.Context(), menuID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Menu not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to fetch menu", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, menu)
}

// Create registers a menu for the calling vendor. The vendor ID always
// comes from the session, not the payload.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var menu models.Menu
	if err := DecodeJSON(w, r, &menu); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	menu.VendorID = sess.AccountID

	if err := h.validator.ValidateStruct(&menu); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	created, err := h.menus.Create(r.Context(), menu)
	if err != nil {
		log.Printf("[MENU] create failed for vendor %s: %v", sess.AccountID, err)
		SendErrorResponse(w, "Failed to create menu", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := r.Context().Value("session").(session.Session)
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	menuID := chi.URLParam(r, "menuId")

	var menu models.Menu
	if err := DecodeJSON(w, r, &menu); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	menu.VendorID = sess.AccountID

	if err := h.validator.ValidateStruct(&menu); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	updated, err := h.menus.Update(r.Context(), menuID, menu)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Menu not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to update menu", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	menuID := chi.URLParam(r, "menuId")

	if err := h.menus.Delete(r.Context(), menuID); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SendErrorResponse(w, "Menu not found", http.StatusNotFound, nil)
			return
		}
		SendErrorResponse(w, "Failed to delete menu", http.StatusBadGateway, nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "menu deleted"})
}
