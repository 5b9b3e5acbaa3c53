package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/security"
	"unistay-backend/internal/service"
)

type PropertyHandler struct {
	propertySvc service.PropertyService
}

func NewPropertyHandler(propertySvc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc}
}

// Create adds a new listing for the calling owner.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/owner/properties", "error", "Invalid CSRF token")
		return
	}

	_, err := h.propertySvc.CreateProperty(r.Context(), rc.UserID,
		r.FormValue("title"), r.FormValue("address"), formInt64(r, "monthly_rent_cents"))
	if err != nil {
		redirectWithFlash(w, r, "/owner/properties", "error", flashForError(err, "Error creating property"))
		return
	}
	redirectWithFlash(w, r, "/owner/properties", "success", "Property created")
}

func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	page, pageSize := queryPage(r)

	properties, total, err := h.propertySvc.ListMyProperties(r.Context(), rc.UserID, page, pageSize)
	if err != nil {
		writeWorkflowError(w, err, "Error listing properties")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: properties, Total: total, Page: page})
}

// SetStatus lists or unlists a property; admins may also mark it reported.
func (h *PropertyHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	propertyID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/owner/properties", "error", "Invalid CSRF token")
		return
	}

	status := domain.PropertyStatus(r.FormValue("status"))
	if err := h.propertySvc.SetListingStatus(r.Context(), int32(propertyID), rc.UserID, rc.Role, status); err != nil {
		redirectWithFlash(w, r, "/owner/properties", "error", flashForError(err, "Error updating property"))
		return
	}
	redirectWithFlash(w, r, "/owner/properties", "success", "Property updated")
}
