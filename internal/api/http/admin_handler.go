package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	rc := FromContext(r.Context())
	if rc.Role != domain.UserRoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, err := h.adminSvc.GetUser(r.Context(), int32(userID))
	if err != nil {
		writeWorkflowError(w, err, "Error loading user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	page, pageSize := queryPage(r)

	entries, total, err := h.adminSvc.ListUserActivity(r.Context(), int32(userID), page, pageSize)
	if err != nil {
		writeWorkflowError(w, err, "Error listing activity")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: entries, Total: total, Page: page})
}

func (h *AdminHandler) CreditHistory(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	page, pageSize := queryPage(r)

	entries, total, err := h.adminSvc.ListCreditHistory(r.Context(), int32(userID), page, pageSize)
	if err != nil {
		writeWorkflowError(w, err, "Error listing credit history")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: entries, Total: total, Page: page})
}

func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.adminSvc.DeactivateUser(r.Context(), int32(userID)); err != nil {
		writeWorkflowError(w, err, "Error deactivating user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
