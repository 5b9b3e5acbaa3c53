package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"unistay-backend/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	page, pageSize := queryPage(r)

	notifications, total, err := h.notificationSvc.GetNotifications(r.Context(), rc.UserID, page, pageSize)
	if err != nil {
		writeWorkflowError(w, err, "Error listing notifications")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: notifications, Total: total, Page: page})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	notificationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.notificationSvc.MarkAsRead(r.Context(), rc.UserID, int32(notificationID)); err != nil {
		writeWorkflowError(w, err, "Error updating notification")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
