package http

import (
	"net/http"

	"unistay-backend/internal/security"
	"unistay-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Submit handles the student's deposit form for a confirmed booking.
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/bookings", "error", "Invalid CSRF token")
		return
	}

	var methodID *int32
	if v := r.FormValue("payment_method_id"); v != "" {
		id := formInt32(r, "payment_method_id")
		methodID = &id
	}

	_, err := h.paymentSvc.SubmitPayment(r.Context(),
		formInt32(r, "booking_id"), rc.UserID, formInt64(r, "amount_cents"), methodID)
	if err != nil {
		redirectWithFlash(w, r, "/bookings", "error", flashForError(err, "Error submitting payment"))
		return
	}
	redirectWithFlash(w, r, "/bookings", "success", "Payment submitted")
}

// Process handles the owner's payment review form. The action field selects
// confirm or reject; both run their side effects in one transaction.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/owner/payments", "error", "Invalid CSRF token")
		return
	}

	paymentID := formInt32(r, "payment_id")

	var err error
	switch r.FormValue("action") {
	case "confirm":
		_, err = h.paymentSvc.ConfirmPayment(r.Context(), paymentID, rc.UserID, rc.Role,
			r.FormValue("notes"), rc.IP)
		if err == nil {
			redirectWithFlash(w, r, "/owner/payments", "success", "Payment confirmed")
			return
		}
	case "reject":
		_, err = h.paymentSvc.RejectPayment(r.Context(), paymentID, rc.UserID, rc.Role,
			r.FormValue("reason"), r.FormValue("reason_other"), rc.IP)
		if err == nil {
			redirectWithFlash(w, r, "/owner/payments", "success", "Payment rejected")
			return
		}
	default:
		redirectWithFlash(w, r, "/owner/payments", "error", "Unknown action")
		return
	}

	redirectWithFlash(w, r, "/owner/payments", "error", flashForError(err, "Error processing payment"))
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	page, pageSize := queryPage(r)

	payments, total, err := h.paymentSvc.ListPayments(r.Context(), rc.UserID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeWorkflowError(w, err, "Error listing payments")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: payments, Total: total, Page: page})
}

func (h *PaymentHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())

	methods, err := h.paymentSvc.ListPaymentMethods(r.Context(), rc.UserID)
	if err != nil {
		writeWorkflowError(w, err, "Error listing payment methods")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": methods})
}
