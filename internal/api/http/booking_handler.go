package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/security"
	"unistay-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// View renders the booking detail for its student, the property owner or an
// admin; anyone else gets the opaque not-found.
func (h *BookingHandler) View(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	detail, err := h.bookingSvc.ViewBooking(r.Context(), int32(bookingID), rc.UserID, rc.Role)
	if err != nil {
		writeWorkflowError(w, err, "Error loading booking")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	page, pageSize := queryPage(r)

	bookings, total, err := h.bookingSvc.ListBookings(r.Context(), rc.UserID, rc.Role, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeWorkflowError(w, err, "Error listing bookings")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total, Page: page})
}

// Request files a student's booking request for an available property.
func (h *BookingHandler) Request(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/bookings", "error", "Invalid CSRF token")
		return
	}

	_, err := h.bookingSvc.RequestBooking(r.Context(),
		formInt32(r, "property_id"), rc.UserID,
		r.FormValue("start_date"), r.FormValue("end_date"))
	if err != nil {
		redirectWithFlash(w, r, "/bookings", "error", flashForError(err, "Error requesting booking"))
		return
	}
	redirectWithFlash(w, r, "/bookings", "success", "Booking requested")
}

// Approve handles the owner's approval form POST.
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/owner/bookings", "error", "Invalid CSRF token")
		return
	}

	bookingID := formInt32(r, "booking_id")
	err := h.bookingSvc.ApproveBooking(r.Context(), bookingID, rc.UserID,
		formInt64(r, "deposit_amount"), r.FormValue("approval_notes"), rc.IP)
	if err != nil {
		redirectWithFlash(w, r, "/owner/bookings", "error", flashForError(err, "Error processing booking"))
		return
	}
	redirectWithFlash(w, r, "/owner/bookings", "success", "Booking approved")
}

// Reject handles the owner's rejection form POST.
func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/owner/bookings", "error", "Invalid CSRF token")
		return
	}

	bookingID := formInt32(r, "booking_id")
	err := h.bookingSvc.RejectBooking(r.Context(), bookingID, rc.UserID,
		r.FormValue("reason"), r.FormValue("custom_reason"), rc.IP)
	if err != nil {
		redirectWithFlash(w, r, "/owner/bookings", "error", flashForError(err, "Error processing booking"))
		return
	}
	redirectWithFlash(w, r, "/owner/bookings", "success", "Booking rejected")
}

// UpdateStatus is the generic status-change POST used by the detail view.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	rc := FromContext(r.Context())
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := security.VerifyCSRF(rc.CSRFToken, r.FormValue("csrf_token")); err != nil {
		redirectWithFlash(w, r, "/bookings", "error", "Invalid CSRF token")
		return
	}

	action := domain.BookingAction(r.FormValue("action"))
	if err := h.bookingSvc.UpdateBookingStatus(r.Context(), int32(bookingID), action, rc.UserID, rc.Role, rc.IP); err != nil {
		redirectWithFlash(w, r, "/bookings", "error", flashForError(err, "Error updating booking"))
		return
	}
	redirectWithFlash(w, r, "/bookings", "success", "Booking updated")
}
