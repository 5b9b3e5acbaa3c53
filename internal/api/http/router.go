package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"unistay-backend/internal/security"
	"unistay-backend/internal/service"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Property     *PropertyHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(
	authSvc service.AuthService,
	bookingSvc service.BookingService,
	paymentSvc service.PaymentService,
	propertySvc service.PropertyService,
	notificationSvc service.NotificationService,
	adminSvc service.AdminService,
) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(authSvc),
		Booking:      NewBookingHandler(bookingSvc),
		Payment:      NewPaymentHandler(paymentSvc),
		Property:     NewPropertyHandler(propertySvc),
		Notification: NewNotificationHandler(notificationSvc),
		Admin:        NewAdminHandler(adminSvc),
	}
}

// NewRouter mounts the public auth endpoints and the authenticated API
// surface under /api/v1.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/request", h.Booking.Request).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.View).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/status", h.Booking.UpdateStatus).Methods(http.MethodPost)
	authed.HandleFunc("/owner/bookings/approve", h.Booking.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/owner/bookings/reject", h.Booking.Reject).Methods(http.MethodPost)

	authed.HandleFunc("/payments/submit", h.Payment.Submit).Methods(http.MethodPost)
	authed.HandleFunc("/owner/payments", h.Payment.List).Methods(http.MethodGet)
	authed.HandleFunc("/owner/payments/process", h.Payment.Process).Methods(http.MethodPost)
	authed.HandleFunc("/payment-methods", h.Payment.ListMethods).Methods(http.MethodGet)

	authed.HandleFunc("/owner/properties", h.Property.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/owner/properties", h.Property.Create).Methods(http.MethodPost)
	authed.HandleFunc("/owner/properties/{id:[0-9]+}/status", h.Property.SetStatus).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/admin/users/{id:[0-9]+}", h.Admin.GetUser).Methods(http.MethodGet)
	authed.HandleFunc("/admin/users/{id:[0-9]+}/activity", h.Admin.UserActivity).Methods(http.MethodGet)
	authed.HandleFunc("/admin/users/{id:[0-9]+}/credit-history", h.Admin.CreditHistory).Methods(http.MethodGet)
	authed.HandleFunc("/admin/users/{id:[0-9]+}/deactivate", h.Admin.DeactivateUser).Methods(http.MethodPost)

	return r
}
