package service

import (
	"context"

	"unistay-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, role domain.UserRole, name, email, phone, password string) (*domain.User, error)
	// Login returns the signed access token and the session-bound CSRF token.
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
}

type BookingService interface {
	// RequestBooking files a student's booking request against an available
	// property and holds the property while the owner decides.
	RequestBooking(ctx context.Context, propertyID, studentID int32, startDate, endDate string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, bookingID, ownerID int32, depositCents int64, notes, ip string) error
	RejectBooking(ctx context.Context, bookingID, ownerID int32, reason, customReason, ip string) error
	ViewBooking(ctx context.Context, bookingID, requesterID int32, requesterRole domain.UserRole) (*domain.BookingDetail, error)
	UpdateBookingStatus(ctx context.Context, bookingID int32, action domain.BookingAction, requesterID int32, requesterRole domain.UserRole, ip string) error
	ListBookings(ctx context.Context, userID int32, role domain.UserRole, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PaymentService interface {
	// SubmitPayment records a student's deposit payment for their confirmed
	// booking; it stays pending until the owner reviews it.
	SubmitPayment(ctx context.Context, bookingID, studentID int32, amountCents int64, methodID *int32) (*domain.Payment, error)
	ConfirmPayment(ctx context.Context, paymentID, callerID int32, callerRole domain.UserRole, notes, ip string) (*domain.PaymentDetail, error)
	RejectPayment(ctx context.Context, paymentID, callerID int32, callerRole domain.UserRole, reason, otherReason, ip string) (*domain.PaymentDetail, error)
	ListPayments(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.PaymentDetail, int32, error)
	ListPaymentMethods(ctx context.Context, userID int32) ([]domain.PaymentMethod, error)
}

type PropertyService interface {
	CreateProperty(ctx context.Context, ownerID int32, title, address string, monthlyRentCents int64) (*domain.Property, error)
	ListMyProperties(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error)
	// SetListingStatus lists/unlists an owner's property; admins may also
	// mark a property reported.
	SetListingStatus(ctx context.Context, propertyID, callerID int32, callerRole domain.UserRole, status domain.PropertyStatus) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type AdminService interface {
	GetUser(ctx context.Context, userID int32) (*domain.User, error)
	ListUserActivity(ctx context.Context, userID int32, page, pageSize int32) ([]domain.ActivityLog, int32, error)
	ListCreditHistory(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditScoreEntry, int32, error)
	DeactivateUser(ctx context.Context, userID int32) error
}

type EmailService interface {
	// SendRaw sends a plain-text email as-is; scheduled jobs compose their
	// own bodies.
	SendRaw(ctx context.Context, email, subject, body string) error
	SendBookingApprovedNotification(ctx context.Context, email, name, propertyTitle string) error
	SendBookingRejectedNotification(ctx context.Context, email, name, propertyTitle, reason string) error
	SendPaymentConfirmedNotification(ctx context.Context, email, name string, bookingID int32, amountCents int64) error
	SendPaymentRejectedNotification(ctx context.Context, email, name string, bookingID int32, reason string) error
}
