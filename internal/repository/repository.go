package repository

import (
	"context"

	"unistay-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Deactivate(ctx context.Context, id int32) error
	// AdjustCreditScore applies delta clamped to the valid score range and
	// returns the resulting score.
	AdjustCreditScore(ctx context.Context, userID, delta int32) (int32, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int32) (*domain.Property, error)
	SetStatus(ctx context.Context, propertyID int32, status domain.PropertyStatus) error
	// SetStatusForOwner is the owner-scoped variant used by list/unlist.
	SetStatusForOwner(ctx context.Context, propertyID, ownerID int32, status domain.PropertyStatus) error
	ListByOwner(ctx context.Context, ownerID, page, pageSize int32) ([]domain.Property, int32, error)
}

// BookingRepository transitions are conditional UPDATEs carrying both the
// status precondition and the ownership predicate; zero affected rows comes
// back as a tagged domain error, never as a silent no-op.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetDetail(ctx context.Context, id int32) (*domain.BookingDetail, error)
	Confirm(ctx context.Context, bookingID, ownerID int32, depositCents int64, notes string) error
	RejectByOwner(ctx context.Context, bookingID, ownerID int32, reason string) error
	CancelByOwner(ctx context.Context, bookingID, ownerID int32) error
	CancelByStudent(ctx context.Context, bookingID, studentID int32) error
	MarkPaid(ctx context.Context, bookingID int32) error
	// RevertToConfirmed moves a pending booking back to confirmed, appending
	// note to its admin notes. A booking in any other state is left alone.
	RevertToConfirmed(ctx context.Context, bookingID int32, note string) error
	ListByStudent(ctx context.Context, studentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	// GetDetailForCaller resolves the payment with its booking/property/student
	// chain, scoped so a caller who is neither the property owner nor an admin
	// gets nothing back.
	GetDetailForCaller(ctx context.Context, paymentID, callerID int32, isAdmin bool) (*domain.PaymentDetail, error)
	// ExistsPending reports whether the booking already has a live payment
	// attempt. A booking carries at most one pending payment at a time.
	ExistsPending(ctx context.Context, bookingID int32) (bool, error)
	MarkCompleted(ctx context.Context, paymentID, callerID int32, isAdmin bool, notes string) error
	MarkFailed(ctx context.Context, paymentID, callerID int32, isAdmin bool, reason string) error
	ListForOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.PaymentDetail, int32, error)
	ListMethods(ctx context.Context, userID int32) ([]domain.PaymentMethod, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type CreditHistoryRepository interface {
	Append(ctx context.Context, entry *domain.CreditScoreEntry) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditScoreEntry, int32, error)
}

type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.ActivityLog, int32, error)
}

// Repositories bundles every repository over one database handle. Inside
// WithinTx the bundle is bound to the transaction instead.
type Repositories struct {
	Users         UserRepository
	Properties    PropertyRepository
	Bookings      BookingRepository
	Payments      PaymentRepository
	Notifications NotificationRepository
	Credit        CreditHistoryRepository
	Activity      ActivityLogRepository
}

// TxRunner runs fn inside a single database transaction. fn returning an
// error rolls back everything it did through r.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
}
