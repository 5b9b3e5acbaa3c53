package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) AdjustCreditScore(ctx context.Context, userID, delta int32) (int32, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(int32), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) SetStatus(ctx context.Context, propertyID int32, status domain.PropertyStatus) error {
	args := m.Called(ctx, propertyID, status)
	return args.Error(0)
}
func (m *MockPropertyRepo) SetStatusForOwner(ctx context.Context, propertyID, ownerID int32, status domain.PropertyStatus) error {
	args := m.Called(ctx, propertyID, ownerID, status)
	return args.Error(0)
}
func (m *MockPropertyRepo) ListByOwner(ctx context.Context, ownerID, page, pageSize int32) ([]domain.Property, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Property), args.Get(1).(int32), args.Error(2)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetDetail(ctx context.Context, id int32) (*domain.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) Confirm(ctx context.Context, bookingID, ownerID int32, depositCents int64, notes string) error {
	args := m.Called(ctx, bookingID, ownerID, depositCents, notes)
	return args.Error(0)
}
func (m *MockBookingRepo) RejectByOwner(ctx context.Context, bookingID, ownerID int32, reason string) error {
	args := m.Called(ctx, bookingID, ownerID, reason)
	return args.Error(0)
}
func (m *MockBookingRepo) CancelByOwner(ctx context.Context, bookingID, ownerID int32) error {
	args := m.Called(ctx, bookingID, ownerID)
	return args.Error(0)
}
func (m *MockBookingRepo) CancelByStudent(ctx context.Context, bookingID, studentID int32) error {
	args := m.Called(ctx, bookingID, studentID)
	return args.Error(0)
}
func (m *MockBookingRepo) MarkPaid(ctx context.Context, bookingID int32) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}
func (m *MockBookingRepo) RevertToConfirmed(ctx context.Context, bookingID int32, note string) error {
	args := m.Called(ctx, bookingID, note)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByStudent(ctx context.Context, studentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, studentID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetDetailForCaller(ctx context.Context, paymentID, callerID int32, isAdmin bool) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, paymentID, callerID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}
func (m *MockPaymentRepo) ExistsPending(ctx context.Context, bookingID int32) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) MarkCompleted(ctx context.Context, paymentID, callerID int32, isAdmin bool, notes string) error {
	args := m.Called(ctx, paymentID, callerID, isAdmin, notes)
	return args.Error(0)
}
func (m *MockPaymentRepo) MarkFailed(ctx context.Context, paymentID, callerID int32, isAdmin bool, reason string) error {
	args := m.Called(ctx, paymentID, callerID, isAdmin, reason)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListForOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.PaymentDetail, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.PaymentDetail), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentRepo) ListMethods(ctx context.Context, userID int32) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockCreditRepo
type MockCreditRepo struct {
	mock.Mock
}

func (m *MockCreditRepo) Append(ctx context.Context, entry *domain.CreditScoreEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockCreditRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditScoreEntry, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.CreditScoreEntry), args.Get(1).(int32), args.Error(2)
}

// MockActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Append(ctx context.Context, entry *domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.ActivityLog, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.ActivityLog), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRaw(ctx context.Context, email, subject, body string) error {
	args := m.Called(ctx, email, subject, body)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingApprovedNotification(ctx context.Context, email, name, propertyTitle string) error {
	args := m.Called(ctx, email, name, propertyTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejectedNotification(ctx context.Context, email, name, propertyTitle, reason string) error {
	args := m.Called(ctx, email, name, propertyTitle, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentConfirmedNotification(ctx context.Context, email, name string, bookingID int32, amountCents int64) error {
	args := m.Called(ctx, email, name, bookingID, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentRejectedNotification(ctx context.Context, email, name string, bookingID int32, reason string) error {
	args := m.Called(ctx, email, name, bookingID, reason)
	return args.Error(0)
}

// fakeTxRunner hands the provided repository bundle straight to fn, so
// service tests see the same side-effect ordering as a real transaction.
type fakeTxRunner struct {
	repos repository.Repositories
	// Calls counts WithinTx invocations so tests can assert no transaction
	// was opened on early validation failures.
	Calls int
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	f.Calls++
	return fn(&f.repos)
}

func newTestRepos(users *MockUserRepo, properties *MockPropertyRepo, bookings *MockBookingRepo, payments *MockPaymentRepo, notes *MockNotificationRepo, credit *MockCreditRepo, activity *MockActivityRepo) repository.Repositories {
	return repository.Repositories{
		Users:         users,
		Properties:    properties,
		Bookings:      bookings,
		Payments:      payments,
		Notifications: notes,
		Credit:        credit,
		Activity:      activity,
	}
}
