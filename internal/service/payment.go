package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/logger"
	"unistay-backend/internal/repository"
)

type paymentService struct {
	store    repository.TxRunner
	payments repository.PaymentRepository
	emailSvc EmailService
}

func NewPaymentService(store repository.TxRunner, payments repository.PaymentRepository, emailSvc EmailService) PaymentService {
	return &paymentService{
		store:    store,
		payments: payments,
		emailSvc: emailSvc,
	}
}

// SubmitPayment records the student's deposit for a confirmed booking. The
// payment enters pending and the owner is notified; the amount is a recorded
// fact from the upstream transfer, not a charge this system initiates.
func (s *paymentService) SubmitPayment(ctx context.Context, bookingID, studentID int32, amountCents int64, methodID *int32) (*domain.Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	var payment *domain.Payment
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		d, err := r.Bookings.GetDetail(ctx, bookingID)
		if err != nil {
			return err
		}
		if d.UserID != studentID {
			return domain.ErrWrongOwner
		}
		if d.Status != domain.BookingStatusConfirmed {
			return domain.ErrWrongState
		}
		// One live attempt per booking. A second submit while the first is
		// still pending would leave an orphaned payment behind.
		pending, err := r.Payments.ExistsPending(ctx, bookingID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrWrongState
		}

		p := &domain.Payment{
			BookingID:       bookingID,
			AmountCents:     amountCents,
			Status:          domain.PaymentStatusPending,
			TransactionID:   uuid.NewString(),
			PaymentMethodID: methodID,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		note := &domain.Notification{
			UserID:     d.PropertyOwner,
			Type:       domain.NotificationTypePayment,
			Message:    fmt.Sprintf("Payment submitted for booking #%d - %s", bookingID, formatAmount(amountCents)),
			EntityType: "payment",
			EntityID:   &p.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		payment = p
		return nil
	})
	if err != nil {
		if domain.IsNotFoundOrUnauthorized(err) {
			logger.WorkflowDenied("booking", bookingID, err, "student_id", studentID)
		}
		return nil, err
	}

	logger.Info("Payment submitted", "payment_id", payment.ID, "booking_id", bookingID, "student_id", studentID)
	return payment, nil
}

// ConfirmPayment settles a pending payment: payment completed, booking paid,
// property paid, student notified, credit score rewarded, action logged.
// Everything runs in one transaction; any failure leaves the payment pending.
func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID, callerID int32, callerRole domain.UserRole, notes, ip string) (*domain.PaymentDetail, error) {
	isAdmin := callerRole == domain.UserRoleAdmin

	var detail *domain.PaymentDetail
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		d, err := r.Payments.GetDetailForCaller(ctx, paymentID, callerID, isAdmin)
		if err != nil {
			return err
		}

		if err := r.Payments.MarkCompleted(ctx, paymentID, callerID, isAdmin, notes); err != nil {
			return err
		}
		if err := r.Bookings.MarkPaid(ctx, d.BookingID); err != nil {
			return err
		}
		if err := r.Properties.SetStatus(ctx, d.PropertyID, domain.PropertyStatusPaid); err != nil {
			return err
		}

		note := &domain.Notification{
			UserID:     d.StudentID,
			Type:       domain.NotificationTypePayment,
			Message:    fmt.Sprintf("Payment confirmed for booking #%d - %s", d.BookingID, formatAmount(d.AmountCents)),
			EntityType: "payment",
			EntityID:   &d.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		newScore, err := r.Users.AdjustCreditScore(ctx, d.StudentID, domain.OnTimePaymentBonus)
		if err != nil {
			return err
		}
		entry := &domain.CreditScoreEntry{
			UserID:      d.StudentID,
			ScoreChange: domain.OnTimePaymentBonus,
			NewScore:    newScore,
			Reason:      fmt.Sprintf("On-time payment for booking #%d", d.BookingID),
		}
		if err := r.Credit.Append(ctx, entry); err != nil {
			return err
		}

		audit := &domain.ActivityLog{
			UserID:     callerID,
			Action:     domain.ActionConfirmPayment,
			EntityType: "payment",
			EntityID:   paymentID,
			IPAddress:  ip,
		}
		if err := r.Activity.Append(ctx, audit); err != nil {
			return err
		}

		detail = d
		return nil
	})
	if err != nil {
		if domain.IsNotFoundOrUnauthorized(err) {
			logger.WorkflowDenied("payment", paymentID, err, "caller_id", callerID)
		}
		return nil, err
	}

	logger.WorkflowTransition("payment", paymentID,
		string(domain.PaymentStatusPending), string(domain.PaymentStatusCompleted),
		"booking_id", detail.BookingID, "caller_id", callerID)

	// Delivery is best-effort; the transaction already committed.
	if err := s.emailSvc.SendPaymentConfirmedNotification(ctx, detail.StudentEmail, detail.StudentName, detail.BookingID, detail.AmountCents); err != nil {
		logger.Warn("Payment confirmation email failed", "payment_id", paymentID, "error", err)
	}

	return detail, nil
}

// RejectPayment marks a pending payment failed and puts its booking back to
// confirmed (when still pending), leaving the student's credit untouched.
func (s *paymentService) RejectPayment(ctx context.Context, paymentID, callerID int32, callerRole domain.UserRole, reason, otherReason, ip string) (*domain.PaymentDetail, error) {
	effectiveReason, err := ResolveReason(reason, otherReason)
	if err != nil {
		return nil, err
	}
	isAdmin := callerRole == domain.UserRoleAdmin

	var detail *domain.PaymentDetail
	err = s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		d, err := r.Payments.GetDetailForCaller(ctx, paymentID, callerID, isAdmin)
		if err != nil {
			return err
		}

		if err := r.Payments.MarkFailed(ctx, paymentID, callerID, isAdmin, effectiveReason); err != nil {
			return err
		}
		if err := r.Bookings.RevertToConfirmed(ctx, d.BookingID, "Payment rejected: "+effectiveReason); err != nil {
			return err
		}

		note := &domain.Notification{
			UserID:     d.StudentID,
			Type:       domain.NotificationTypePayment,
			Message:    fmt.Sprintf("Payment rejected for booking #%d. Reason: %s", d.BookingID, effectiveReason),
			EntityType: "payment",
			EntityID:   &d.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		audit := &domain.ActivityLog{
			UserID:     callerID,
			Action:     domain.ActionRejectPayment,
			EntityType: "payment",
			EntityID:   paymentID,
			IPAddress:  ip,
		}
		if err := r.Activity.Append(ctx, audit); err != nil {
			return err
		}

		detail = d
		return nil
	})
	if err != nil {
		if domain.IsNotFoundOrUnauthorized(err) {
			logger.WorkflowDenied("payment", paymentID, err, "caller_id", callerID)
		}
		return nil, err
	}

	logger.WorkflowTransition("payment", paymentID,
		string(domain.PaymentStatusPending), string(domain.PaymentStatusFailed),
		"booking_id", detail.BookingID, "caller_id", callerID)

	if err := s.emailSvc.SendPaymentRejectedNotification(ctx, detail.StudentEmail, detail.StudentName, detail.BookingID, effectiveReason); err != nil {
		logger.Warn("Payment rejection email failed", "payment_id", paymentID, "error", err)
	}

	return detail, nil
}

func (s *paymentService) ListPayments(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.PaymentDetail, int32, error) {
	return s.payments.ListForOwner(ctx, ownerID, status, page, pageSize)
}

func (s *paymentService) ListPaymentMethods(ctx context.Context, userID int32) ([]domain.PaymentMethod, error) {
	return s.payments.ListMethods(ctx, userID)
}

// ResolveReason substitutes the free-text reason when the sentinel "Other"
// was chosen. An empty free text with "Other" is rejected before any write.
func ResolveReason(reason, otherReason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	if reason != domain.RejectReasonOther {
		return reason, nil
	}
	otherReason = strings.TrimSpace(otherReason)
	if otherReason == "" {
		return "", fmt.Errorf("%w: a reason is required when selecting Other", domain.ErrValidation)
	}
	return otherReason, nil
}

// formatAmount renders cents the way the notification copy expects:
// whole-dollar amounts without decimals.
func formatAmount(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
