package service

import (
	"context"
	"fmt"
	"strings"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/logger"
	"unistay-backend/internal/repository"
)

type bookingService struct {
	store    repository.TxRunner
	bookings repository.BookingRepository
	emailSvc EmailService
}

func NewBookingService(store repository.TxRunner, bookings repository.BookingRepository, emailSvc EmailService) BookingService {
	return &bookingService{
		store:    store,
		bookings: bookings,
		emailSvc: emailSvc,
	}
}

// RequestBooking creates a pending booking against an available property and
// marks the property booked so a second student cannot request it underneath.
func (s *bookingService) RequestBooking(ctx context.Context, propertyID, studentID int32, startDate, endDate string) (*domain.Booking, error) {
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if startDate >= endDate {
		return nil, fmt.Errorf("%w: end date must come after start date", domain.ErrValidation)
	}

	var booking *domain.Booking
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		p, err := r.Properties.GetByID(ctx, propertyID)
		if err != nil {
			return err
		}
		if p.Status != domain.PropertyStatusAvailable {
			return domain.ErrWrongState
		}

		b := &domain.Booking{
			PropertyID: propertyID,
			UserID:     studentID,
			StartDate:  startDate,
			EndDate:    endDate,
			Status:     domain.BookingStatusPending,
		}
		if err := r.Bookings.Create(ctx, b); err != nil {
			return err
		}
		if err := r.Properties.SetStatus(ctx, propertyID, domain.PropertyStatusBooked); err != nil {
			return err
		}

		note := &domain.Notification{
			UserID:     p.OwnerID,
			Type:       domain.NotificationTypeBooking,
			Message:    fmt.Sprintf("New booking request #%d for %s", b.ID, p.Title),
			EntityType: "booking",
			EntityID:   &b.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		if domain.IsNotFoundOrUnauthorized(err) {
			logger.WorkflowDenied("property", propertyID, err, "student_id", studentID)
		}
		return nil, err
	}

	logger.Info("Booking requested", "booking_id", booking.ID, "property_id", propertyID, "student_id", studentID)
	return booking, nil
}

// ApproveBooking moves a pending booking to confirmed for the owner, records
// the deposit and notes, notifies the student and logs the action.
func (s *bookingService) ApproveBooking(ctx context.Context, bookingID, ownerID int32, depositCents int64, notes, ip string) error {
	var detail *domain.BookingDetail
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		d, err := r.Bookings.GetDetail(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := r.Bookings.Confirm(ctx, bookingID, ownerID, depositCents, notes); err != nil {
			return err
		}

		note := &domain.Notification{
			UserID:     d.UserID,
			Type:       domain.NotificationTypeBooking,
			Message:    fmt.Sprintf("Your booking #%d for %s was approved", d.ID, d.PropertyTitle),
			EntityType: "booking",
			EntityID:   &d.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		audit := &domain.ActivityLog{
			UserID:     ownerID,
			Action:     domain.ActionApproveBooking,
			EntityType: "booking",
			EntityID:   bookingID,
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
			logger.WorkflowDenied("booking", bookingID, err, "owner_id", ownerID)
		}
		return err
	}

	logger.WorkflowTransition("booking", bookingID,
		string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed), "owner_id", ownerID)

	if err := s.emailSvc.SendBookingApprovedNotification(ctx, detail.StudentEmail, detail.StudentName, detail.PropertyTitle); err != nil {
		logger.Warn("Booking approval email failed", "booking_id", bookingID, "error", err)
	}
	return nil
}

// RejectBooking moves a pending booking to cancelled with the rejection
// reason on record.
func (s *bookingService) RejectBooking(ctx context.Context, bookingID, ownerID int32, reason, customReason, ip string) error {
	effectiveReason, err := bookingRejectReason(reason, customReason)
	if err != nil {
		return err
	}

	var detail *domain.BookingDetail
	err = s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		d, err := r.Bookings.GetDetail(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := r.Bookings.RejectByOwner(ctx, bookingID, ownerID, effectiveReason); err != nil {
			return err
		}

		note := &domain.Notification{
			UserID:     d.UserID,
			Type:       domain.NotificationTypeBooking,
			Message:    fmt.Sprintf("Your booking #%d for %s was rejected. Reason: %s", d.ID, d.PropertyTitle, effectiveReason),
			EntityType: "booking",
			EntityID:   &d.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		audit := &domain.ActivityLog{
			UserID:     ownerID,
			Action:     domain.ActionRejectBooking,
			EntityType: "booking",
			EntityID:   bookingID,
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
			logger.WorkflowDenied("booking", bookingID, err, "owner_id", ownerID)
		}
		return err
	}

	logger.WorkflowTransition("booking", bookingID,
		string(domain.BookingStatusPending), string(domain.BookingStatusCancelled), "owner_id", ownerID)

	if err := s.emailSvc.SendBookingRejectedNotification(ctx, detail.StudentEmail, detail.StudentName, detail.PropertyTitle, effectiveReason); err != nil {
		logger.Warn("Booking rejection email failed", "booking_id", bookingID, "error", err)
	}
	return nil
}

// ViewBooking fails closed: anyone who is not the booking's student, the
// property's owner or an admin gets the same not-found as a missing booking.
func (s *bookingService) ViewBooking(ctx context.Context, bookingID, requesterID int32, requesterRole domain.UserRole) (*domain.BookingDetail, error) {
	d, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManage(d.UserID, requesterID, requesterRole) && requesterID != d.PropertyOwner {
		logger.WorkflowDenied("booking", bookingID, domain.ErrWrongOwner, "requester_id", requesterID)
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// UpdateBookingStatus is the generic entry point behind the booking detail
// view. confirm: owner while pending; cancel: owner or student;
// mark_paid: admin. Each successful transition notifies the other party.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID int32, action domain.BookingAction, requesterID int32, requesterRole domain.UserRole, ip string) error {
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		d, err := r.Bookings.GetDetail(ctx, bookingID)
		if err != nil {
			return err
		}

		var newStatus domain.BookingStatus
		var notifyUserID int32

		switch action {
		case domain.BookingActionConfirm:
			if requesterID != d.PropertyOwner && requesterRole != domain.UserRoleAdmin {
				return domain.ErrWrongOwner
			}
			if err := r.Bookings.Confirm(ctx, bookingID, d.PropertyOwner, d.DepositCents, d.AdminNotes); err != nil {
				return err
			}
			newStatus = domain.BookingStatusConfirmed
			notifyUserID = d.UserID

		case domain.BookingActionCancel:
			switch {
			case requesterID == d.UserID:
				if err := r.Bookings.CancelByStudent(ctx, bookingID, requesterID); err != nil {
					return err
				}
				notifyUserID = d.PropertyOwner
			case requesterID == d.PropertyOwner || requesterRole == domain.UserRoleAdmin:
				if err := r.Bookings.CancelByOwner(ctx, bookingID, d.PropertyOwner); err != nil {
					return err
				}
				notifyUserID = d.UserID
			default:
				return domain.ErrWrongOwner
			}
			newStatus = domain.BookingStatusCancelled

		case domain.BookingActionMarkPaid:
			if requesterRole != domain.UserRoleAdmin {
				return domain.ErrWrongOwner
			}
			if err := r.Bookings.MarkPaid(ctx, bookingID); err != nil {
				return err
			}
			newStatus = domain.BookingStatusPaid
			notifyUserID = d.UserID

		default:
			return fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
		}

		note := &domain.Notification{
			UserID:     notifyUserID,
			Type:       domain.NotificationTypeBooking,
			Message:    fmt.Sprintf("Booking #%d for %s is now %s", d.ID, d.PropertyTitle, newStatus),
			EntityType: "booking",
			EntityID:   &d.ID,
		}
		if err := r.Notifications.Create(ctx, note); err != nil {
			return err
		}

		audit := &domain.ActivityLog{
			UserID:     requesterID,
			Action:     domain.ActionUpdateBooking,
			EntityType: "booking",
			EntityID:   bookingID,
			IPAddress:  ip,
		}
		return r.Activity.Append(ctx, audit)
	})
	if err != nil && domain.IsNotFoundOrUnauthorized(err) {
		logger.WorkflowDenied("booking", bookingID, err, "requester_id", requesterID, "action", action)
	}
	return err
}

func (s *bookingService) ListBookings(ctx context.Context, userID int32, role domain.UserRole, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if role == domain.UserRoleOwner {
		return s.bookings.ListByOwner(ctx, userID, status, page, pageSize)
	}
	return s.bookings.ListByStudent(ctx, userID, status, page, pageSize)
}

// bookingRejectReason keeps the "Other: <text>" convention on bookings. A
// reason outside the fixed form choices is rejected.
func bookingRejectReason(reason, customReason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	if reason != domain.RejectReasonOther {
		for _, known := range domain.BookingRejectReasons {
			if reason == known {
				return reason, nil
			}
		}
		return "", fmt.Errorf("%w: unknown reason %q", domain.ErrValidation, reason)
	}
	customReason = strings.TrimSpace(customReason)
	if customReason == "" {
		return "", fmt.Errorf("%w: a reason is required when selecting Other", domain.ErrValidation)
	}
	return domain.RejectReasonOther + ": " + customReason, nil
}
