package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (property_id, user_id, start_date, end_date, status, deposit_cents, admin_notes, rejection_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.PropertyID, b.UserID, b.StartDate, b.EndDate, b.Status, b.DepositCents, b.AdminNotes, b.RejectionReason, now, now,
	).Scan(&b.ID)
}

func (r *bookingRepository) GetDetail(ctx context.Context, id int32) (*domain.BookingDetail, error) {
	d := &domain.BookingDetail{}
	query := `SELECT b.id, b.property_id, b.user_id, b.start_date, b.end_date, b.status,
	                 b.deposit_cents, b.admin_notes, b.rejection_reason, b.created_on, b.updated_on,
	                 p.title, p.owner_id, u.name, u.email
	          FROM bookings b
	          JOIN property p ON p.id = b.property_id
	          JOIN users u ON u.id = b.user_id
	          WHERE b.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.PropertyID, &d.UserID, &d.StartDate, &d.EndDate, &d.Status,
		&d.DepositCents, &d.AdminNotes, &d.RejectionReason, &d.CreatedOn, &d.UpdatedOn,
		&d.PropertyTitle, &d.PropertyOwner, &d.StudentName, &d.StudentEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Confirm moves a pending booking to confirmed, scoped to the property owner.
// The status precondition and the ownership predicate sit in the UPDATE
// itself, so a concurrent approval or a foreign owner both hit zero rows.
func (r *bookingRepository) Confirm(ctx context.Context, bookingID, ownerID int32, depositCents int64, notes string) error {
	query := `UPDATE bookings b
	          SET status = $1, deposit_cents = $2, admin_notes = $3, updated_on = $4
	          FROM property p
	          WHERE b.id = $5 AND b.status = $6 AND p.id = b.property_id AND p.owner_id = $7`
	res, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusConfirmed, depositCents, notes, time.Now(),
		bookingID, domain.BookingStatusPending, ownerID)
	if err != nil {
		return fmt.Errorf("confirm booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, bookingID, ownerID, 0)
	}
	return nil
}

func (r *bookingRepository) RejectByOwner(ctx context.Context, bookingID, ownerID int32, reason string) error {
	query := `UPDATE bookings b
	          SET status = $1, rejection_reason = $2, updated_on = $3
	          FROM property p
	          WHERE b.id = $4 AND b.status = $5 AND p.id = b.property_id AND p.owner_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusCancelled, reason, time.Now(),
		bookingID, domain.BookingStatusPending, ownerID)
	if err != nil {
		return fmt.Errorf("reject booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, bookingID, ownerID, 0)
	}
	return nil
}

func (r *bookingRepository) CancelByOwner(ctx context.Context, bookingID, ownerID int32) error {
	query := `UPDATE bookings b
	          SET status = $1, updated_on = $2
	          FROM property p
	          WHERE b.id = $3 AND b.status IN ($4, $5) AND p.id = b.property_id AND p.owner_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusCancelled, time.Now(),
		bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed, ownerID)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, bookingID, ownerID, 0)
	}
	return nil
}

func (r *bookingRepository) CancelByStudent(ctx context.Context, bookingID, studentID int32) error {
	query := `UPDATE bookings
	          SET status = $1, updated_on = $2
	          WHERE id = $3 AND status IN ($4, $5) AND user_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusCancelled, time.Now(),
		bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed, studentID)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, bookingID, 0, studentID)
	}
	return nil
}

func (r *bookingRepository) MarkPaid(ctx context.Context, bookingID int32) error {
	query := `UPDATE bookings
	          SET status = $1, updated_on = $2
	          WHERE id = $3 AND status IN ($4, $5)`
	res, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusPaid, time.Now(),
		bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, bookingID, 0, 0)
	}
	return nil
}

// RevertToConfirmed is used by payment rejection: a booking still pending
// goes back to confirmed with the rejection note on record. Bookings in any
// other state are intentionally untouched, so zero rows is not an error.
func (r *bookingRepository) RevertToConfirmed(ctx context.Context, bookingID int32, note string) error {
	query := `UPDATE bookings
	          SET status = $1,
	              admin_notes = CASE WHEN admin_notes = '' THEN $2 ELSE admin_notes || E'\n' || $2 END,
	              updated_on = $3
	          WHERE id = $4 AND status = $5`
	_, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusConfirmed, note, time.Now(),
		bookingID, domain.BookingStatusPending)
	if err != nil {
		return fmt.Errorf("revert booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, `user_id = $1`, studentID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, `property_id IN (SELECT id FROM property WHERE owner_id = $1)`, ownerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, scope string, scopeID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, property_id, user_id, start_date, end_date, status, deposit_cents, admin_notes, rejection_reason, created_on, updated_on
	          FROM bookings WHERE ` + scope

	args := []interface{}{scopeID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.PropertyID, &b.UserID, &b.StartDate, &b.EndDate, &b.Status, &b.DepositCents, &b.AdminNotes, &b.RejectionReason, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

// classify tags why a scoped conditional update hit nothing. Pass ownerID or
// studentID as non-zero depending on which party scoped the update.
func (r *bookingRepository) classify(ctx context.Context, bookingID, ownerID, studentID int32) error {
	var status domain.BookingStatus
	var actualOwner, actualStudent int32
	query := `SELECT b.status, p.owner_id, b.user_id
	          FROM bookings b JOIN property p ON p.id = b.property_id
	          WHERE b.id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&status, &actualOwner, &actualStudent)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != 0 && actualOwner != ownerID {
		return domain.ErrWrongOwner
	}
	if studentID != 0 && actualStudent != studentID {
		return domain.ErrWrongOwner
	}
	return domain.ErrWrongState
}
