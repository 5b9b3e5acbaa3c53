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

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, booking_id, amount_cents, status, transaction_id, payment_method_id, notes, failure_reason, created_on, updated_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (booking_id, amount_cents, status, transaction_id, payment_method_id, notes, failure_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.BookingID, p.AmountCents, p.Status, p.TransactionID, p.PaymentMethodID, p.Notes, p.FailureReason, now, now,
	).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.BookingID, &p.AmountCents, &p.Status, &p.TransactionID, &p.PaymentMethodID, &p.Notes, &p.FailureReason, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ExistsPending(ctx context.Context, bookingID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE booking_id = $1 AND status = $2)`
	if err := r.db.QueryRowContext(ctx, query, bookingID, domain.PaymentStatusPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending payment: %w", err)
	}
	return exists, nil
}

// GetDetailForCaller is the fail-closed lookup: the ownership predicate sits
// inside the query, so an unauthorized caller sees no difference from a
// missing payment.
func (r *paymentRepository) GetDetailForCaller(ctx context.Context, paymentID, callerID int32, isAdmin bool) (*domain.PaymentDetail, error) {
	d := &domain.PaymentDetail{}
	query := `SELECT pay.id, pay.booking_id, pay.amount_cents, pay.status, pay.transaction_id,
	                 pay.payment_method_id, pay.notes, pay.failure_reason, pay.created_on, pay.updated_on,
	                 b.status, p.id, p.owner_id, u.id, u.name, u.email
	          FROM payments pay
	          JOIN bookings b ON b.id = pay.booking_id
	          JOIN property p ON p.id = b.property_id
	          JOIN users u ON u.id = b.user_id
	          WHERE pay.id = $1 AND (p.owner_id = $2 OR $3)`
	err := r.db.QueryRowContext(ctx, query, paymentID, callerID, isAdmin).Scan(
		&d.ID, &d.BookingID, &d.AmountCents, &d.Status, &d.TransactionID,
		&d.PaymentMethodID, &d.Notes, &d.FailureReason, &d.CreatedOn, &d.UpdatedOn,
		&d.BookingStatus, &d.PropertyID, &d.PropertyOwner, &d.StudentID, &d.StudentName, &d.StudentEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classify(ctx, paymentID, callerID, isAdmin)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// MarkCompleted is the atomic half of the confirm flow: one conditional
// UPDATE carrying both the pending precondition and the ownership predicate.
// Two concurrent confirms race on the affected-row count, not on a separate
// SELECT.
func (r *paymentRepository) MarkCompleted(ctx context.Context, paymentID, callerID int32, isAdmin bool, notes string) error {
	query := `UPDATE payments pay
	          SET status = $1, notes = $2, updated_on = $3
	          FROM bookings b, property p
	          WHERE pay.id = $4 AND pay.status = $5
	            AND b.id = pay.booking_id AND p.id = b.property_id
	            AND (p.owner_id = $6 OR $7)`
	res, err := r.db.ExecContext(ctx, query,
		domain.PaymentStatusCompleted, notes, time.Now(),
		paymentID, domain.PaymentStatusPending, callerID, isAdmin)
	if err != nil {
		return fmt.Errorf("mark payment completed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, paymentID, callerID, isAdmin)
	}
	return nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, paymentID, callerID int32, isAdmin bool, reason string) error {
	query := `UPDATE payments pay
	          SET status = $1, failure_reason = $2, updated_on = $3
	          FROM bookings b, property p
	          WHERE pay.id = $4 AND pay.status = $5
	            AND b.id = pay.booking_id AND p.id = b.property_id
	            AND (p.owner_id = $6 OR $7)`
	res, err := r.db.ExecContext(ctx, query,
		domain.PaymentStatusFailed, reason, time.Now(),
		paymentID, domain.PaymentStatusPending, callerID, isAdmin)
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classify(ctx, paymentID, callerID, isAdmin)
	}
	return nil
}

func (r *paymentRepository) ListForOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.PaymentDetail, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM payments pay
	         JOIN bookings b ON b.id = pay.booking_id
	         JOIN property p ON p.id = b.property_id
	         JOIN users u ON u.id = b.user_id
	         WHERE p.owner_id = $1`

	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND pay.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT pay.id, pay.booking_id, pay.amount_cents, pay.status, pay.transaction_id,
	                 pay.payment_method_id, pay.notes, pay.failure_reason, pay.created_on, pay.updated_on,
	                 b.status, p.id, p.owner_id, u.id, u.name, u.email ` + base +
		fmt.Sprintf(" ORDER BY pay.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var details []domain.PaymentDetail
	for rows.Next() {
		var d domain.PaymentDetail
		if err := rows.Scan(
			&d.ID, &d.BookingID, &d.AmountCents, &d.Status, &d.TransactionID,
			&d.PaymentMethodID, &d.Notes, &d.FailureReason, &d.CreatedOn, &d.UpdatedOn,
			&d.BookingStatus, &d.PropertyID, &d.PropertyOwner, &d.StudentID, &d.StudentName, &d.StudentEmail); err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	return details, count, rows.Err()
}

func (r *paymentRepository) ListMethods(ctx context.Context, userID int32) ([]domain.PaymentMethod, error) {
	query := `SELECT id, user_id, label, kind, is_default, created_on
	          FROM payment_methods WHERE user_id = $1 ORDER BY is_default DESC, created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.UserID, &m.Label, &m.Kind, &m.IsDefault, &m.CreatedOn); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

// classify distinguishes missing payment, foreign owner and non-pending
// state after a scoped query came back empty. The caller still surfaces one
// opaque message; the tag is for logs and tests.
func (r *paymentRepository) classify(ctx context.Context, paymentID, callerID int32, isAdmin bool) error {
	var status domain.PaymentStatus
	var actualOwner int32
	query := `SELECT pay.status, p.owner_id
	          FROM payments pay
	          JOIN bookings b ON b.id = pay.booking_id
	          JOIN property p ON p.id = b.property_id
	          WHERE pay.id = $1`
	err := r.db.QueryRowContext(ctx, query, paymentID).Scan(&status, &actualOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !isAdmin && actualOwner != callerID {
		return domain.ErrWrongOwner
	}
	return domain.ErrWrongState
}
