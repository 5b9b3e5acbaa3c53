package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"unistay-backend/internal/domain"
)

func TestPaymentRepository_MarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusCompleted, "cash received", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(42), false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkCompleted(ctx, 10, 42, false, "cash received")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyCompletedClassifiesWrongState", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusCompleted, "", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(42), false).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT pay.status, p.owner_id`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "owner_id"}).AddRow("completed", 42))

		err := repo.MarkCompleted(ctx, 10, 42, false, "")
		assert.ErrorIs(t, err, domain.ErrWrongState)
		assert.True(t, domain.IsNotFoundOrUnauthorized(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ForeignOwnerClassifiesWrongOwner", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusCompleted, "", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(99), false).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT pay.status, p.owner_id`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "owner_id"}).AddRow("pending", 42))

		err := repo.MarkCompleted(ctx, 10, 99, false, "")
		assert.ErrorIs(t, err, domain.ErrWrongOwner)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingPaymentClassifiesNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusCompleted, "", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(42), false).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT pay.status, p.owner_id`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "owner_id"}))

		err := repo.MarkCompleted(ctx, 10, 42, false, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AdminBypassesOwnership", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusCompleted, "", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(1), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkCompleted(ctx, 10, 1, true, "")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusFailed, "Amount mismatch", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(42), false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkFailed(ctx, 10, 42, false, "Amount mismatch")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	columns := []string{
		"id", "booking_id", "amount_cents", "status", "transaction_id",
		"payment_method_id", "notes", "failure_reason", "created_on", "updated_on",
	}

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow(10, 7, 120000, "pending", "TXN-1", nil, "", "", "2026-01-01", "2026-01-01")

		mock.ExpectQuery(`SELECT id, booking_id`).
			WithArgs(int32(10)).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), p.BookingID)
		assert.Equal(t, domain.PaymentStatusPending, p.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, booking_id`).
			WithArgs(int32(77)).
			WillReturnRows(sqlmock.NewRows(columns))

		p, err := repo.GetByID(ctx, 77)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_ExistsPending(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("LiveAttempt", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int32(7), domain.PaymentStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsPending(ctx, 7)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoLiveAttempt", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int32(7), domain.PaymentStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.ExistsPending(ctx, 7)
		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_GetDetailForCaller(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	detailColumns := []string{
		"id", "booking_id", "amount_cents", "status", "transaction_id",
		"payment_method_id", "notes", "failure_reason", "created_on", "updated_on",
		"booking_status", "property_id", "owner_id", "student_id", "name", "email",
	}

	t.Run("OwnerSeesTheirPayment", func(t *testing.T) {
		rows := sqlmock.NewRows(detailColumns).
			AddRow(10, 7, 120000, "pending", "TXN-1", nil, "", "", "2026-01-01", "2026-01-01",
				"pending", 3, 42, 5, "Amina Diallo", "amina@example.com")

		mock.ExpectQuery(`SELECT pay.id, pay.booking_id`).
			WithArgs(int32(10), int32(42), false).
			WillReturnRows(rows)

		d, err := repo.GetDetailForCaller(ctx, 10, 42, false)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), d.BookingID)
		assert.Equal(t, int64(120000), d.AmountCents)
		assert.Equal(t, "amina@example.com", d.StudentEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StrangerFallsThroughToClassifier", func(t *testing.T) {
		mock.ExpectQuery(`SELECT pay.id, pay.booking_id`).
			WithArgs(int32(10), int32(99), false).
			WillReturnRows(sqlmock.NewRows(detailColumns))
		mock.ExpectQuery(`SELECT pay.status, p.owner_id`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "owner_id"}).AddRow("pending", 42))

		d, err := repo.GetDetailForCaller(ctx, 10, 99, false)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, domain.ErrWrongOwner)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
