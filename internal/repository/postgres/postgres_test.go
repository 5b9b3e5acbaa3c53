package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsWhenFnSucceeds", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE property").
			WithArgs(domain.PropertyStatusPaid, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithinTx(ctx, func(r *repository.Repositories) error {
			return r.Properties.SetStatus(ctx, 3, domain.PropertyStatusPaid)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenFnFails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := NewStore(db)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE property").
			WithArgs(domain.PropertyStatusPaid, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = store.WithinTx(ctx, func(r *repository.Repositories) error {
			if err := r.Properties.SetStatus(ctx, 3, domain.PropertyStatusPaid); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FailedRollbackKeepsFnError", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("connection gone"))

		err = store.WithinTx(ctx, func(r *repository.Repositories) error {
			return domain.ErrWrongState
		})
		assert.ErrorIs(t, err, domain.ErrWrongState)
		assert.True(t, domain.IsNotFoundOrUnauthorized(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// The payment confirm bundle: every statement runs on the same
	// transaction, and a mid-bundle failure takes the earlier writes with it.
	t.Run("ConfirmBundleRollsBackMidway", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := NewStore(db)
		boom := errors.New("property update lost connection")

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payments pay").
			WithArgs(domain.PaymentStatusCompleted, "", sqlmock.AnyArg(),
				int32(10), domain.PaymentStatusPending, int32(42), false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE bookings").
			WithArgs(domain.BookingStatusPaid, sqlmock.AnyArg(),
				int32(7), domain.BookingStatusPending, domain.BookingStatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE property").
			WithArgs(domain.PropertyStatusPaid, sqlmock.AnyArg(), int32(3)).
			WillReturnError(boom)
		mock.ExpectRollback()

		err = store.WithinTx(ctx, func(r *repository.Repositories) error {
			if err := r.Payments.MarkCompleted(ctx, 10, 42, false, ""); err != nil {
				return err
			}
			if err := r.Bookings.MarkPaid(ctx, 7); err != nil {
				return err
			}
			return r.Properties.SetStatus(ctx, 3, domain.PropertyStatusPaid)
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
