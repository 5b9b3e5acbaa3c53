package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"unistay-backend/internal/logger"
	"unistay-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code serves plain calls and transactional ones.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Users:         NewUserRepository(db),
		Properties:    NewPropertyRepository(db),
		Bookings:      NewBookingRepository(db),
		Payments:      NewPaymentRepository(db),
		Notifications: NewNotificationRepository(db),
		Credit:        NewCreditHistoryRepository(db),
		Activity:      NewActivityLogRepository(db),
	}
}

// WithinTx runs fn with a repository bundle bound to one transaction.
// Any error from fn rolls the whole transaction back.
func (s *Store) WithinTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := newRepositories(tx)
	if err := fn(&repos); err != nil {
		// Keep fn's error in the chain so errors.Is still sees the domain
		// sentinels when the rollback itself fails.
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
