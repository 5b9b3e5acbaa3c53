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

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (role, name, email, phone_number, password_hash, credit_score, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		u.Role, u.Name, u.Email, u.PhoneNumber, u.PasswordHash, u.CreditScore, u.IsActive, now, now,
	).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, role, name, email, phone_number, password_hash, credit_score, is_active, created_on, updated_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Role, &u.Name, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.CreditScore, &u.IsActive, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, role, name, email, phone_number, password_hash, credit_score, is_active, created_on, updated_on
	          FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Role, &u.Name, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.CreditScore, &u.IsActive, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Deactivate(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = FALSE, updated_on = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustCreditScore clamps in SQL so concurrent adjustments cannot push the
// score outside its bounds.
func (r *userRepository) AdjustCreditScore(ctx context.Context, userID, delta int32) (int32, error) {
	var newScore int32
	query := `UPDATE users
	          SET credit_score = LEAST($1, GREATEST($2, credit_score + $3)), updated_on = $4
	          WHERE id = $5
	          RETURNING credit_score`
	err := r.db.QueryRowContext(ctx, query,
		domain.CreditScoreMax, domain.CreditScoreMin, delta, time.Now(), userID,
	).Scan(&newScore)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("adjust credit score: %w", err)
	}
	return newScore, nil
}
