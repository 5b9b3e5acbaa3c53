package postgres

import (
	"context"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

type creditHistoryRepository struct {
	db DBTX
}

func NewCreditHistoryRepository(db DBTX) repository.CreditHistoryRepository {
	return &creditHistoryRepository{db: db}
}

func (r *creditHistoryRepository) Append(ctx context.Context, e *domain.CreditScoreEntry) error {
	query := `INSERT INTO credit_score_history (user_id, score_change, new_score, reason, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		e.UserID, e.ScoreChange, e.NewScore, e.Reason, time.Now(),
	).Scan(&e.ID)
}

func (r *creditHistoryRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditScoreEntry, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM credit_score_history WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, score_change, new_score, reason, created_on
	          FROM credit_score_history WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.CreditScoreEntry
	for rows.Next() {
		var e domain.CreditScoreEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ScoreChange, &e.NewScore, &e.Reason, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
