package postgres

import (
	"context"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

type activityLogRepository struct {
	db DBTX
}

func NewActivityLogRepository(db DBTX) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(ctx context.Context, e *domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (user_id, action, entity_type, entity_id, ip_address, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		e.UserID, e.Action, e.EntityType, e.EntityID, e.IPAddress, time.Now(),
	).Scan(&e.ID)
}

func (r *activityLogRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.ActivityLog, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM activity_logs WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, action, entity_type, entity_id, COALESCE(ip_address, ''), created_on
	          FROM activity_logs WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var e domain.ActivityLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &e.IPAddress, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
