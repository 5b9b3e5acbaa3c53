package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

type propertyRepository struct {
	db DBTX
}

func NewPropertyRepository(db DBTX) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO property (owner_id, title, address, monthly_rent_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Title, p.Address, p.MonthlyRentCents, p.Status, now, now,
	).Scan(&p.ID)
}

func (r *propertyRepository) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	p := &domain.Property{}
	query := `SELECT id, owner_id, title, address, monthly_rent_cents, status, created_on, updated_on
	          FROM property WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.MonthlyRentCents, &p.Status, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepository) SetStatus(ctx context.Context, propertyID int32, status domain.PropertyStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE property SET status = $1, updated_on = $2 WHERE id = $3`,
		status, time.Now(), propertyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepository) SetStatusForOwner(ctx context.Context, propertyID, ownerID int32, status domain.PropertyStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE property SET status = $1, updated_on = $2 WHERE id = $3 AND owner_id = $4`,
		status, time.Now(), propertyID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return classifyProperty(ctx, r.db, propertyID, ownerID)
	}
	return nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID, page, pageSize int32) ([]domain.Property, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM property WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, owner_id, title, address, monthly_rent_cents, status, created_on, updated_on
	          FROM property WHERE owner_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var props []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.MonthlyRentCents, &p.Status, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		props = append(props, p)
	}
	return props, count, rows.Err()
}

// classifyProperty tags why an owner-scoped update hit nothing.
func classifyProperty(ctx context.Context, db DBTX, propertyID, ownerID int32) error {
	var actualOwner int32
	err := db.QueryRowContext(ctx,
		`SELECT owner_id FROM property WHERE id = $1`, propertyID).Scan(&actualOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return domain.ErrWrongOwner
	}
	return domain.ErrWrongState
}
