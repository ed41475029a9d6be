package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
)

type businessRepository struct {
	BaseRepository
}

func NewBusinessRepository(base BaseRepository) repository.BusinessRepository {
	return &businessRepository{base}
}

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (
			id, owner_id, name, description, website, location, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	business.ID = uuid.New()
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			business.ID,
			business.OwnerID,
			business.Name,
			business.Description,
			business.Website,
			business.Location,
			business.Status,
			business.CreatedAt,
			business.UpdatedAt,
		)
		return err
	})
}

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT * FROM businesses
		WHERE id = $1
	`

	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	return &business, nil
}

func (r *businessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BusinessStatus) error {
	query := `
		UPDATE businesses
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update business status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *businessRepository) ListByStatus(ctx context.Context, status model.BusinessStatus) ([]*model.Business, error) {
	query := `
		SELECT * FROM businesses
		WHERE status = $1
		ORDER BY created_at DESC
	`

	var businesses []*model.Business
	if err := r.db.SelectContext(ctx, &businesses, query, status); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	return businesses, nil
}
