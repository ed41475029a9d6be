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

type jobRepository struct {
	BaseRepository
}

func NewJobRepository(base BaseRepository) repository.JobRepository {
	return &jobRepository{base}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			id, business_id, title, description, location, salary_range, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	job.ID = uuid.New()
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			job.ID,
			job.BusinessID,
			job.Title,
			job.Description,
			job.Location,
			job.SalaryRange,
			job.Status,
			job.CreatedAt,
			job.UpdatedAt,
		)
		return err
	})
}

func (r *jobRepository) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	query := `
		SELECT * FROM jobs
		WHERE id = $1
	`

	var job model.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.JobStatus) error {
	query := `
		UPDATE jobs
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
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

func (r *jobRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Job, error) {
	query := `
		SELECT * FROM jobs
		WHERE business_id = $1
		ORDER BY created_at DESC
	`

	var jobs []*model.Job
	if err := r.db.SelectContext(ctx, &jobs, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

func (r *jobRepository) ListByStatus(ctx context.Context, status model.JobStatus) ([]*model.Job, error) {
	query := `
		SELECT * FROM jobs
		WHERE status = $1
		ORDER BY created_at DESC
	`

	var jobs []*model.Job
	if err := r.db.SelectContext(ctx, &jobs, query, status); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}
