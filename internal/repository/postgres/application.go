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

type applicationRepository struct {
	BaseRepository
}

func NewApplicationRepository(base BaseRepository) repository.ApplicationRepository {
	return &applicationRepository{base}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, applicant_id, cover_letter, resume_url, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	application.ID = uuid.New()
	application.CreatedAt = time.Now()
	application.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			application.ID,
			application.JobID,
			application.ApplicantID,
			application.CoverLetter,
			application.ResumeURL,
			application.Status,
			application.CreatedAt,
			application.UpdatedAt,
		)
		return err
	})
}

func (r *applicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	query := `
		SELECT * FROM applications
		WHERE id = $1
	`

	var application model.Application
	if err := r.db.GetContext(ctx, &application, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &application, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	query := `
		UPDATE applications
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
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

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*model.Application, error) {
	query := `
		SELECT * FROM applications
		WHERE job_id = $1
		ORDER BY created_at DESC
	`

	var applications []*model.Application
	if err := r.db.SelectContext(ctx, &applications, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error) {
	query := `
		SELECT * FROM applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`

	var applications []*model.Application
	if err := r.db.SelectContext(ctx, &applications, query, applicantID); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, nil
}
