package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	ListByWorker(ctx context.Context, workerID int64) ([]models.SubmissionWithTask, error)
	UpdateText(ctx context.Context, id int64, text string) (bool, error)
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db Querier, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (work_id, worker_id, submission_text, submitted_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, submitted_at, status
	`

	return r.db.QueryRowContext(ctx, query,
		submission.WorkID,
		submission.WorkerID,
		submission.SubmissionText,
	).Scan(&submission.ID, &submission.SubmittedAt, &submission.Status)
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `
		SELECT id, work_id, worker_id, submission_text, submitted_at, status, remarks
		FROM submissions
		WHERE id = $1
	`

	submission := &models.Submission{}
	var remarks sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.WorkID,
		&submission.WorkerID,
		&submission.SubmissionText,
		&submission.SubmittedAt,
		&submission.Status,
		&remarks,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	submission.Remarks = nullableString(remarks)
	return submission, nil
}

func (r *submissionRepository) ListByWorker(ctx context.Context, workerID int64) ([]models.SubmissionWithTask, error) {
	query := `
		SELECT
			s.id, s.work_id, s.worker_id, s.submission_text, s.submitted_at, s.status, s.remarks,
			w.title AS task_title,
			w.description AS task_description,
			w.status AS task_status
		FROM submissions s
		LEFT JOIN works w ON s.work_id = w.id
		WHERE s.worker_id = $1
		ORDER BY s.submitted_at DESC, s.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]models.SubmissionWithTask, 0)
	for rows.Next() {
		var (
			s                         models.SubmissionWithTask
			remarks                   sql.NullString
			title, description, state sql.NullString
		)
		err := rows.Scan(
			&s.ID,
			&s.WorkID,
			&s.WorkerID,
			&s.SubmissionText,
			&s.SubmittedAt,
			&s.Status,
			&remarks,
			&title,
			&description,
			&state,
		)
		if err != nil {
			return nil, err
		}

		s.Remarks = nullableString(remarks)
		s.TaskTitle = stringOr(title, models.UnknownTaskTitle)
		s.TaskDescription = stringOr(description, models.UnknownTaskDescription)
		s.TaskStatus = stringOr(state, models.UnknownTaskStatus)

		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}

// UpdateText rewrites the text and refreshes submitted_at. Identical text is
// not a change and reports false.
func (r *submissionRepository) UpdateText(ctx context.Context, id int64, text string) (bool, error) {
	query := `
		UPDATE submissions
		SET submission_text = $1, submitted_at = NOW()
		WHERE id = $2 AND submission_text IS DISTINCT FROM $1
	`

	res, err := r.db.ExecContext(ctx, query, text, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func stringOr(ns sql.NullString, fallback string) string {
	if !ns.Valid {
		return fallback
	}
	return ns.String
}
