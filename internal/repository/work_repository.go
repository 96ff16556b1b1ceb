package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/models"
)

type WorkRepository interface {
	ListByWorker(ctx context.Context, workerID int64) ([]models.Work, error)
	MarkCompleted(ctx context.Context, workID, workerID int64) (bool, error)
}

type workRepository struct {
	*PostgresRepository
}

func NewWorkRepository(db Querier, logger zerolog.Logger) WorkRepository {
	return &workRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *workRepository) ListByWorker(ctx context.Context, workerID int64) ([]models.Work, error) {
	query := `
		SELECT
			id, title, description,
			to_char(date_assigned, 'YYYY-MM-DD') AS date_assigned,
			to_char(due_date, 'YYYY-MM-DD') AS due_date,
			status
		FROM works
		WHERE assigned_to = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	works := make([]models.Work, 0)
	for rows.Next() {
		var work models.Work
		err := rows.Scan(
			&work.ID,
			&work.Title,
			&work.Description,
			&work.DateAssigned,
			&work.DueDate,
			&work.Status,
		)
		if err != nil {
			return nil, err
		}
		works = append(works, work)
	}

	return works, rows.Err()
}

// MarkCompleted only touches the work when it is assigned to workerID.
func (r *workRepository) MarkCompleted(ctx context.Context, workID, workerID int64) (bool, error) {
	query := `
		UPDATE works
		SET status = $1
		WHERE id = $2 AND assigned_to = $3
	`

	res, err := r.db.ExecContext(ctx, query, models.WorkStatusCompleted.String(), workID, workerID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
