package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/models"
)

type WorkerRepository interface {
	Create(ctx context.Context, worker *models.Worker) error
	GetByID(ctx context.Context, id int64) (*models.Worker, error)
	GetByEmail(ctx context.Context, email string) (*models.Worker, error)
	Exists(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, worker *models.Worker) (bool, error)
}

type workerRepository struct {
	*PostgresRepository
}

func NewWorkerRepository(db Querier, logger zerolog.Logger) WorkerRepository {
	return &workerRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *workerRepository) Create(ctx context.Context, worker *models.Worker) error {
	query := `
		INSERT INTO workers (full_name, email, password, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		worker.FullName,
		worker.Email,
		worker.PasswordHash,
		worker.Phone,
		worker.Address,
	).Scan(&worker.ID, &worker.CreatedAt, &worker.UpdatedAt)

	if isUniqueViolation(err, workersEmailUniqueIx) {
		return ErrDuplicateEmail
	}

	return err
}

func (r *workerRepository) GetByID(ctx context.Context, id int64) (*models.Worker, error) {
	query := `
		SELECT id, full_name, email, password, phone, address, created_at, updated_at
		FROM workers
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail matches the address exactly, case included.
func (r *workerRepository) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	query := `
		SELECT id, full_name, email, password, phone, address, created_at, updated_at
		FROM workers
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *workerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM workers WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}

// EmailTaken reports whether a worker other than excludeID owns email. Pass 0
// to check against every worker.
func (r *workerRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM workers WHERE email = $1 AND id <> $2)`
	var taken bool
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&taken)
	return taken, err
}

func (r *workerRepository) UpdateProfile(ctx context.Context, worker *models.Worker) (bool, error) {
	query := `
		UPDATE workers
		SET full_name = $1, email = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		worker.FullName,
		worker.Email,
		worker.Phone,
		worker.Address,
		worker.ID,
	)
	if err != nil {
		if isUniqueViolation(err, workersEmailUniqueIx) {
			return false, ErrDuplicateEmail
		}
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *workerRepository) scanOne(row *sql.Row) (*models.Worker, error) {
	worker := &models.Worker{}
	err := row.Scan(
		&worker.ID,
		&worker.FullName,
		&worker.Email,
		&worker.PasswordHash,
		&worker.Phone,
		&worker.Address,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return worker, nil
}
