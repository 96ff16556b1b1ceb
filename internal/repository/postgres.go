package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

var ErrDuplicateEmail = errors.New("email already registered")

const (
	uniqueViolation      = "23505"
	workersEmailUniqueIx = "workers_email_key"
)

// Querier is the subset of database/sql shared by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	db     Querier
	logger zerolog.Logger
}

func NewPostgresRepository(db Querier, logger zerolog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

// Repositories is one request's view of the store; every repository in it
// shares the same connection.
type Repositories struct {
	Workers     WorkerRepository
	Works       WorkRepository
	Submissions SubmissionRepository
}

func NewRepositories(q Querier, logger zerolog.Logger) Repositories {
	return Repositories{
		Workers:     NewWorkerRepository(q, logger),
		Works:       NewWorkRepository(q, logger),
		Submissions: NewSubmissionRepository(q, logger),
	}
}

type Store interface {
	// WithConn borrows one pooled connection for the duration of fn and always
	// hands it back before returning.
	WithConn(ctx context.Context, fn func(repos Repositories) error) error
	Ping(ctx context.Context) error
}

type postgresStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStore(db *sql.DB, logger zerolog.Logger) Store {
	return &postgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *postgresStore) WithConn(ctx context.Context, fn func(repos Repositories) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("Failed to release connection")
		}
	}()

	return fn(NewRepositories(conn, s.logger))
}

func (s *postgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
}
