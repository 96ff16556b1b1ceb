package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/auth"
	"github.com/RubachokBoss/worker-portal/internal/models"
	"github.com/RubachokBoss/worker-portal/internal/repository"
	"github.com/RubachokBoss/worker-portal/internal/validation"
)

const (
	msgRegisterIncomplete = "Unable to register worker. Data is incomplete."
	msgRegisterFailed     = "Unable to register worker."
	msgEmailExists        = "Email already exists."
	msgLoginIncomplete    = "Unable to login. Email and password are required."
	msgLoginFailed        = "Invalid email or password."
	msgWorkerIDRequired   = "Worker ID is required"
	msgInvalidWorkerID    = "Invalid worker ID"
	msgInvalidEmail       = "Invalid email format"
	msgWorkerNotFound     = "Worker not found"
	msgEmailInUse         = "Email already in use by another worker"
	msgDatabaseError      = "Database error occurred"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
	VerifyDummy(password string)
}

var _ PasswordHasher = (*auth.PasswordHasher)(nil)

type WorkerService interface {
	Register(ctx context.Context, req *models.RegisterWorkerRequest) (*models.Worker, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Worker, error)
	GetProfile(ctx context.Context, workerID models.FlexID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.Profile, error)
}

type workerService struct {
	store  repository.Store
	hasher PasswordHasher
	logger zerolog.Logger
}

func NewWorkerService(store repository.Store, hasher PasswordHasher, logger zerolog.Logger) WorkerService {
	return &workerService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

func (s *workerService) Register(ctx context.Context, req *models.RegisterWorkerRequest) (*models.Worker, error) {
	err := validation.Run(
		validation.AllRequired(msgRegisterIncomplete, map[string]string{
			"full_name": req.FullName,
			"email":     req.Email,
			"password":  req.Password,
			"phone":     req.Phone,
			"address":   req.Address,
		}),
		validation.Email("email", req.Email, "Invalid email format."),
		validation.MinLength("password", req.Password, 6, "Password must be at least 6 characters."),
	)
	if err != nil {
		return nil, invalid(err)
	}

	// Hash before borrowing a connection; argon2 is the slow part.
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	worker := &models.Worker{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		taken, err := repos.Workers.EmailTaken(ctx, req.Email, 0)
		if err != nil {
			return storeError(msgRegisterFailed, err)
		}
		if taken {
			return conflict(msgEmailExists)
		}

		if err := repos.Workers.Create(ctx, worker); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return conflict(msgEmailExists)
			}
			return storeError(msgRegisterFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(msgRegisterFailed, err)
	}

	s.logger.Info().
		Int64("worker_id", worker.ID).
		Str("email", worker.Email).
		Msg("Worker registered")

	return worker, nil
}

func (s *workerService) Login(ctx context.Context, req *models.LoginRequest) (*models.Worker, error) {
	err := validation.Run(
		validation.AllRequired(msgLoginIncomplete, map[string]string{
			"email":    req.Email,
			"password": req.Password,
		}),
	)
	if err != nil {
		return nil, invalid(err)
	}

	var worker *models.Worker
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		var err error
		worker, err = repos.Workers.GetByEmail(ctx, req.Email)
		return err
	})
	if err != nil {
		return nil, storeError(msgDatabaseError, err)
	}

	// Unknown email and wrong password must be indistinguishable.
	if worker == nil {
		s.hasher.VerifyDummy(req.Password)
		return nil, unauthorized(msgLoginFailed)
	}

	ok, err := s.hasher.Verify(req.Password, worker.PasswordHash)
	if err != nil {
		s.logger.Warn().Err(err).Int64("worker_id", worker.ID).Msg("Stored password hash is unreadable")
		return nil, unauthorized(msgLoginFailed)
	}
	if !ok {
		return nil, unauthorized(msgLoginFailed)
	}

	s.logger.Info().Int64("worker_id", worker.ID).Msg("Worker logged in")

	return worker, nil
}

func (s *workerService) GetProfile(ctx context.Context, workerID models.FlexID) (*models.Profile, error) {
	err := validation.Run(
		validation.Required("worker_id", workerID.String(), msgWorkerIDRequired),
		validation.PositiveID("worker_id", workerID, msgInvalidWorkerID),
	)
	if err != nil {
		return nil, invalid(err)
	}
	id, _ := workerID.Int64()

	var worker *models.Worker
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		var err error
		worker, err = repos.Workers.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError(msgDatabaseError, err)
	}
	if worker == nil {
		return nil, notFound(msgWorkerNotFound)
	}

	return worker.Profile(), nil
}

// UpdateProfile runs exists -> uniqueness -> update -> read-back as separate
// statements. The workers_email_key constraint catches a racing writer that
// slips between the uniqueness check and the update.
func (s *workerService) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.Profile, error) {
	err := validation.Run(
		validation.Required("worker_id", req.WorkerID.String(), msgWorkerIDRequired),
		validation.Required("fullName", req.FullName, "Full name is required"),
		validation.Required("email", req.Email, "Email is required"),
		validation.Required("phone", req.Phone, "Phone is required"),
		validation.Required("address", req.Address, "Address is required"),
		validation.PositiveID("worker_id", req.WorkerID, msgInvalidWorkerID),
		validation.Email("email", req.Email, msgInvalidEmail),
	)
	if err != nil {
		return nil, invalid(err)
	}
	id, _ := req.WorkerID.Int64()

	var updated *models.Worker
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Workers.Exists(ctx, id)
		if err != nil {
			return storeError(msgDatabaseError, err)
		}
		if !exists {
			return notFound(msgWorkerNotFound)
		}

		taken, err := repos.Workers.EmailTaken(ctx, req.Email, id)
		if err != nil {
			return storeError(msgDatabaseError, err)
		}
		if taken {
			return conflict(msgEmailInUse)
		}

		changed, err := repos.Workers.UpdateProfile(ctx, &models.Worker{
			ID:       id,
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return conflict(msgEmailInUse)
			}
			return storeError(msgDatabaseError, err)
		}
		if !changed {
			// Deleted between the existence check and the update.
			return notFound(msgWorkerNotFound)
		}

		updated, err = repos.Workers.GetByID(ctx, id)
		if err != nil {
			return storeError(msgDatabaseError, err)
		}
		if updated == nil {
			return notFound(msgWorkerNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(msgDatabaseError, err)
	}

	s.logger.Info().Int64("worker_id", id).Msg("Worker profile updated")

	return updated.Profile(), nil
}
