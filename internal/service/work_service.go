package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/models"
	"github.com/RubachokBoss/worker-portal/internal/repository"
	"github.com/RubachokBoss/worker-portal/internal/validation"
)

type WorkService interface {
	ListWorks(ctx context.Context, workerID models.FlexID) ([]models.Work, error)
}

type workService struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewWorkService(store repository.Store, logger zerolog.Logger) WorkService {
	return &workService{
		store:  store,
		logger: logger,
	}
}

// ListWorks returns every work assigned to the worker. No works is an empty,
// non-nil slice.
func (s *workService) ListWorks(ctx context.Context, workerID models.FlexID) ([]models.Work, error) {
	err := validation.Run(
		validation.Required("worker_id", workerID.String(), msgWorkerIDRequired),
		validation.PositiveID("worker_id", workerID, msgInvalidWorkerID),
	)
	if err != nil {
		return nil, invalid(err)
	}
	id, _ := workerID.Int64()

	var works []models.Work
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		var err error
		works, err = repos.Works.ListByWorker(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError(msgDatabaseError, err)
	}

	if works == nil {
		works = []models.Work{}
	}

	s.logger.Debug().Int64("worker_id", id).Int("count", len(works)).Msg("Works listed")

	return works, nil
}
