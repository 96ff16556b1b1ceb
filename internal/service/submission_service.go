package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/models"
	"github.com/RubachokBoss/worker-portal/internal/repository"
	"github.com/RubachokBoss/worker-portal/internal/service/integration"
	"github.com/RubachokBoss/worker-portal/internal/validation"
)

const (
	msgSubmitFieldsRequired = "work_id, worker_id, and submission_text are required"
	msgSubmitTextEmpty      = "submission_text cannot be empty"
	msgSubmitInvalidIDs     = "work_id and worker_id must be positive integers"
	msgSubmitFailed         = "Submission failed"
	msgUpdateFieldsRequired = "Submission ID and text are required"
	msgInvalidSubmissionID  = "Invalid submission ID"
	msgSubmissionNotFound   = "Submission not found"
	msgSubmissionUpdated    = "Submission updated successfully"
	msgSubmissionNotChanged = "No changes were made to the submission"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.CreateSubmissionResponse, error)
	ListSubmissions(ctx context.Context, workerID models.FlexID) ([]models.SubmissionWithTask, error)
	UpdateSubmission(ctx context.Context, req *models.UpdateSubmissionRequest) (*models.UpdateSubmissionResult, error)
}

type submissionService struct {
	store          repository.Store
	rabbitmqClient integration.RabbitMQClient
	logger         zerolog.Logger
}

// NewSubmissionService accepts a nil rabbitmqClient; events are then skipped.
func NewSubmissionService(
	store repository.Store,
	rabbitmqClient integration.RabbitMQClient,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		store:          store,
		rabbitmqClient: rabbitmqClient,
		logger:         logger,
	}
}

// CreateSubmission inserts the submission, then separately marks the work as
// completed. The second statement never undoes the first.
func (s *submissionService) CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.CreateSubmissionResponse, error) {
	text := strings.TrimSpace(req.SubmissionText)

	err := validation.Run(
		validation.Present("work_id", req.Present("work_id"), msgSubmitFieldsRequired),
		validation.Present("worker_id", req.Present("worker_id"), msgSubmitFieldsRequired),
		validation.Present("submission_text", req.Present("submission_text"), msgSubmitFieldsRequired),
		validation.NotBlank("submission_text", text, msgSubmitTextEmpty),
		validation.PositiveID("work_id", req.WorkID, msgSubmitInvalidIDs),
		validation.PositiveID("worker_id", req.WorkerID, msgSubmitInvalidIDs),
	)
	if err != nil {
		return nil, invalid(err)
	}
	workID, _ := req.WorkID.Int64()
	workerID, _ := req.WorkerID.Int64()

	submission := &models.Submission{
		WorkID:         workID,
		WorkerID:       workerID,
		SubmissionText: text,
	}

	var workUpdated bool
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		if err := repos.Submissions.Create(ctx, submission); err != nil {
			return storeError(msgSubmitFailed, err)
		}

		updated, err := repos.Works.MarkCompleted(ctx, workID, workerID)
		if err != nil {
			s.logger.Error().Err(err).
				Int64("submission_id", submission.ID).
				Int64("work_id", workID).
				Msg("Submission stored but work status update failed")
			return nil
		}
		workUpdated = updated
		return nil
	})
	if err != nil {
		return nil, storeError(msgSubmitFailed, err)
	}

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int64("work_id", workID).
		Int64("worker_id", workerID).
		Bool("work_updated", workUpdated).
		Msg("Submission created")

	s.publish(ctx, models.RoutingSubmissionCreated, &models.SubmissionEvent{
		SubmissionID:   submission.ID,
		WorkID:         workID,
		WorkerID:       workerID,
		SubmissionText: submission.SubmissionText,
	})

	return &models.CreateSubmissionResponse{
		ID:          submission.ID,
		WorkUpdated: workUpdated,
	}, nil
}

// ListSubmissions returns the worker's submissions, most recent first.
func (s *submissionService) ListSubmissions(ctx context.Context, workerID models.FlexID) ([]models.SubmissionWithTask, error) {
	err := validation.Run(
		validation.Required("worker_id", workerID.String(), msgWorkerIDRequired),
		validation.PositiveID("worker_id", workerID, msgInvalidWorkerID),
	)
	if err != nil {
		return nil, invalid(err)
	}
	id, _ := workerID.Int64()

	var submissions []models.SubmissionWithTask
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		var err error
		submissions, err = repos.Submissions.ListByWorker(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError(msgDatabaseError, err)
	}

	if submissions == nil {
		submissions = []models.SubmissionWithTask{}
	}

	return submissions, nil
}

func (s *submissionService) UpdateSubmission(ctx context.Context, req *models.UpdateSubmissionRequest) (*models.UpdateSubmissionResult, error) {
	err := validation.Run(
		validation.Required("submission_id", req.SubmissionID.String(), msgUpdateFieldsRequired),
		validation.Required("submission_text", req.SubmissionText, msgUpdateFieldsRequired),
		validation.PositiveID("submission_id", req.SubmissionID, msgInvalidSubmissionID),
	)
	if err != nil {
		return nil, invalid(err)
	}
	id, _ := req.SubmissionID.Int64()

	result := &models.UpdateSubmissionResult{NewText: req.SubmissionText}
	var current *models.Submission
	err = s.store.WithConn(ctx, func(repos repository.Repositories) error {
		var err error
		current, err = repos.Submissions.GetByID(ctx, id)
		if err != nil {
			return storeError(msgDatabaseError, err)
		}
		if current == nil {
			return notFound(msgSubmissionNotFound)
		}
		result.OldText = current.SubmissionText

		result.Changed, err = repos.Submissions.UpdateText(ctx, id, req.SubmissionText)
		if err != nil {
			return storeError(msgDatabaseError, err)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(msgDatabaseError, err)
	}

	if !result.Changed {
		s.logger.Debug().Int64("submission_id", id).Msg("Submission text unchanged")
		return result, nil
	}

	s.logger.Info().Int64("submission_id", id).Msg("Submission updated")

	s.publish(ctx, models.RoutingSubmissionUpdated, &models.SubmissionEvent{
		SubmissionID:   id,
		WorkID:         current.WorkID,
		WorkerID:       current.WorkerID,
		SubmissionText: req.SubmissionText,
	})

	return result, nil
}

// UpdateMessage is the client message for an update result.
func UpdateMessage(result *models.UpdateSubmissionResult) string {
	if result.Changed {
		return msgSubmissionUpdated
	}
	return msgSubmissionNotChanged
}

// publish is best-effort; a broker outage never fails the request.
func (s *submissionService) publish(ctx context.Context, routingKey string, event *models.SubmissionEvent) {
	if s.rabbitmqClient == nil {
		return
	}

	if err := s.rabbitmqClient.PublishSubmissionEvent(ctx, routingKey, event); err != nil {
		s.logger.Error().Err(err).
			Str("routing_key", routingKey).
			Int64("submission_id", event.SubmissionID).
			Msg("Failed to publish submission event")
	}
}
