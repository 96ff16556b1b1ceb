package models

type SubmissionEvent struct {
	EventID        string `json:"event_id"`
	SubmissionID   int64  `json:"submission_id"`
	WorkID         int64  `json:"work_id,omitempty"`
	WorkerID       int64  `json:"worker_id,omitempty"`
	SubmissionText string `json:"submission_text"`
	Timestamp      int64  `json:"timestamp"`
}

const (
	RoutingSubmissionCreated = "submission.created"
	RoutingSubmissionUpdated = "submission.updated"
)
