package models

import (
	"time"
)

const (
	UnknownTaskTitle       = "Unknown Task"
	UnknownTaskDescription = "No description available"
	UnknownTaskStatus      = "Unknown"

	SubmissionStatusSubmitted = "submitted"
)

type Submission struct {
	ID             int64     `json:"id" db:"id"`
	WorkID         int64     `json:"work_id" db:"work_id"`
	WorkerID       int64     `json:"worker_id" db:"worker_id"`
	SubmissionText string    `json:"submission_text" db:"submission_text"`
	SubmittedAt    time.Time `json:"submitted_at" db:"submitted_at"`
	Status         string    `json:"status" db:"status"`
	Remarks        *string   `json:"remarks" db:"remarks"`
}

// SubmissionWithTask is a submission joined with the work it answers. Task
// fields carry placeholders when the work row does not exist.
type SubmissionWithTask struct {
	Submission
	TaskTitle       string `json:"task_title" db:"task_title"`
	TaskDescription string `json:"task_description" db:"task_description"`
	TaskStatus      string `json:"task_status" db:"task_status"`
}
