package models

// Data Transfer Objects

type RegisterWorkerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type WorkerIDRequest struct {
	WorkerID FlexID `json:"worker_id"`
}

type UpdateProfileRequest struct {
	WorkerID FlexID `json:"worker_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type CreateSubmissionRequest struct {
	WorkID         FlexID `json:"work_id"`
	WorkerID       FlexID `json:"worker_id"`
	SubmissionText string `json:"submission_text"`

	// present tracks which form fields were sent at all; an empty value is
	// still "present".
	present map[string]bool
}

func (r *CreateSubmissionRequest) MarkPresent(field string) {
	if r.present == nil {
		r.present = make(map[string]bool)
	}
	r.present[field] = true
}

func (r *CreateSubmissionRequest) Present(field string) bool {
	return r.present[field]
}

type UpdateSubmissionRequest struct {
	SubmissionID   FlexID `json:"submission_id"`
	SubmissionText string `json:"submission_text"`
}

type CreateSubmissionResponse struct {
	ID          int64 `json:"id"`
	WorkUpdated bool  `json:"work_updated"`
}

type UpdateSubmissionResult struct {
	Changed bool   `json:"changed"`
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}
