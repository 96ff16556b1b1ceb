package httpd

import (
	"net/http"

	"github.com/RubachokBoss/worker-portal/internal/models"
	"github.com/RubachokBoss/worker-portal/internal/service"
)

const (
	msgSubmissionSuccessful = "Submission successful"
	msgSubmissionsRetrieved = "Submissions retrieved successfully"
)

func (h *Handler) SubmitWork(w http.ResponseWriter, r *http.Request) {
	values, err := decodeForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.submissionService.CreateSubmission(r.Context(), submissionFromForm(values))
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusOK, msgSubmissionSuccessful, envelope{
		"id":           resp.ID,
		"work_updated": resp.WorkUpdated,
	})
}

func (h *Handler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	var req models.WorkerIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	submissions, err := h.submissionService.ListSubmissions(r.Context(), req.WorkerID)
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusOK, msgSubmissionsRetrieved, envelope{
		"submissions": submissions,
	})
}

// UpdateSubmission answers 200 whether or not the text changed; "changed"
// tells the two apart.
func (h *Handler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.submissionService.UpdateSubmission(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusOK, service.UpdateMessage(result), envelope{
		"changed":  result.Changed,
		"old_text": result.OldText,
		"new_text": result.NewText,
	})
}
