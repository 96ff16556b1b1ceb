package httpd

import (
	"net/http"

	"github.com/RubachokBoss/worker-portal/internal/models"
)

const (
	msgWorkerRegistered = "Worker registered successfully."
	msgLoginSuccessful  = "Login successful."
	msgProfileRetrieved = "Profile retrieved successfully"
	msgProfileUpdated   = "Profile updated successfully"
)

// Registration and login report plain store failures as 503.

func (h *Handler) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterWorkerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	worker, err := h.workerService.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, http.StatusCreated, msgWorkerRegistered, envelope{
		"id": worker.ID,
	})
}

func (h *Handler) LoginWorker(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	worker, err := h.workerService.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, http.StatusOK, msgLoginSuccessful, envelope{
		"worker": worker.Profile(),
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	var req models.WorkerIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	profile, err := h.workerService.GetProfile(r.Context(), req.WorkerID)
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusOK, msgProfileRetrieved, envelope{
		"worker": profile,
	})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	profile, err := h.workerService.UpdateProfile(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusOK, msgProfileUpdated, envelope{
		"worker": profile,
	})
}
