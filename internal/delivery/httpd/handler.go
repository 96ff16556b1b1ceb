package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/service"
)

const (
	msgPostOnly       = "Only POST method is allowed"
	msgInvalidBody    = "Invalid request body"
	msgInternalError  = "Internal server error"
	serviceName       = "worker-portal"
	maxRequestBody    = 1 << 20
	maxMultipartBytes = 1 << 20
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Options struct {
	// ExposeStoreErrors adds the driver error text to failed responses as
	// "error_details". Keep it off outside development.
	ExposeStoreErrors bool
	// LegacyRoutes also mounts every endpoint under its historic script name.
	LegacyRoutes bool
}

type Handler struct {
	workerService     service.WorkerService
	workService       service.WorkService
	submissionService service.SubmissionService
	health            HealthChecker
	options           Options
	logger            zerolog.Logger
}

func NewHandler(
	workerService service.WorkerService,
	workService service.WorkService,
	submissionService service.SubmissionService,
	health HealthChecker,
	options Options,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		workerService:     workerService,
		workService:       workService,
		submissionService: submissionService,
		health:            health,
		options:           options,
		logger:            logger,
	}
}

type route struct {
	path    string
	legacy  string
	handler http.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		{"/workers/register", "/register_worker.php", h.RegisterWorker},
		{"/workers/login", "/login_worker.php", h.LoginWorker},
		{"/workers/profile", "/get_profile.php", h.GetProfile},
		{"/workers/profile/update", "/update_profile.php", h.UpdateProfile},
		{"/works", "/get_works.php", h.GetWorks},
		{"/submissions/create", "/submit_work.php", h.SubmitWork},
		{"/submissions", "/get_submissions.php", h.GetSubmissions},
		{"/submissions/update", "/update_submission.php", h.UpdateSubmission},
	}
}

// RegisterRoutes mounts every endpoint for all methods; postOnly decides what
// a non-POST request gets back.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	routes := h.routes()

	router.Route("/api/v1", func(api chi.Router) {
		for _, rt := range routes {
			api.HandleFunc(rt.path, postOnly(rt.handler))
		}
	})

	if h.options.LegacyRoutes {
		for _, rt := range routes {
			router.HandleFunc(rt.legacy, postOnly(rt.handler))
		}
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Health check failed")
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"service":   serviceName,
		"timestamp": time.Now().UTC(),
	})
}

// postOnly answers OPTIONS with an empty 200 and any other non-POST method
// with 405. Neither reaches the wrapped handler.
func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
			next(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			w.Header().Set("Allow", "POST, OPTIONS")
			writeError(w, http.StatusMethodNotAllowed, msgPostOnly)
		}
	}
}

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		"success": false,
		"message": message,
	})
}

// writeSuccess merges payload into a success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, payload envelope) {
	response := envelope{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		response[k] = v
	}
	writeJSON(w, status, response)
}

// handleServiceError maps a service failure to its status code. storeStatus
// is the code used for plain store failures, which differs by endpoint.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, storeStatus int) {
	log := h.requestLogger(r)

	var se *service.Error
	if !errors.As(err, &se) {
		log.Error().Err(err).Msg("Unexpected service error")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	var status int
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrStore):
		status = storeStatus
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	}

	body := envelope{
		"success": false,
		"message": se.Message,
	}
	if h.options.ExposeStoreErrors && se.Cause() != nil {
		body["error_details"] = se.Cause().Error()
	}

	writeJSON(w, status, body)
}

// requestLogger prefers the request-scoped logger set by the access log
// middleware.
func (h *Handler) requestLogger(r *http.Request) *zerolog.Logger {
	if log := zerolog.Ctx(r.Context()); log.GetLevel() != zerolog.Disabled {
		return log
	}
	return &h.logger
}
