package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/worker-portal/internal/auth"
	"github.com/RubachokBoss/worker-portal/internal/config"
	"github.com/RubachokBoss/worker-portal/internal/delivery/httpd"
	"github.com/RubachokBoss/worker-portal/internal/middleware"
	"github.com/RubachokBoss/worker-portal/internal/repository"
	"github.com/RubachokBoss/worker-portal/internal/service"
	"github.com/RubachokBoss/worker-portal/internal/service/integration"
)

type App struct {
	server         *http.Server
	logger         zerolog.Logger
	config         *config.Config
	db             *sql.DB
	rabbitmqClient integration.RabbitMQClient
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	var rabbitmqClient integration.RabbitMQClient
	if cfg.RabbitMQ.Enabled {
		client, err := integration.NewRabbitMQClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			// Events are best-effort; the API keeps serving without a broker.
			log.Error().Err(err).Msg("Failed to create RabbitMQ client")
		} else {
			rabbitmqClient = client
		}
	}

	store := repository.NewStore(db, log)
	hasher := auth.NewPasswordHasher(cfg.Password)

	workerService := service.NewWorkerService(store, hasher, log)
	workService := service.NewWorkService(store, log)
	submissionService := service.NewSubmissionService(store, rabbitmqClient, log)

	handler := httpd.NewHandler(
		workerService,
		workService,
		submissionService,
		store,
		httpd.Options{
			ExposeStoreErrors: cfg.Diagnostics.ExposeStoreErrors,
			LegacyRoutes:      cfg.API.LegacyRoutes,
		},
		log,
	)

	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Not found"}`))
	})

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:         server,
		logger:         log,
		config:         cfg,
		db:             db,
		rabbitmqClient: rabbitmqClient,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run blocks until the server stops. A graceful Shutdown is not an error.
func (a *App) Run() error {
	a.logger.Info().Msgf("Starting worker portal on %s", a.config.Server.Address)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before closing the broker and the pool.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down worker portal...")

	err := a.server.Shutdown(ctx)

	if a.rabbitmqClient != nil {
		if cerr := a.rabbitmqClient.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close database connection")
		}
	}

	return err
}
