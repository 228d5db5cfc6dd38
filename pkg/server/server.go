package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/handlers/reports"
	atlasmiddleware "github.com/de-tools/agency-atlas/pkg/server/middleware"
	"github.com/de-tools/agency-atlas/pkg/services/graphsync"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Reports reports.Service
	// Schedule is optional; without it the schedule endpoints answer 501.
	Schedule graphsync.Controller
	Clock    clock.Clock
	// Health is optional and reports readiness of the backing stores.
	Health func(ctx context.Context) error
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// ConfigureRouter builds the HTTP routes without binding a listener.
func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	clk := deps.Clock
	if clk == nil {
		clk = clock.System{}
	}
	reportsHandler := reports.NewHandler(deps.Reports, deps.Schedule, clk)

	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(atlasmiddleware.Metrics)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", healthz(deps.Health))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", reportsHandler.Routes)

	return router
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Dur("timeout", w.shutdownTimeout).Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
