package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studentreg/internal/bootstrap"
	"github.com/yigit/studentreg/internal/config"
	"github.com/yigit/studentreg/internal/db"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	store  *db.Store
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	startedAt := time.Now()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store := bootstrap.SetupDatabase(context.Background(), cfg, lgr)
	deps := bootstrap.BuildDependencies(store, startedAt, lgr)
	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return New(cfg, router, store, lgr), nil
}

// New assembles a server from already built parts
func New(cfg *config.Config, router *gin.Engine, store *db.Store, lgr zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		router: router,
		store:  store,
		logger: lgr,
		http: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Str("env", s.config.Server.Env).Msg("Starting server...")

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.closeStore(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests within the configured grace period,
// then force-closes what is left and disconnects from MongoDB.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error

	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Dur("timeout", s.config.Server.ShutdownTimeout).Msg("Graceful shutdown timed out, forcing close")
		errs = append(errs, err)
		if cerr := s.http.Close(); cerr != nil {
			errs = append(errs, cerr)
		}
	} else {
		s.logger.Info().Msg("HTTP server gracefully stopped.")
	}

	if err := s.closeStore(context.WithoutCancel(ctx)); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if len(errs) > 0 {
		return fmt.Errorf("server shutdown completed with errors: %w", errors.Join(errs...))
	}
	return nil
}

func (s *Server) closeStore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info().Msg("Closing MongoDB connection...")
	if err := s.store.Close(ctx); err != nil {
		s.logger.Error().Err(err).Msg("MongoDB close error")
		return err
	}
	return nil
}
