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

	"taskmanager/internal/config"
	"taskmanager/internal/database"
	"taskmanager/internal/handler"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
}

// Init connects to the database, brings the schema up to date and builds
// the HTTP engine.
func Init(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	db, err := database.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(cfg.DB.URL(), log); err != nil {
		database.Close(db)
		return nil, err
	}

	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := NewEngine(repository.NewTaskRepository(db), reg, log)
	if err != nil {
		database.Close(db)
		return nil, err
	}

	return &Server{
		Engine: engine,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

// NewEngine registers middleware and routes on a fresh gin engine.
func NewEngine(taskRepo repository.TaskRepositoryInterface, reg *prometheus.Registry, log zerolog.Logger) (*gin.Engine, error) {
	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	metrics := middleware.NewMetrics(reg)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(metrics.Handler())
	r.Use(gin.Recovery())

	taskHandler := handler.NewTaskHandler(taskRepo)
	healthHandler := handler.NewHealthHandler(taskRepo, healthTimeout)

	// Task routes
	r.GET("/", taskHandler.Index)
	r.POST("/crear", taskHandler.Create)
	r.GET("/editar/:id", taskHandler.Edit)
	r.POST("/actualizar/:id", taskHandler.Update)
	r.GET("/eliminar/:id", taskHandler.ConfirmDelete)
	r.POST("/eliminar/:id", taskHandler.Delete)

	// Operational routes
	r.GET("/healthz", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	return r, nil
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info().Str("port", s.Config.ServerPort).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		database.Close(s.DB)
		return fmt.Errorf("failed to listen: %w", err)
	case <-quit:
	}
	s.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if err := database.Close(s.DB); err != nil {
		s.Log.Warn().Err(err).Msg("failed to close database")
	}

	s.Log.Info().Msg("server exited properly")
	return nil
}
