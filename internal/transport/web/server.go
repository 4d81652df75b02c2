package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Wizlit-Org/file-service/internal/config"
	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/transport/web/v1/file"
	"github.com/Wizlit-Org/file-service/internal/transport/web/v1/health"
)

// Deps — зависимости веб-слоя, собираются в internal/app
type Deps struct {
	DB      health.Pinger
	Cache   health.Pinger
	Storage health.Pinger
	Files   file.Service
	Presign file.Presigner
	Tokens  domain.TokenManager
}

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, deps Deps) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	fileLog := log.New(logger.Writer(), logger.Prefix()+"[file] ", logger.Flags())

	healthHandler := &health.Handler{
		Log:     healthLog,
		DB:      deps.DB,
		Cache:   deps.Cache,
		Storage: deps.Storage,
	}
	fileHandler := &file.Handler{
		Log:        fileLog,
		Files:      deps.Files,
		Presign:    deps.Presign,
		StagingDir: cfg.StagingDir,
		PresignTTL: time.Duration(cfg.S3PresignTTL) * time.Second,
	}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(healthHandler, fileHandler, deps.Tokens, cfg.UploadMaxBytes, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
