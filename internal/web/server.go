package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/service"
	"github.com/emiliopalmerini/labgenie/internal/shared/middleware"
)

//go:embed static/*
var staticFiles embed.FS

// Options configures the HTTP server.
type Options struct {
	Addr            string
	SecretKey       string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

type Server struct {
	router  *http.ServeMux
	handler http.Handler
	opts    Options
	svc     *service.Service
	flash   *flasher
	logger  *zap.Logger
}

func NewServer(svc *service.Service, logger *zap.Logger, opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		router: http.NewServeMux(),
		opts:   opts,
		svc:    svc,
		flash:  newFlasher(opts.SecretKey),
		logger: logger,
	}
	s.setupRoutes()

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.AccessLog(logger),
		middleware.Recover(logger, s.handlePanic),
	}
	if opts.MaxBodyBytes > 0 {
		mws = append(mws, middleware.LimitBody(opts.MaxBodyBytes))
	}
	s.handler = middleware.Chain(s.router, mws...)
	return s
}

func (s *Server) setupRoutes() {
	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("POST /submit", s.handleSubmit)
	s.router.HandleFunc("GET /dashboard", s.handleDashboard)
	s.router.HandleFunc("GET /record/{id}", s.handleRecord)

	// Export
	s.router.HandleFunc("GET /export/{id}/{format}", s.handleExport)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", zap.String("addr", s.opts.Addr))

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil // Graceful shutdown
	}
	return err
}

func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request) {
	s.flash.add(w, r, FlashError, "An unexpected error occurred. Please try again.")
	http.Redirect(w, r, "/", http.StatusFound)
}
