package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/history"
	"codeberg.org/snonux/lingobridge/internal/processor"
)

// DefaultAddr is where the server listens unless configured otherwise
const DefaultAddr = "0.0.0.0:5000"

// Translator runs a translate request through the pipeline
type Translator interface {
	Translate(ctx context.Context, req processor.TranslateRequest) (*processor.TranslateResponse, error)
}

// Config holds the listener settings
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// AllowedOrigins defaults to every origin
	AllowedOrigins []string
}

// Server is the HTTP front end
type Server struct {
	cfg        Config
	router     chi.Router
	translator Translator
	history    history.Store
	chat       http.Handler
	logger     *zap.SugaredLogger
}

// Option configures a Server
type Option func(*Server)

// WithHistory serves /rooms/{room}/messages from store
func WithHistory(store history.Store) Option {
	return func(s *Server) { s.history = store }
}

// WithChat mounts the chat websocket at /ws
func WithChat(h http.Handler) Option {
	return func(s *Server) { s.chat = h }
}

// New creates a server and its routes
func New(cfg Config, translator Translator, logger *zap.SugaredLogger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		cfg:        cfg,
		translator: translator,
		history:    history.NopStore{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.Post("/translate", s.handleTranslate)
	r.Get("/languages", s.handleLanguages)
	r.Get("/voices", s.handleVoices)
	r.Get("/health", s.handleHealth)
	r.Get("/rooms/{room}/messages", s.handleRoomMessages)
	if s.chat != nil {
		r.Handle("/ws", s.chat)
	}

	s.router = r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled and then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Infow("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown failed", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			s.logger.Errorw("forced close failed", "error", closeErr)
		}
		return err
	}
	return nil
}

// requestLogger logs one line per request. The wrapped writer still
// supports Hijack so websocket upgrades pass through.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
