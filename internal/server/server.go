package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dshills/revsent/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server serves the HTTP API.
type Server struct {
	sess   *session.Session
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers all routes.
func New(sess *session.Session, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := gin.New()
	engine.Use(requestID(), accessLog(logger), recovery(logger))

	s := &Server{sess: sess, logger: logger, engine: engine}

	engine.GET("/healthz", s.health)
	api := engine.Group("/api")
	{
		api.GET("/reviews", s.reviewCount)
		api.GET("/reviews/sample", s.sampleReview)
		api.GET("/reviews/:id", s.getReview)
		api.POST("/analyze", s.analyze)
		api.GET("/cache", s.cacheStats)
	}
	return s
}

// Handler returns the http.Handler for the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
