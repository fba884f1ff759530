// Package server exposes the insight workflows over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/careerinsights/internal/identity"
	"github.com/muhammadolammi/careerinsights/internal/logger"
)

type Server struct {
	service  InsightService
	provider identity.Provider
	log      *logger.Logger
	version  string
	engine   *gin.Engine
}

func New(service InsightService, provider identity.Provider, log *logger.Logger, version string) *Server {
	s := &Server{
		service:  service,
		provider: provider,
		log:      log.With("component", "server"),
		version:  version,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.Use(Authenticate(s.provider, s.log))
	api.GET("/industry-insights", s.getIndustryInsights)
	api.GET("/user", s.getUser)
	api.PUT("/user/industry", s.setIndustry)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // first request for an industry waits on the model
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "version", s.version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
