package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/autopropelidos/portal/internal/core/domain"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(ports Ports, settings domain.ServerSettings, logger zerolog.Logger) (*gin.Engine, error) {
	h, err := NewHandler(ports)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(CORS())
	r.Use(RateLimit(settings.RateLimit, settings.Burst))

	h.RegisterRoutes(r)
	r.NoRoute(func(c *gin.Context) {
		notFound(c, "route not found")
	})

	return r, nil
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewServer creates a server listening on settings.Address.
func NewServer(ports Ports, settings domain.ServerSettings, logger zerolog.Logger) (*Server, error) {
	router, err := NewRouter(ports, settings, logger)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              settings.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("api server starting")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
