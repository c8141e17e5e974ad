package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Server runs the HTTP API as a service.
type Server struct {
	srv *http.Server
}

func NewServer(ctx context.Context, cfg *config.HTTPConfig, api *API) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(ctx, cfg, api),
			ReadHeaderTimeout: cfg.ReadTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http server")

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	log.FromCtx(ctx).Info().Msg("stopping http server")
	return s.srv.Shutdown(ctx)
}
