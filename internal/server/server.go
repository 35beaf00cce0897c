package server

import (
	"context"
	"errors"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/handler"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) {
	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

// run starts every transport and blocks until ctx is cancelled or one of
// them fails to serve.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errors.New("no servers to run")
	}

	serveErrs := make(chan error, 2)

	if s.httpServer != nil {
		s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("launching HTTP server")
		go func() { serveErrs <- s.httpServer.RunServer() }()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Str("address", s.gRPCServer.address).Msg("launching gRPC server")
		go func() { serveErrs <- s.gRPCServer.RunServer() }()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErrs:
	}

	s.Shutdown()
	s.logger.Info().Msg("server shut down gracefully")

	return err
}
