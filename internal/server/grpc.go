package server

import (
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	myGRPC "github.com/MKhiriev/crm-deal-sync/internal/handler/grpc"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer()
	handler.Register(srv)

	return &grpcServer{
		handler: handler,
		server:  srv,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server listen on %s: %w", g.address, err)
	}
	if err := g.server.Serve(lis); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
