package server

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/crewscore/crewscore/internal/config"
)

const serviceName = "crewscore.v1.CrewScore"

// Server wraps the gRPC server together with its listener and health
// reporting.
type Server struct {
	grpcServer *grpc.Server
	healthSrv  *health.Server
	cfg        *config.Config
	lis        net.Listener
	logger     *slog.Logger
}

// New builds a server listening on the configured port. The returned port is
// the one actually bound, which differs from the configured one when it is 0.
func New(cfg *config.Config, logger *slog.Logger) (*Server, int, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to listen: %w", err)
	}

	port := lis.Addr().(*net.TCPAddr).Port

	var opts []grpc.ServerOption
	if cfg.Server.TLS.Enabled {
		creds, err := credentials.NewServerTLSFromFile(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load TLS credentials: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	}

	grpcServer := grpc.NewServer(opts...)

	healthSrv := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		healthSrv:  healthSrv,
		cfg:        cfg,
		lis:        lis,
		logger:     logger,
	}, port, nil
}

// GRPCServer exposes the underlying server for service registration.
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpcServer
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("gRPC server listening", "addr", s.lis.Addr().String())
	s.healthSrv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s.grpcServer.Serve(s.lis)
}

// Stop gracefully stops the server, draining in-flight requests.
func (s *Server) Stop() {
	s.logger.Info("stopping gRPC server")
	s.healthSrv.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	s.grpcServer.GracefulStop()
	s.logger.Info("gRPC server stopped")
}

// RunBlocking starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) RunBlocking() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errChan <- fmt.Errorf("failed to start gRPC server: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Info("received signal, shutting down", "signal", sig.String())
		s.Stop()
		return nil
	}
}
