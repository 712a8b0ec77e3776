package server

import (
	"context"
	"net"

	"github.com/go-logr/logr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/minio-ops/minio-operator/internal/server/services/health"
)

// Server exposes the operator's health over gRPC for sidecar probes and
// status displays.
type Server struct {
	log     logr.Logger
	checker *health.Checker
}

func New(checker *health.Checker) *Server {
	return &Server{checker: checker}
}

func (s *Server) SetLogger(l logr.Logger) *Server {
	s.log = l
	return s
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context, listenAddr string) error {
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, s.checker)
	reflection.Register(srv)

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	s.log.Info("health server listening", "addr", lis.Addr().String())
	return srv.Serve(lis)
}
