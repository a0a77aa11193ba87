// Package grpc exposes the document store over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
	"google.golang.org/grpc"
)

// DocumentService is the document-store behaviour the handlers call.
type DocumentService interface {
	Get(ctx context.Context, p docstore.Path) (any, bool, error)
	Set(ctx context.Context, p docstore.Path, value any) (any, error)
	Push(ctx context.Context, p docstore.Path, value any) (string, any, error)
	Remove(ctx context.Context, p docstore.Path) error
}

type GRPCServer struct {
	docstore.UnimplementedDocumentStoreServer
	address   string
	documents DocumentService
	logger    logging.Logger
	jwtSecret []byte
	metrics   *Metrics
}

// NewGRPCServer builds the server. An empty secretKey disables token checks;
// a nil metrics disables instrumentation.
func NewGRPCServer(a string, l logging.Logger, ds DocumentService, secretKey string, m *Metrics) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		documents: ds,
		jwtSecret: []byte(secretKey),
		metrics:   m,
	}
}

func (s *GRPCServer) interceptors() []grpc.UnaryServerInterceptor {
	var out []grpc.UnaryServerInterceptor
	if s.metrics != nil {
		out = append(out, s.metrics.UnaryInterceptor)
	}
	return append(out, s.accessTokenInterceptor)
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.interceptors()...))
	docstore.RegisterDocumentStoreServer(srv, s)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
