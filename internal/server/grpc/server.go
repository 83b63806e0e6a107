// Package grpc exposes the mailbox service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/ajcloudsolutions/vmailapi/internal/logging"
	"github.com/ajcloudsolutions/vmailapi/internal/rpc"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/ajcloudsolutions/vmailapi/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// mailboxSvc is the subset of services.MailboxService used by the handlers.
type mailboxSvc interface {
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Register(ctx context.Context, caller *services.Caller, req services.RegistrationRequest) (*models.Mailbox, error)
	GetMailbox(ctx context.Context, username string) (*models.Mailbox, error)
	Inspect(ctx context.Context, limit int) (*models.Inventory, error)
}

type GRPCServer struct {
	rpc.UnimplementedMailboxServiceServer
	address   string
	mailboxes mailboxSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ms mailboxSvc, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		mailboxes: ms,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.loggingInterceptor,
		s.accessTokenInterceptor,
	))

	rpc.RegisterMailboxServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
