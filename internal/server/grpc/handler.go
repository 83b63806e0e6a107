package grpc

import (
	"context"
	"errors"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/rpc"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/ajcloudsolutions/vmailapi/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Only validation and
// permission reasons reach the caller verbatim.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "username already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrorLocked):
		return status.Error(codes.ResourceExhausted, common.ErrorLocked.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "mailbox not found")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {

	if req.Username == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	res, err := s.mailboxes.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Login successful", "username", res.Username)

	return &rpc.LoginResponse{
		Message:     "Login successful",
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		Username:    res.Username,
		Admin:       res.Admin,
	}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	m, err := s.mailboxes.Register(ctx, callerFromContext(ctx), services.RegistrationRequest{
		Username:      req.Username,
		Password:      req.Password,
		Name:          req.Name,
		Domain:        req.Domain,
		Quota:         req.Quota,
		IsAdmin:       req.IsAdmin,
		IsGlobalAdmin: req.IsGlobalAdmin,
		Active:        req.Active,
		Language:      req.Language,
		MailboxFormat: req.MailboxFormat,
	})
	if err != nil {
		if !errors.Is(err, common.ErrValidation) {
			s.logger.Warn(ctx, "Registration failed", "username", req.Username, "error", err)
		}
		return nil, toStatus(err)
	}

	return &rpc.RegisterResponse{Message: "User registered successfully", Mailbox: toMailbox(m)}, nil
}

func (s *GRPCServer) GetMailbox(ctx context.Context, req *rpc.GetMailboxRequest) (*rpc.GetMailboxResponse, error) {

	if req.Username == "" {
		return nil, status.Error(codes.InvalidArgument, "username is required")
	}

	m, err := s.mailboxes.GetMailbox(ctx, req.Username)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.GetMailboxResponse{Mailbox: toMailbox(m)}, nil
}

func (s *GRPCServer) Inspect(ctx context.Context, req *rpc.InspectRequest) (*rpc.InspectResponse, error) {

	inv, err := s.mailboxes.Inspect(ctx, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.InspectResponse{
		Total:   inv.Total,
		Columns: make([]rpc.Column, 0, len(inv.Columns)),
		Recent:  make([]*rpc.Mailbox, 0, len(inv.Recent)),
	}
	for _, c := range inv.Columns {
		resp.Columns = append(resp.Columns, rpc.Column{Name: c.Name, DataType: c.DataType})
	}
	for _, m := range inv.Recent {
		resp.Recent = append(resp.Recent, toMailbox(m))
	}

	return resp, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {

	return &rpc.PingResponse{Status: "OK"}, nil

}

// callerFromContext converts the claims verified by accessTokenInterceptor.
// It returns nil for calls that carried no token.
func callerFromContext(ctx context.Context) *services.Caller {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil
	}
	return &services.Caller{Username: c.Username(), Admin: c.IsAdmin, GlobalAdmin: c.IsGlobalAdmin}
}

func toMailbox(m *models.Mailbox) *rpc.Mailbox {
	return &rpc.Mailbox{
		Username:             m.Username,
		Name:                 m.Name,
		Language:             m.Language,
		StorageBaseDirectory: m.StorageBaseDirectory,
		StorageNode:          m.StorageNode,
		Maildir:              m.Maildir,
		Quota:                m.Quota,
		Domain:               m.Domain,
		MailboxFormat:        m.MailboxFormat,
		MailboxFolder:        m.MailboxFolder,
		IsAdmin:              m.IsAdmin,
		IsGlobalAdmin:        m.IsGlobalAdmin,
		Active:               m.Active,
		Created:              m.Created,
		Modified:             m.Modified,
		Expired:              m.Expired,
	}
}
