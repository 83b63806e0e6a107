package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Client is what the CLI needs from the server.
type Client interface {
	Login(ctx context.Context, username string, password []byte) (*rpc.LoginResponse, error)
	Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.Mailbox, error)
	GetMailbox(ctx context.Context, username string) (*rpc.Mailbox, error)
	Inspect(ctx context.Context, limit int) (*rpc.InspectResponse, error)
	Ping(ctx context.Context) error
	Logout()
	Close() error
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.MailboxServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = t
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if t := s.token(); t != "" {
		ctx = withAccessToken(ctx, t)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewMailboxClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient creates the connection. Extra options are appended after
// the defaults (plaintext transport, token interceptor).
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewMailboxServiceClient(conn)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, username string, password []byte) (*rpc.LoginResponse, error) {

	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: username, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setToken(resp.AccessToken)

	return resp, nil
}

func (s *GRPCClient) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.Mailbox, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Mailbox, nil
}

func (s *GRPCClient) GetMailbox(ctx context.Context, username string) (*rpc.Mailbox, error) {
	resp, err := s.client.GetMailbox(ctx, &rpc.GetMailboxRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Mailbox, nil
}

func (s *GRPCClient) Inspect(ctx context.Context, limit int) (*rpc.InspectResponse, error) {
	resp, err := s.client.Inspect(ctx, &rpc.InspectRequest{Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &rpc.PingRequest{})
	return s.mapError(err)
}

// Logout forgets the access token. Tokens are stateless, so there is
// nothing to revoke on the server.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.ResourceExhausted:
		return ErrLocked
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
