package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "vmail.v1.MailboxService"

const (
	LoginFullMethodName      = "/" + ServiceName + "/Login"
	RegisterFullMethodName   = "/" + ServiceName + "/Register"
	GetMailboxFullMethodName = "/" + ServiceName + "/GetMailbox"
	InspectFullMethodName    = "/" + ServiceName + "/Inspect"
	PingFullMethodName       = "/" + ServiceName + "/Ping"
)

// MailboxServiceServer is the server API for the mailbox service.
type MailboxServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetMailbox(context.Context, *GetMailboxRequest) (*GetMailboxResponse, error)
	Inspect(context.Context, *InspectRequest) (*InspectResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedMailboxServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedMailboxServiceServer struct{}

func (UnimplementedMailboxServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedMailboxServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedMailboxServiceServer) GetMailbox(context.Context, *GetMailboxRequest) (*GetMailboxResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMailbox not implemented")
}
func (UnimplementedMailboxServiceServer) Inspect(context.Context, *InspectRequest) (*InspectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Inspect not implemented")
}
func (UnimplementedMailboxServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterMailboxServiceServer(s grpc.ServiceRegistrar, srv MailboxServiceServer) {
	s.RegisterService(&MailboxService_ServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodHandler.
func unary[Req any, Resp any](fullMethod string, call func(MailboxServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MailboxServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MailboxServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MailboxService_ServiceDesc is the grpc.ServiceDesc for MailboxService.
var MailboxService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MailboxServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(LoginFullMethodName, MailboxServiceServer.Login)},
		{MethodName: "Register", Handler: unary(RegisterFullMethodName, MailboxServiceServer.Register)},
		{MethodName: "GetMailbox", Handler: unary(GetMailboxFullMethodName, MailboxServiceServer.GetMailbox)},
		{MethodName: "Inspect", Handler: unary(InspectFullMethodName, MailboxServiceServer.Inspect)},
		{MethodName: "Ping", Handler: unary(PingFullMethodName, MailboxServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vmail/v1/mailbox.json",
}

// MailboxServiceClient is the client API for the mailbox service.
type MailboxServiceClient interface {
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	GetMailbox(ctx context.Context, in *GetMailboxRequest, opts ...grpc.CallOption) (*GetMailboxResponse, error)
	Inspect(ctx context.Context, in *InspectRequest, opts ...grpc.CallOption) (*InspectResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type mailboxServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMailboxServiceClient returns a client that always selects the JSON codec.
func NewMailboxServiceClient(cc grpc.ClientConnInterface) MailboxServiceClient {
	return &mailboxServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mailboxServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, LoginFullMethodName, in, opts)
}

func (c *mailboxServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, RegisterFullMethodName, in, opts)
}

func (c *mailboxServiceClient) GetMailbox(ctx context.Context, in *GetMailboxRequest, opts ...grpc.CallOption) (*GetMailboxResponse, error) {
	return invoke[GetMailboxResponse](ctx, c.cc, GetMailboxFullMethodName, in, opts)
}

func (c *mailboxServiceClient) Inspect(ctx context.Context, in *InspectRequest, opts ...grpc.CallOption) (*InspectResponse, error) {
	return invoke[InspectResponse](ctx, c.cc, InspectFullMethodName, in, opts)
}

func (c *mailboxServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethodName, in, opts)
}
