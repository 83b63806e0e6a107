package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/rpc"
	"github.com/ajcloudsolutions/vmailapi/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

// uuidLength is the length of the canonical 8-4-4-4-12 form.
const uuidLength = 36

const (
	requestIDKey ctxKey = "requestID"
	claimsKey    ctxKey = "claims"
)

// adminMethods require an access token carrying admin rights.
var adminMethods = map[string]bool{
	rpc.RegisterFullMethodName:   true,
	rpc.GetMailboxFullMethodName: true,
	rpc.InspectFullMethodName:    true,
}

// RequestIDFromContext returns the id assigned by requestIDInterceptor.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ClaimsFromContext returns the verified token claims of admin calls.
// Handlers use it to identify the operator.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// requestIDInterceptor propagates the caller's x-request-id when it is a
// UUID, mints one otherwise, and echoes it back in the response header.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	id := uuid.NewString()
	if v := firstMetadata(ctx, common.RequestIDHeaderName); len(v) == uuidLength {
		if parsed, err := uuid.Parse(v); err == nil {
			id = parsed.String()
		}
	}

	ctx = context.WithValue(ctx, requestIDKey, id)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, id))

	return handler(ctx, req)
}

// loggingInterceptor writes one line per call. Requests are never logged.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
		"request_id", RequestIDFromContext(ctx),
	)

	return resp, err
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if adminMethods[info.FullMethod] {

		accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		claims, err := auth.ParseToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
			}
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}

		if !claims.Admin() {
			return nil, status.Error(codes.PermissionDenied, "admin rights required")
		}

		ctx = context.WithValue(ctx, claimsKey, claims)
	}

	return handler(ctx, req)
}
