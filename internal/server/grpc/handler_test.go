package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/logging"
	"github.com/ajcloudsolutions/vmailapi/internal/rpc"
	"github.com/ajcloudsolutions/vmailapi/internal/server/auth"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/ajcloudsolutions/vmailapi/internal/server/services"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeMailboxes struct {
	loginResp *services.LoginResult
	loginErr  error

	regCalled bool
	regCaller *services.Caller
	regReq    services.RegistrationRequest
	regResp   *models.Mailbox
	regErr    error

	getResp *models.Mailbox
	getErr  error

	inspectLimit int
	inspectResp  *models.Inventory
	inspectErr   error
}

func (f *fakeMailboxes) Login(ctx context.Context, username, password string) (*services.LoginResult, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeMailboxes) Register(ctx context.Context, caller *services.Caller, req services.RegistrationRequest) (*models.Mailbox, error) {
	f.regCalled = true
	f.regCaller = caller
	f.regReq = req
	return f.regResp, f.regErr
}

func (f *fakeMailboxes) GetMailbox(ctx context.Context, username string) (*models.Mailbox, error) {
	return f.getResp, f.getErr
}

func (f *fakeMailboxes) Inspect(ctx context.Context, limit int) (*models.Inventory, error) {
	f.inspectLimit = limit
	return f.inspectResp, f.inspectErr
}

// ---- helpers ----

func newServer(ms mailboxSvc) *GRPCServer {
	return &GRPCServer{
		address:   "127.0.0.1:0",
		mailboxes: ms,
		logger:    logging.Nop{},
		jwtSecret: []byte("k"),
	}
}

// ---- tests ----

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeMailboxes{})
	resp, err := s.Ping(context.Background(), &rpc.PingRequest{})
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("unexpected status: %q", resp.Status)
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: quota must be between 0 and 102400 MB", common.ErrValidation), codes.InvalidArgument},
		{fmt.Errorf("%w: username a@b.c", common.ErrorAlreadyExists), codes.AlreadyExists},
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrorLocked, codes.ResourceExhausted},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrorForbidden, codes.PermissionDenied},
		{common.ErrorInternal, codes.Internal},
		{errors.New("pq: connection refused"), codes.Internal},
	}

	for _, tt := range tests {
		got := toStatus(tt.err)
		if status.Code(got) != tt.code {
			t.Errorf("toStatus(%v) = %v, want %v", tt.err, status.Code(got), tt.code)
		}
	}

	if msg := status.Convert(toStatus(errors.New("pq: connection refused"))).Message(); msg != "internal error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
	if msg := status.Convert(toStatus(fmt.Errorf("%w: password must be at least 8 characters long", common.ErrValidation))).Message(); msg != "validation error: password must be at least 8 characters long" {
		t.Fatalf("unexpected validation message: %q", msg)
	}
}

func TestLogin_OK(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	s := newServer(&fakeMailboxes{loginResp: &services.LoginResult{AccessToken: "tok", ExpiresAt: exp, Username: "alice@example.com", Admin: true}})

	resp, err := s.Login(context.Background(), &rpc.LoginRequest{Username: "alice@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.AccessToken != "tok" || !resp.Admin || resp.Message != "Login successful" || !resp.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLogin_Errors(t *testing.T) {
	s := newServer(&fakeMailboxes{loginErr: common.ErrorUnauthorized})

	_, err := s.Login(context.Background(), &rpc.LoginRequest{Username: "alice@example.com", Password: "pw"})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", status.Code(err))
	}

	_, err = s.Login(context.Background(), &rpc.LoginRequest{Username: "alice@example.com"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", status.Code(err))
	}
}

func TestRegister_PassesFields(t *testing.T) {
	quota, active := int64(10), int32(1)
	f := &fakeMailboxes{regResp: &models.Mailbox{Username: "alice@example.com", Maildir: "example.com/a/i/c/alice_ajwebBase/"}}
	s := newServer(f)

	ctx := context.WithValue(context.Background(), claimsKey, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "postmaster@example.com"},
		IsGlobalAdmin:    true,
	})
	resp, err := s.Register(ctx, &rpc.RegisterRequest{
		Username: "alice@example.com", Password: "pw", Name: "alice", Domain: "example.com",
		Quota: &quota, Active: &active,
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if resp.Mailbox.Maildir != "example.com/a/i/c/alice_ajwebBase/" {
		t.Fatalf("unexpected mailbox: %+v", resp.Mailbox)
	}
	if f.regReq.Quota == nil || *f.regReq.Quota != 10 || f.regReq.IsAdmin != nil {
		t.Fatalf("request not forwarded as sent: %+v", f.regReq)
	}
	if f.regCaller == nil || f.regCaller.Username != "postmaster@example.com" || !f.regCaller.GlobalAdmin || f.regCaller.Admin {
		t.Fatalf("caller not forwarded: %+v", f.regCaller)
	}
}

func TestRegister_NoClaimsMeansNoCaller(t *testing.T) {
	f := &fakeMailboxes{regErr: common.ErrorForbidden}
	s := newServer(f)

	_, err := s.Register(context.Background(), &rpc.RegisterRequest{})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("want PermissionDenied, got %v", status.Code(err))
	}
	if f.regCaller != nil {
		t.Fatalf("expected nil caller, got %+v", f.regCaller)
	}
}

func TestRegister_Errors(t *testing.T) {
	for err, code := range map[error]codes.Code{
		fmt.Errorf("%w: missing required field: quota", common.ErrValidation): codes.InvalidArgument,
		common.ErrorAlreadyExists: codes.AlreadyExists,
		common.ErrorInternal:      codes.Internal,
	} {
		s := newServer(&fakeMailboxes{regErr: err})
		_, got := s.Register(context.Background(), &rpc.RegisterRequest{})
		if status.Code(got) != code {
			t.Errorf("Register(%v): want %v, got %v", err, code, status.Code(got))
		}
	}
}

func TestGetMailbox(t *testing.T) {
	s := newServer(&fakeMailboxes{getResp: &models.Mailbox{Username: "alice@example.com", Password: "{SSHA512}secret"}})

	resp, err := s.GetMailbox(context.Background(), &rpc.GetMailboxRequest{Username: "alice@example.com"})
	if err != nil {
		t.Fatalf("GetMailbox error: %v", err)
	}
	if resp.Mailbox.Username != "alice@example.com" {
		t.Fatalf("unexpected mailbox: %+v", resp.Mailbox)
	}

	_, err = s.GetMailbox(context.Background(), &rpc.GetMailboxRequest{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", status.Code(err))
	}

	s = newServer(&fakeMailboxes{getErr: common.ErrorNotFound})
	_, err = s.GetMailbox(context.Background(), &rpc.GetMailboxRequest{Username: "nobody@example.com"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("want NotFound, got %v", status.Code(err))
	}
}

func TestInspect(t *testing.T) {
	f := &fakeMailboxes{inspectResp: &models.Inventory{
		Total:   3,
		Columns: []models.Column{{Name: "username", DataType: "character varying"}},
		Recent:  []*models.Mailbox{{Username: "alice@example.com"}},
	}}
	s := newServer(f)

	resp, err := s.Inspect(context.Background(), &rpc.InspectRequest{Limit: 7})
	if err != nil {
		t.Fatalf("Inspect error: %v", err)
	}
	if resp.Total != 3 || len(resp.Columns) != 1 || len(resp.Recent) != 1 || f.inspectLimit != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	s = newServer(&fakeMailboxes{inspectErr: common.ErrorInternal})
	if _, err := s.Inspect(context.Background(), &rpc.InspectRequest{}); status.Code(err) != codes.Internal {
		t.Fatalf("want Internal, got %v", status.Code(err))
	}
}
