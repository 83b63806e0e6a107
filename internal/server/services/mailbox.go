// Package services implements the mailbox use cases on top of the
// repositories: login, registration and operator lookups.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/credential"
	"github.com/ajcloudsolutions/vmailapi/internal/dbx"
	"github.com/ajcloudsolutions/vmailapi/internal/logging"
	"github.com/ajcloudsolutions/vmailapi/internal/server/auth"
	"github.com/ajcloudsolutions/vmailapi/internal/server/config"
	"github.com/ajcloudsolutions/vmailapi/internal/server/lockout"
	"github.com/ajcloudsolutions/vmailapi/internal/server/metrics"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
	"github.com/ajcloudsolutions/vmailapi/internal/server/provision"
	"github.com/ajcloudsolutions/vmailapi/internal/server/repositories/repomanager"
)

const (
	DefaultInspectLimit = 5
	MaxInspectLimit     = 100
)

// Caller is the authenticated operator behind a request.
type Caller struct {
	Username    string
	Admin       bool
	GlobalAdmin bool
}

func (c *Caller) domain() string {
	if i := strings.LastIndex(c.Username, "@"); i >= 0 {
		return c.Username[i+1:]
	}
	return ""
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Username    string
	Admin       bool
}

type MailboxService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	limiter                     lockout.Limiter
	provisioner                 provision.Provisioner
	metrics                     metrics.Recorder
	logger                      logging.Logger
	defaults                    MailboxDefaults
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

// Deps are the collaborators of MailboxService. Nil fields fall back to
// no-op implementations.
type Deps struct {
	Limiter     lockout.Limiter
	Provisioner provision.Provisioner
	Metrics     metrics.Recorder
	Logger      logging.Logger
}

func NewMailboxService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, deps Deps) *MailboxService {
	if deps.Limiter == nil {
		deps.Limiter = lockout.Nop{}
	}
	if deps.Provisioner == nil {
		deps.Provisioner = provision.Nop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Nop{}
	}

	return &MailboxService{
		db:                          db,
		repomanager:                 m,
		limiter:                     deps.Limiter,
		provisioner:                 deps.Provisioner,
		metrics:                     deps.Metrics,
		logger:                      deps.Logger.With("module", "mailbox_service"),
		defaults:                    DefaultsFromConfig(cfg),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// Login verifies the password of username and issues an access token.
// Every rejection, whatever the cause, is reported as common.ErrorUnauthorized.
func (s *MailboxService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := s.limiter.Enforce(ctx, username); err != nil {
		if errors.Is(err, common.ErrorLocked) {
			s.logger.Info(ctx, "login refused, mailbox locked", "username", username)
			s.metrics.Login(metrics.LoginLocked)
			return nil, common.ErrorLocked
		}
		s.logger.Error(ctx, "lockout check failed", "error", err)
		s.metrics.Login(metrics.LoginError)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Mailboxes(s.db)

	mailbox, err := repo.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, s.reject(metrics.LoginRejected)
		}
		s.logger.Error(ctx, "credential lookup failed", "error", err)
		s.metrics.Login(metrics.LoginError)
		return nil, common.ErrorInternal
	}

	ok, err := credential.Verify(mailbox.Password, password)
	if err != nil {
		s.logger.Warn(ctx, "stored credential is malformed", "username", username, "error", err)
		return nil, s.reject(metrics.LoginMalformed)
	}
	if !ok || !mailbox.IsActive() {
		return nil, s.reject(metrics.LoginRejected)
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn(ctx, "lockout reset failed", "error", err)
	}

	token, err := auth.GenerateToken(mailbox.Username, mailbox.IsAdmin == 1, mailbox.IsGlobalAdmin == 1, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		s.metrics.Login(metrics.LoginError)
		return nil, common.ErrorInternal
	}

	s.metrics.Login(metrics.LoginSuccess)

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   s.now().Add(s.accessTokenValidityDuration),
		Username:    mailbox.Username,
		Admin:       mailbox.Admin(),
	}, nil
}

// reject records outcome and hides the cause from the caller. The attempt
// itself was already counted by the limiter.
func (s *MailboxService) reject(outcome string) error {
	s.metrics.Login(outcome)
	return common.ErrorUnauthorized
}

// Register validates req, stores the new mailbox with an encoded password
// and provisions its storage. The returned mailbox has no password.
//
// caller must be an admin. Domain admins may only create plain mailboxes in
// their own domain; admin mailboxes require a global admin.
func (s *MailboxService) Register(ctx context.Context, caller *Caller, req RegistrationRequest) (*models.Mailbox, error) {
	if caller == nil || !(caller.Admin || caller.GlobalAdmin) {
		s.metrics.Registration(metrics.RegisterForbidden)
		return nil, fmt.Errorf("%w: admin rights required", common.ErrorForbidden)
	}

	mailbox, err := ValidateRegistration(req, s.defaults)
	if err != nil {
		s.metrics.Registration(metrics.RegisterInvalid)
		return nil, err
	}

	if err := authorizeRegistration(caller, mailbox); err != nil {
		s.logger.Warn(ctx, "registration refused", "caller", caller.Username, "username", mailbox.Username, "error", err)
		s.metrics.Registration(metrics.RegisterForbidden)
		return nil, err
	}

	encoded, err := credential.Encode(mailbox.Password)
	if err != nil {
		s.logger.Error(ctx, "password encoding failed", "error", err)
		s.metrics.Registration(metrics.RegisterError)
		return nil, common.ErrorInternal
	}
	mailbox.Password = encoded

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Mailboxes(tx)

		exists, err := repo.Exists(ctx, mailbox.Username)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		return repo.Create(ctx, mailbox)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.metrics.Registration(metrics.RegisterConflict)
			return nil, fmt.Errorf("%w: username %s", common.ErrorAlreadyExists, mailbox.Username)
		}
		s.logger.Error(ctx, "mailbox insert failed", "error", err)
		s.metrics.Registration(metrics.RegisterError)
		return nil, common.ErrorInternal
	}

	mailbox.Password = ""

	if err := s.provisioner.Provision(ctx, mailbox); err != nil {
		s.logger.Error(ctx, "storage provisioning failed", "username", mailbox.Username, "error", err)
		s.metrics.Registration(metrics.RegisterError)
		return nil, common.ErrorInternal
	}

	s.metrics.Registration(metrics.RegisterSuccess)
	s.logger.Info(ctx, "mailbox registered", "username", mailbox.Username)

	return mailbox, nil
}

func authorizeRegistration(caller *Caller, m *models.Mailbox) error {
	switch {
	case caller.GlobalAdmin:
		return nil
	case m.IsAdmin == 1 || m.IsGlobalAdmin == 1:
		return fmt.Errorf("%w: only a global admin can create admin mailboxes", common.ErrorForbidden)
	case !strings.EqualFold(caller.domain(), m.Domain):
		return fmt.Errorf("%w: domain admins can only create mailboxes in %s", common.ErrorForbidden, caller.domain())
	}
	return nil
}

func (s *MailboxService) GetMailbox(ctx context.Context, username string) (*models.Mailbox, error) {
	mailbox, err := s.repomanager.Mailboxes(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "mailbox lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return mailbox, nil
}

// Inspect reports the row count, the column layout and the most recently
// created mailboxes. limit <= 0 selects DefaultInspectLimit.
func (s *MailboxService) Inspect(ctx context.Context, limit int) (*models.Inventory, error) {
	if limit <= 0 {
		limit = DefaultInspectLimit
	}
	if limit > MaxInspectLimit {
		limit = MaxInspectLimit
	}

	repo := s.repomanager.Mailboxes(s.db)

	total, err := repo.Count(ctx)
	if err != nil {
		s.logger.Error(ctx, "mailbox count failed", "error", err)
		return nil, common.ErrorInternal
	}

	columns, err := repo.Columns(ctx)
	if err != nil {
		s.logger.Error(ctx, "column listing failed", "error", err)
		return nil, common.ErrorInternal
	}

	recent, err := repo.Recent(ctx, limit)
	if err != nil {
		s.logger.Error(ctx, "recent mailboxes failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &models.Inventory{Total: total, Columns: columns, Recent: recent}, nil
}
