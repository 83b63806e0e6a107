package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/server/config"
	"github.com/ajcloudsolutions/vmailapi/internal/server/models"
)

const (
	MaxQuotaMB        = 102400
	MinPasswordLength = 8

	// minUsernameLength covers the characters used by the maildir path.
	minUsernameLength = 4

	maxHostnameLength = 253
	maxLabelLength    = 63

	FormatMaildir = "maildir"
	FormatMdbox   = "mdbox"
)

// maildirRunes are the username positions that become maildir path segments.
var maildirRunes = [3]int{0, 2, 3}

// NeverExpires is written into the expired column of new mailboxes.
var NeverExpires = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// RegistrationRequest is the registration payload. Pointer fields are
// required unless noted; nil means the field was absent.
type RegistrationRequest struct {
	Username      string
	Password      string
	Name          string
	Domain        string
	Quota         *int64
	IsAdmin       *int32
	IsGlobalAdmin *int32
	Active        *int32

	// Optional.
	Language      *string
	MailboxFormat *string
}

// MailboxDefaults are the server-side values filled into every new mailbox.
type MailboxDefaults struct {
	Language             string
	StorageBaseDirectory string
	StorageNode          string
	MailboxFolder        string
	MaildirSuffix        string
}

// DefaultsFromConfig extracts MailboxDefaults from the server configuration.
func DefaultsFromConfig(cfg *config.Config) MailboxDefaults {
	return MailboxDefaults{
		Language:             cfg.DefaultLanguage,
		StorageBaseDirectory: cfg.StorageBaseDirectory,
		StorageNode:          cfg.StorageNode,
		MailboxFolder:        cfg.MailboxFolder,
		MaildirSuffix:        cfg.MaildirSuffix,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

// ValidateRegistration checks req and returns the mailbox row to insert.
// The returned Password is still the plaintext; the caller encodes it.
func ValidateRegistration(req RegistrationRequest, d MailboxDefaults) (*models.Mailbox, error) {
	for _, f := range []struct {
		name    string
		present bool
	}{
		{"username", req.Username != ""},
		{"password", req.Password != ""},
		{"name", req.Name != ""},
		{"domain", req.Domain != ""},
		{"quota", req.Quota != nil},
		{"isadmin", req.IsAdmin != nil},
		{"isglobaladmin", req.IsGlobalAdmin != nil},
		{"active", req.Active != nil},
	} {
		if !f.present {
			return nil, invalid("missing required field: %s", f.name)
		}
	}

	if !strings.Contains(req.Username, "@") {
		return nil, invalid("username must be a valid email address")
	}
	if !validHostname(req.Domain) {
		return nil, invalid("domain must be a valid hostname")
	}
	if !strings.HasSuffix(req.Username, "@"+req.Domain) {
		return nil, invalid("username domain must match the provided domain")
	}
	if utf8.RuneCountInString(req.Username) < minUsernameLength {
		return nil, invalid("username must be at least %d characters long", minUsernameLength)
	}
	u := []rune(req.Username)
	for _, i := range maildirRunes {
		if strings.ContainsRune(`/\.`, u[i]) {
			return nil, invalid(`username must not have '/', '\' or '.' at characters 1, 3 and 4`)
		}
	}

	if *req.Quota < 0 || *req.Quota > MaxQuotaMB {
		return nil, invalid("quota must be between 0 and %d MB", MaxQuotaMB)
	}

	for _, f := range []struct {
		name  string
		value int32
	}{
		{"isadmin", *req.IsAdmin},
		{"isglobaladmin", *req.IsGlobalAdmin},
		{"active", *req.Active},
	} {
		if f.value != 0 && f.value != 1 {
			return nil, invalid("%s must be 0 or 1", f.name)
		}
	}

	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return nil, invalid("password must be at least %d characters long", MinPasswordLength)
	}

	format := FormatMaildir
	if req.MailboxFormat != nil {
		switch *req.MailboxFormat {
		case FormatMaildir, FormatMdbox:
			format = *req.MailboxFormat
		default:
			return nil, invalid("invalid mailbox format, must be %q or %q", FormatMaildir, FormatMdbox)
		}
	}

	if req.Name == "." || req.Name == ".." || strings.ContainsAny(req.Name, `/\`) {
		return nil, invalid("name must not contain path separators")
	}

	language := d.Language
	if req.Language != nil && *req.Language != "" {
		language = *req.Language
	}

	return &models.Mailbox{
		Username:             req.Username,
		Password:             req.Password,
		Name:                 req.Name,
		Language:             language,
		StorageBaseDirectory: d.StorageBaseDirectory,
		StorageNode:          d.StorageNode,
		Maildir:              MaildirPath(req.Domain, req.Username, req.Name, d.MaildirSuffix),
		Quota:                *req.Quota,
		Domain:               req.Domain,
		MailboxFormat:        format,
		MailboxFolder:        d.MailboxFolder,
		IsAdmin:              *req.IsAdmin,
		IsGlobalAdmin:        *req.IsGlobalAdmin,
		Active:               *req.Active,
		Expired:              NeverExpires,
	}, nil
}

// validHostname accepts dot-separated labels of ASCII letters, digits and
// hyphens. Labels must not be empty or start or end with a hyphen.
func validHostname(domain string) bool {
	if len(domain) > maxHostnameLength {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" || len(label) > maxLabelLength || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-') {
				return false
			}
		}
	}
	return true
}

// MaildirPath builds "<domain>/<u0>/<u2>/<u3>/<name><suffix>/" from the
// first, third and fourth characters of username. The username must have
// at least four characters.
func MaildirPath(domain, username, name, suffix string) string {
	u := []rune(username)
	return fmt.Sprintf("%s/%c/%c/%c/%s%s/", domain, u[maildirRunes[0]], u[maildirRunes[1]], u[maildirRunes[2]], name, suffix)
}
