package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/ajcloudsolutions/vmailapi/internal/rpc"
)

var errUsage = errors.New("usage error")

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	var err error

	switch cmd {
	case "login":
		err = a.Login(ctx)
	case "register":
		err = a.Register(ctx)
	case "get":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: get <username>")
			return errUsage
		}
		err = a.Get(ctx, args[0])
	case "inspect":
		limit := 0
		if len(args) > 0 {
			if limit, err = strconv.Atoi(args[0]); err != nil {
				fmt.Fprintln(a.out, "Usage: inspect [limit]")
				return errUsage
			}
		}
		err = a.Inspect(ctx, limit)
	case "ping":
		err = a.Ping(ctx)
	case "logout":
		a.Logout(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return errUsage
	}

	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
	return err
}

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter username (email)", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.userName = resp.Username
	a.admin = resp.Admin

	fmt.Fprintf(a.out, "%s, token valid until %s\n", resp.Message, resp.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) Register(ctx context.Context) error {
	if err := a.ensureLogin(ctx); err != nil {
		return err
	}

	req := &rpc.RegisterRequest{}
	var err error

	if req.Username, err = GetSimpleText(a.reader, "Username (email)", a.out); err != nil {
		return err
	}
	if req.Name, err = GetSimpleText(a.reader, "Display name", a.out); err != nil {
		return err
	}
	if req.Domain, err = GetSimpleText(a.reader, "Domain", a.out); err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	quota, err := GetInt(a.reader, "Quota (MB)", 1024, a.out)
	if err != nil {
		return err
	}
	req.Quota = &quota

	flags := []struct {
		prompt string
		def    int64
		dst    **int32
	}{
		{"Domain admin (0/1)", 0, &req.IsAdmin},
		{"Global admin (0/1)", 0, &req.IsGlobalAdmin},
		{"Active (0/1)", 1, &req.Active},
	}
	for _, f := range flags {
		v, err := GetInt(a.reader, f.prompt, f.def, a.out)
		if err != nil {
			return err
		}
		n := int32(v)
		*f.dst = &n
	}

	if req.Language, err = GetOptional(a.reader, "Language", a.out); err != nil {
		return err
	}
	if req.MailboxFormat, err = GetOptional(a.reader, "Mailbox format (maildir/mdbox)", a.out); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	m, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User registered successfully: %s (maildir %s)\n", m.Username, m.Maildir)
	return nil
}

// ensureLogin prompts for credentials when no session exists.
func (a *App) ensureLogin(ctx context.Context) error {
	if a.isLoggedIn() {
		return nil
	}
	return a.Login(ctx)
}

func (a *App) Get(ctx context.Context, username string) error {
	if err := a.ensureLogin(ctx); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	m, err := a.client.GetMailbox(ctx, username)
	if err != nil {
		return err
	}
	return a.printJSON(m)
}

func (a *App) Inspect(ctx context.Context, limit int) error {
	if err := a.ensureLogin(ctx); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	inv, err := a.client.Inspect(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Total mailboxes: %d\n", inv.Total)
	fmt.Fprintln(a.out, "Columns:")
	for _, c := range inv.Columns {
		fmt.Fprintf(a.out, "  %s (%s)\n", c.Name, c.DataType)
	}
	fmt.Fprintln(a.out, "Recent mailboxes:")
	for _, m := range inv.Recent {
		fmt.Fprintf(a.out, "  %s  %s  created %s\n", m.Username, m.Maildir, m.Created.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) Logout(ctx context.Context) {
	a.client.Logout()
	a.userName = ""
	a.admin = false
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}
