package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/ajcloudsolutions/vmailapi/internal/client/client"
	"github.com/ajcloudsolutions/vmailapi/internal/client/config"
)

type App struct {
	config   *config.Config
	client   client.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
	admin    bool
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewMailboxClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run executes args as a single command, or starts the REPL when args is
// empty. It returns the error of a single command.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.client.Close()

	if len(args) == 0 {
		runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
		return nil
	}
	return a.dispatch(ctx, args[0], args[1:])
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	if a.admin {
		return "(" + a.userName + " admin)"
	}
	return "(" + a.userName + ")"
}

// withTimeout applies the configured per-request deadline.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
