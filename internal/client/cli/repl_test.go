package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) dispatch(ctx context.Context, cmd string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(cmd+" "+strings.Join(args, " ")))
	if cmd == "login" {
		f.loggedIn = true
	}
	return nil
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"",
		"get alice@example.com",
		"inspect 3",
		"foobar",
		"exit",
		"ping",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{"login", "get alice@example.com", "inspect 3", "foobar"}
	if strings.Join(exec.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	printed := silence(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\nquit\n")))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))

	joined := strings.Join(*printed, "\n")
	if !strings.Contains(joined, "Available commands: login, register, ping, exit") {
		t.Fatalf("anonymous help missing: %s", joined)
	}
	if !strings.Contains(joined, "inspect [limit]") {
		t.Fatalf("logged-in help missing: %s", joined)
	}
	if !strings.Contains(joined, "Bye!") {
		t.Fatalf("quit not acknowledged: %s", joined)
	}
}
