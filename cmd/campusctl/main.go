// Command campusctl drives the CampusIntelli portal from a terminal. The
// signed-in session is kept in a directory under the user's home.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"campusintelli/internal/api"
	"campusintelli/internal/changefeed"
	"campusintelli/internal/config"
	"campusintelli/internal/logging"
	"campusintelli/internal/portal"
	"campusintelli/internal/session"
	"campusintelli/internal/store"
	"campusintelli/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	app := newApp(cfg, os.Stdin, os.Stdout)
	app.ErrWriter = os.Stderr
	err = app.RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(cfg config.App, in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "campusctl",
		Usage:     "use the CampusIntelli portal from the command line",
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: cfg.APIBaseURL, EnvVars: []string{"API_BASE_URL"}, Usage: "backend base URL"},
			&cli.StringFlag{Name: "home", Value: cfg.CampusctlHome, EnvVars: []string{"CAMPUSCTL_HOME"}, Usage: "session directory"},
			&cli.DurationFlag{Name: "timeout", Value: cfg.APITimeout, Usage: "per-request timeout, 0 for none"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "answer yes to confirmation prompts"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level"},
		},
		Commands: commands(),
	}
}

// env is the controller stack of one invocation.
type env struct {
	ctx     context.Context
	app     *portal.App
	surface *ui.Surface
	out     io.Writer
	confirm *promptConfirmer
}

func open(c *cli.Context) (*env, error) {
	logger := logging.NewWithWriter(c.App.ErrWriter, c.String("log-level"), "console")
	kv, err := store.NewFile(c.String("home"))
	if err != nil {
		return nil, err
	}
	client := api.New(c.String("api"), api.WithTimeout(c.Duration("timeout")))
	surface := ui.NewSurface()
	app := portal.New(client, session.New(kv), surface, changefeed.New())
	ctx := logger.WithContext(c.Context)
	if _, err := app.Resume(ctx); err != nil {
		logger.Warn().Err(err).Msg("stored session unreadable")
	}
	return &env{
		ctx:     ctx,
		app:     app,
		surface: surface,
		out:     c.App.Writer,
		confirm: &promptConfirmer{yes: c.Bool("yes"), in: bufio.NewReader(c.App.Reader), out: c.App.Writer},
	}, nil
}

// run opens the stack, runs fn with the given page active and prints the
// resulting surface. The action's error is returned after printing.
func run(page ui.Page, fn func(ctx context.Context, c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := open(c)
		if err != nil {
			return err
		}
		ctx := e.ctx
		if page != "" {
			e.surface.SetPage(page)
		}
		actionErr := fn(ctx, c, e)
		if e.surface.Screen() == ui.ScreenMain {
			if err := e.app.Refresh(ctx); err != nil && actionErr == nil {
				actionErr = err
			}
		}
		printSurface(e.out, e.surface)
		return actionErr
	}
}

// promptConfirmer asks on the terminal unless --yes was given.
type promptConfirmer struct {
	yes bool
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(_ context.Context, prompt string) bool {
	if p.yes {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, _ := p.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
