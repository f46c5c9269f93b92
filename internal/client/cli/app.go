// Package cli is an interactive shell for the auth service: register, log in
// (with a TOTP code when the account requires one), inspect the session and
// manage two-factor authentication.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/authclient"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

// authAPI is the part of authclient.Client the shell drives.
type authAPI interface {
	Token() string
	Health(ctx context.Context) (string, error)
	Register(ctx context.Context, username, password string) (*authclient.AuthResponse, error)
	Login(ctx context.Context, username, password, otp string) (*authclient.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*authclient.Identity, error)
	TwoFactorStatus(ctx context.Context) (bool, error)
	InitTwoFactor(ctx context.Context) (*authclient.TwoFactorSetup, error)
	ConfirmTwoFactor(ctx context.Context, otp string) error
	DisableTwoFactor(ctx context.Context, otp string) error
}

type App struct {
	config   *config.Config
	api      authAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &App{
		config: c,
		api:    authclient.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run checks the server and starts the shell. It returns when input ends or
// the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the auth CLI (type 'help' for commands)")

	if msg, err := a.api.Health(ctx); err != nil {
		fmt.Fprintf(a.out, "Server at %s is not reachable: %s\n", a.config.ServerURL, describe(err))
	} else {
		fmt.Fprintf(a.out, "Server at %s: %s\n", a.config.ServerURL, msg)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
