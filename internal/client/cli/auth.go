package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/authclient"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Input indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register creates an account; the server logs it in right away.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Register(ctx, userName, string(password))
	if err != nil {
		return err
	}

	a.userName = res.Username
	fmt.Fprintf(a.out, "Registered %s (id %d)\n", res.Username, res.UserID)
	return nil
}

// Login authenticates. When the server answers 2fa_required the user is asked
// for a code and the login is retried once with it.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, userName, string(password), "")
	if authclient.IsTwoFactorRequired(err) {
		otp, perr := getSimpleText(a.reader, "Enter 2FA code", a.out)
		if perr != nil {
			return perr
		}
		res, err = a.api.Login(ctx, userName, string(password), otp)
	}
	if err != nil {
		return err
	}

	a.userName = res.Username
	if res.TwoFAEnabled {
		fmt.Fprintln(a.out, "Login successful (2FA)")
	} else {
		fmt.Fprintln(a.out, "Login successful")
	}
	return nil
}

func (a *App) Me(ctx context.Context) error {
	id, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (id %d)\n", id.Username, id.UserID)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	if !a.isLoggedIn() {
		a.userName = ""
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
