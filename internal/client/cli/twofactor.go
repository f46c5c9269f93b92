package cli

import (
	"context"
	"errors"
	"fmt"
)

var errTwoFactorUsage = errors.New("usage: 2fa status | init | confirm [code] | disable [code]")

// TwoFactor runs a 2fa subcommand; with no arguments it shows the status.
func (a *App) TwoFactor(ctx context.Context, args []string) error {
	sub := "status"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "status":
		enabled, err := a.api.TwoFactorStatus(ctx)
		if err != nil {
			return err
		}
		if enabled {
			fmt.Fprintln(a.out, "2FA is enabled")
		} else {
			fmt.Fprintln(a.out, "2FA is disabled")
		}

	case "init":
		setup, err := a.api.InitTwoFactor(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Secret: %s\nURI:    %s\n", setup.Secret, setup.OTPAuth)
		fmt.Fprintln(a.out, "Add it to your authenticator app, then run '2fa confirm <code>'")

	case "confirm":
		code, err := a.codeArg(args, "Enter 2FA code")
		if err != nil {
			return err
		}
		if err := a.api.ConfirmTwoFactor(ctx, code); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "2FA enabled")

	case "disable":
		code, err := a.codeArg(args, "Enter 2FA code (empty if 2FA is off)")
		if err != nil {
			return err
		}
		if err := a.api.DisableTwoFactor(ctx, code); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "2FA disabled")

	default:
		return errTwoFactorUsage
	}

	return nil
}

func (a *App) codeArg(args []string, prompt string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
