package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/authclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoFactor_Status(t *testing.T) {
	api := &fakeAPI{token: "tok"}
	a, out := newTestApp(api)

	require.NoError(t, a.TwoFactor(context.Background(), nil))
	assert.Contains(t, out.String(), "2FA is disabled")

	api.enabled = true
	require.NoError(t, a.TwoFactor(context.Background(), []string{"status"}))
	assert.Contains(t, out.String(), "2FA is enabled")
}

func TestTwoFactor_Init(t *testing.T) {
	api := &fakeAPI{token: "tok", setup: &authclient.TwoFactorSetup{Secret: "JBSWY3DPEHPK3PXP", OTPAuth: "otpauth://totp/x"}}
	a, out := newTestApp(api)

	require.NoError(t, a.TwoFactor(context.Background(), []string{"init"}))
	assert.Contains(t, out.String(), "JBSWY3DPEHPK3PXP")
	assert.Contains(t, out.String(), "otpauth://totp/x")
}

func TestTwoFactor_ConfirmFromArg(t *testing.T) {
	prompts := stubInputs(t, nil, "")
	api := &fakeAPI{token: "tok"}
	a, out := newTestApp(api)

	require.NoError(t, a.TwoFactor(context.Background(), []string{"confirm", "123456"}))
	assert.Equal(t, "123456", api.confirmOTP)
	assert.Empty(t, *prompts)
	assert.Contains(t, out.String(), "2FA enabled")
}

func TestTwoFactor_ConfirmPrompts(t *testing.T) {
	prompts := stubInputs(t, []string{"654321"}, "")
	api := &fakeAPI{token: "tok"}
	a, _ := newTestApp(api)

	require.NoError(t, a.TwoFactor(context.Background(), []string{"confirm"}))
	assert.Equal(t, "654321", api.confirmOTP)
	assert.Equal(t, []string{"Enter 2FA code"}, *prompts)
}

func TestTwoFactor_DisableError(t *testing.T) {
	api := &fakeAPI{token: "tok", disableErr: &authclient.APIError{Status: http.StatusBadRequest, Message: "invalid 2fa code"}}
	a, _ := newTestApp(api)

	err := a.TwoFactor(context.Background(), []string{"disable", "000000"})
	require.Error(t, err)
	assert.Equal(t, "000000", api.disableOTP)
	assert.Equal(t, "invalid 2fa code", describe(err))
}

func TestTwoFactor_Usage(t *testing.T) {
	a, _ := newTestApp(&fakeAPI{})
	assert.ErrorIs(t, a.TwoFactor(context.Background(), []string{"reset"}), errTwoFactorUsage)
}
