package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/authclient"
)

type loginCall struct {
	user, pass, otp string
}

type fakeAPI struct {
	token string

	healthMsg string
	healthErr error

	regRes *authclient.AuthResponse
	regErr error

	logins    []loginCall
	loginRes  []*authclient.AuthResponse
	loginErrs []error

	logoutErr error
	meRes     *authclient.Identity
	meErr     error

	enabled   bool
	statusErr error
	setup     *authclient.TwoFactorSetup
	initErr   error

	confirmOTP string
	confirmErr error
	disableOTP string
	disableErr error
}

func (f *fakeAPI) Token() string { return f.token }

func (f *fakeAPI) Health(context.Context) (string, error) { return f.healthMsg, f.healthErr }

func (f *fakeAPI) Register(_ context.Context, _, _ string) (*authclient.AuthResponse, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.token = f.regRes.Token
	return f.regRes, nil
}

func (f *fakeAPI) Login(_ context.Context, user, pass, otp string) (*authclient.AuthResponse, error) {
	i := len(f.logins)
	f.logins = append(f.logins, loginCall{user, pass, otp})
	if i < len(f.loginErrs) && f.loginErrs[i] != nil {
		return nil, f.loginErrs[i]
	}
	res := f.loginRes[i]
	f.token = res.Token
	return res, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	if f.logoutErr == nil || authclient.IsUnauthorized(f.logoutErr) {
		f.token = ""
	}
	return f.logoutErr
}

func (f *fakeAPI) Me(context.Context) (*authclient.Identity, error) { return f.meRes, f.meErr }

func (f *fakeAPI) TwoFactorStatus(context.Context) (bool, error) { return f.enabled, f.statusErr }

func (f *fakeAPI) InitTwoFactor(context.Context) (*authclient.TwoFactorSetup, error) {
	return f.setup, f.initErr
}

func (f *fakeAPI) ConfirmTwoFactor(_ context.Context, otp string) error {
	f.confirmOTP = otp
	return f.confirmErr
}

func (f *fakeAPI) DisableTwoFactor(_ context.Context, otp string) error {
	f.disableOTP = otp
	return f.disableErr
}

func newTestApp(api *fakeAPI) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{api: api, reader: bufio.NewReader(strings.NewReader("")), out: out}, out
}

// stubInputs answers text prompts from texts in order and every password
// prompt with password.
func stubInputs(t *testing.T, texts []string, password string) *[]string {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	var prompts []string
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
	return &prompts
}
