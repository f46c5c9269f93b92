// Package authclient is a typed HTTP client for the auth service. It keeps
// the bearer token issued by the last successful register or login.
package authclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/netx"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for the server at baseURL, e.g. "http://localhost:3001".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Health returns the server's status message.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodGet, "/", false, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/register", credentialsRequest{Username: username, Password: password})
}

// Login authenticates; otp may be empty for accounts without 2FA. Use
// IsTwoFactorRequired on the error to detect a missing code.
func (c *Client) Login(ctx context.Context, username, password, otp string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/login", credentialsRequest{Username: username, Password: password, OTP: otp})
}

// Logout ends the session. The stored token is dropped whenever the server
// answers, including when it reports the session as already invalid.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", true, nil, nil)
	if err == nil || IsUnauthorized(err) {
		c.SetToken("")
	}
	return err
}

func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out Identity
	if err := c.do(ctx, http.MethodGet, "/me", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TwoFactorStatus(ctx context.Context) (bool, error) {
	var out statusResponse
	if err := c.do(ctx, http.MethodGet, "/2fa/status", true, nil, &out); err != nil {
		return false, err
	}
	return out.Enabled, nil
}

func (c *Client) InitTwoFactor(ctx context.Context) (*TwoFactorSetup, error) {
	var out TwoFactorSetup
	if err := c.do(ctx, http.MethodPost, "/2fa/init", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmTwoFactor(ctx context.Context, otp string) error {
	return c.do(ctx, http.MethodPost, "/2fa/confirm", true, otpRequest{OTP: otp}, nil)
}

func (c *Client) DisableTwoFactor(ctx context.Context, otp string) error {
	return c.do(ctx, http.MethodPost, "/2fa/disable", true, otpRequest{OTP: otp}, nil)
}

func (c *Client) authenticate(ctx context.Context, path string, req credentialsRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, false, req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, withToken bool, in, out any) error {
	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, in)
	if err != nil {
		return err
	}

	if withToken {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if netx.IsUnavailable(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e errorResponse
		_ = netx.DecodeJSON(resp, &e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return netx.DecodeJSON(resp, out)
}
