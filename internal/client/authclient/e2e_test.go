package authclient_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/authclient"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpapi"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startServer(t *testing.T) string {
	t.Helper()

	store, err := repomanager.Open(context.Background(), repomanager.DriverSQLite, filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hasher, err := auth.NewHasher(bcrypt.MinCost, 2)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	svc := services.NewAuthService(store.DB, store.Manager, hasher, cfg)
	s := httpapi.NewHTTPServer(cfg.EndpointAddrHTTP, logging.NewJSONLogger(io.Discard, slog.LevelError), svc, cfg.SecretKey, nil, time.Second)

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestClientAgainstServer(t *testing.T) {
	url := startServer(t)
	ctx := context.Background()

	c := authclient.New(url, 5*time.Second)

	msg, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auth service up", msg)

	reg, err := c.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	first := c.Token()

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, me.UserID)

	setup, err := c.InitTwoFactor(ctx)
	require.NoError(t, err)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, c.ConfirmTwoFactor(ctx, code))

	other := authclient.New(url, 5*time.Second)
	_, err = other.Login(ctx, "alice", "secret123", "")
	require.True(t, authclient.IsTwoFactorRequired(err), "got %v", err)

	_, err = other.Login(ctx, "alice", "secret123", code)
	require.NoError(t, err)

	// the first client's session was superseded
	_, err = c.Me(ctx)
	assert.True(t, authclient.IsUnauthorized(err))
	assert.Equal(t, first, c.Token())

	enabled, err := other.TwoFactorStatus(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, other.Logout(ctx))
	assert.Empty(t, other.Token())
}
