// Package services contains server-side business logic. This file implements
// AuthService: registration, login with optional TOTP, logout, session
// introspection and two-factor enrollment.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	UserID       int64
	Username     string
	Token        string
	TwoFAEnabled bool
}

// Identity is the account behind a valid session.
type Identity struct {
	UserID   int64
	Username string
}

// TwoFactorSetup carries a freshly generated, not yet confirmed TOTP secret.
type TwoFactorSetup struct {
	Secret     string
	OTPAuthURL string
}

// Option customizes an AuthService.
type Option func(*AuthService)

// WithClock replaces time.Now as the source of time for TOTP checks.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

// AuthService implements the credential and session operations. An account
// has at most one current session; tokens naming any other session are
// rejected by every operation that reads or changes account state.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.Hasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	totpIssuer                  string
	now                         func() time.Time
}

// NewAuthService constructs an AuthService from the store and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, cfg *config.Config, opts ...Option) *AuthService {
	s := &AuthService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		totpIssuer:                  cfg.TOTPIssuer,
		now:                         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register creates an account and logs it in.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrMissingCredentials
	}

	_, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, common.ErrUsernameTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError("error looking up account", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.ErrPasswordTooLong
		}
		return nil, internalError("error hashing password", err)
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*AuthResult, error) {
		account, err := s.repomanager.Accounts(tx).Create(ctx, username, hash)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return nil, common.ErrUsernameTaken
			}
			return nil, internalError("error creating account", err)
		}
		return s.issueSession(ctx, tx, account)
	})
}

// Login verifies credentials and, when 2FA is on, the TOTP code, then opens
// a new session that supersedes any previous one.
func (s *AuthService) Login(ctx context.Context, username, password, otp string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrMissingCredentials
	}

	account, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if err := s.hasher.CompareMissing(ctx, password); err != nil {
				return nil, internalError("error comparing password", err)
			}
			return nil, common.ErrIncorrectCredentials
		}
		return nil, internalError("error looking up account", err)
	}

	ok, err := s.hasher.Compare(ctx, account.PasswordHash, password)
	if err != nil {
		return nil, internalError("error comparing password", err)
	}
	if !ok {
		return nil, common.ErrIncorrectCredentials
	}

	if account.TwoFAEnabled {
		if otp == "" {
			return nil, common.ErrTwoFactorRequired
		}
		if !auth.ValidateTOTP(otp, account.TwoFASecret, s.now()) {
			return nil, common.ErrIncorrectTwoFactorCode
		}
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*AuthResult, error) {
		return s.issueSession(ctx, tx, account)
	})
}

// Logout deletes the current session named by claims.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.requireCurrentSession(ctx, tx, claims, common.ErrInvalidSession)
		if err != nil {
			return err
		}
		if err := s.repomanager.Sessions(tx).Delete(ctx, claims.SessionID, account.ID); err != nil {
			return internalError("error deleting session", err)
		}
		if err := s.repomanager.Accounts(tx).ClearCurrentSession(ctx, account.ID, claims.SessionID); err != nil {
			return internalError("error clearing current session", err)
		}
		return nil
	})
}

// Me returns the identity behind a current session.
func (s *AuthService) Me(ctx context.Context, claims *auth.Claims) (*Identity, error) {
	account, err := s.requireCurrentSession(ctx, s.db, claims, common.ErrInvalidSession)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: account.ID, Username: account.UserName}, nil
}

// TwoFactorStatus reports whether 2FA is enabled.
func (s *AuthService) TwoFactorStatus(ctx context.Context, claims *auth.Claims) (bool, error) {
	account, err := s.requireCurrentSession(ctx, s.db, claims, common.ErrAccountNotFound)
	if err != nil {
		return false, err
	}
	return account.TwoFAEnabled, nil
}

// InitTwoFactor generates a new pending secret, replacing any earlier one
// and switching 2FA off until it is confirmed.
func (s *AuthService) InitTwoFactor(ctx context.Context, claims *auth.Claims) (*TwoFactorSetup, error) {
	account, err := s.requireCurrentSession(ctx, s.db, claims, common.ErrAccountNotFound)
	if err != nil {
		return nil, err
	}

	secret, url, err := auth.GenerateTOTP(s.totpIssuer, account.UserName)
	if err != nil {
		return nil, internalError("error generating TOTP secret", err)
	}

	if err := s.repomanager.Accounts(s.db).SetTwoFactorSecret(ctx, account.ID, secret); err != nil {
		return nil, s.accountWriteError(err, "error storing TOTP secret")
	}

	return &TwoFactorSetup{Secret: secret, OTPAuthURL: url}, nil
}

// ConfirmTwoFactor enables 2FA once otp validates against the pending secret.
func (s *AuthService) ConfirmTwoFactor(ctx context.Context, claims *auth.Claims, otp string) error {
	if otp == "" {
		return common.ErrMissingCode
	}

	account, err := s.requireCurrentSession(ctx, s.db, claims, common.ErrAccountNotFound)
	if err != nil {
		return err
	}
	if !account.HasPendingSecret() {
		return common.ErrNoPendingSecret
	}
	if !auth.ValidateTOTP(otp, account.TwoFASecret, s.now()) {
		return common.ErrIncorrectCode
	}

	if err := s.repomanager.Accounts(s.db).EnableTwoFactor(ctx, account.ID); err != nil {
		return s.accountWriteError(err, "error enabling 2FA")
	}
	return nil
}

// DisableTwoFactor turns 2FA off and erases the secret. It succeeds without
// a code when 2FA is already off.
func (s *AuthService) DisableTwoFactor(ctx context.Context, claims *auth.Claims, otp string) error {
	account, err := s.requireCurrentSession(ctx, s.db, claims, common.ErrAccountNotFound)
	if err != nil {
		return err
	}
	if !account.TwoFAEnabled {
		return nil
	}

	if otp == "" {
		return common.ErrMissingCode
	}
	if !auth.ValidateTOTP(otp, account.TwoFASecret, s.now()) {
		return common.ErrIncorrectCode
	}

	if err := s.repomanager.Accounts(s.db).DisableTwoFactor(ctx, account.ID); err != nil {
		return s.accountWriteError(err, "error disabling 2FA")
	}
	return nil
}

// --- helpers below ---

// issueSession creates a session, makes it current and signs a token for it.
// It must run inside the transaction that created or loaded the account.
func (s *AuthService) issueSession(ctx context.Context, tx dbx.DBTX, account *models.Account) (*AuthResult, error) {
	session, err := s.repomanager.Sessions(tx).Create(ctx, account.ID, uuid.NewString())
	if err != nil {
		return nil, internalError("error creating session", err)
	}

	if err := s.repomanager.Accounts(tx).SetCurrentSession(ctx, account.ID, session.ID); err != nil {
		return nil, internalError("error setting current session", err)
	}

	token, err := auth.GenerateToken(account.ID, account.UserName, session.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, internalError("error signing token", err)
	}

	return &AuthResult{
		UserID:       account.ID,
		Username:     account.UserName,
		Token:        token,
		TwoFAEnabled: account.TwoFAEnabled,
	}, nil
}

// requireCurrentSession loads the account named by claims and checks that
// the token's session is both current and still stored, then refreshes its
// last-seen time. A missing account yields missing; a stale or deleted
// session yields common.ErrInvalidSession.
func (s *AuthService) requireCurrentSession(ctx context.Context, db dbx.DBTX, claims *auth.Claims, missing error) (*models.Account, error) {
	accountID, err := claims.AccountID()
	if err != nil {
		return nil, common.ErrInvalidSession
	}

	account, err := s.repomanager.Accounts(db).GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, missing
		}
		return nil, internalError("error loading account", err)
	}

	if !account.IsCurrentSession(claims.SessionID) {
		return nil, common.ErrInvalidSession
	}

	sessions := s.repomanager.Sessions(db)
	if _, err := sessions.Find(ctx, claims.SessionID, account.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidSession
		}
		return nil, internalError("error loading session", err)
	}

	if err := sessions.Touch(ctx, claims.SessionID); err != nil {
		return nil, internalError("error touching session", err)
	}

	return account, nil
}

// accountWriteError maps a failed single-row account update.
func (s *AuthService) accountWriteError(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrAccountNotFound
	}
	return internalError(msg, err)
}

func internalError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, msg, err)
}
