package models

import "time"

// Account is a registered user of the auth service.
//
// TwoFASecret is non-empty while 2FA is pending (TwoFAEnabled=false) or
// active (TwoFAEnabled=true). CurrentSessionID is zero when the account has
// no current session.
type Account struct {
	ID               int64
	UserName         string
	PasswordHash     string
	TwoFAEnabled     bool
	TwoFASecret      string
	CurrentSessionID int64
	CreatedAt        time.Time
}

// HasPendingSecret reports whether a 2FA secret is stored for the account.
func (a *Account) HasPendingSecret() bool {
	return a.TwoFASecret != ""
}

// IsCurrentSession reports whether sessionID is the account's current session.
func (a *Account) IsCurrentSession(sessionID int64) bool {
	return a.CurrentSessionID != 0 && a.CurrentSessionID == sessionID
}
