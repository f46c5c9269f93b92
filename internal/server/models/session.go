package models

import "time"

// Session is one logical login. Only the account's current session is
// accepted for protected operations.
type Session struct {
	ID         int64
	AccountID  int64
	Token      string
	CreatedAt  time.Time
	LastSeenAt time.Time
}
