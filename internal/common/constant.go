// Package common contains shared constants and sentinel errors used across
// GophAuth components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// TwoFactorRequiredCode is the machine-readable error returned by /login when
// the account has 2FA enabled and no code was supplied.
const TwoFactorRequiredCode = "2fa_required"
