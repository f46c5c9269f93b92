// Package auth holds the credential primitives of the service: bearer token
// signing and verification, password hashing and TOTP codes.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a bearer token. Subject carries the account id in
// decimal form.
type Claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	SessionID int64  `json:"sessionId"`
}

// AccountID returns the account id stored in the subject.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}

// GenerateToken signs an HS256 token for the given account and session that
// expires after validityDuration.
func GenerateToken(accountID int64, username string, sessionID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username:  username,
		SessionID: sessionID,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies signature and expiry and returns the decoded claims.
// Expired tokens yield common.ErrTokenExpired, any other failure
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if _, err := claims.AccountID(); err != nil {
		return nil, err
	}
	if claims.SessionID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
