package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	OTP      OTPValue `json:"otp,omitempty"`
}

type AuthResponse struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	Token        string `json:"token"`
	TwoFAEnabled bool   `json:"twofaEnabled"`
}

type MeResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type OTPRequest struct {
	OTP OTPValue `json:"otp"`
}

type TwoFactorStatusResponse struct {
	Enabled bool `json:"enabled"`
}

type TwoFactorInitResponse struct {
	Secret  string `json:"secret"`
	OTPAuth string `json:"otpauth"`
}

// OTPValue is a one-time code sent either as a JSON string or as a number.
type OTPValue string

func (o *OTPValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*o = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = OTPValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("otp must be a string or a number")
	}
	*o = OTPValue(n.String())
	return nil
}
