package authclient

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

type otpRequest struct {
	OTP string `json:"otp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Enabled bool `json:"enabled"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	Token        string `json:"token"`
	TwoFAEnabled bool   `json:"twofaEnabled"`
}

// Identity is returned by /me.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// TwoFactorSetup is returned by /2fa/init.
type TwoFactorSetup struct {
	Secret  string `json:"secret"`
	OTPAuth string `json:"otpauth"`
}
