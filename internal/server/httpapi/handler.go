package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func (s *HTTPServer) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "auth service up"})
}

func (s *HTTPServer) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "user_id", res.UserID)
	writeJSON(w, http.StatusCreated, AuthResponse{
		UserID:       res.UserID,
		Username:     res.Username,
		Token:        res.Token,
		TwoFAEnabled: res.TwoFAEnabled,
	})
}

func (s *HTTPServer) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.auth.Login(r.Context(), req.Username, req.Password, string(req.OTP))
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		UserID:       res.UserID,
		Username:     res.Username,
		Token:        res.Token,
		TwoFAEnabled: res.TwoFAEnabled,
	})
}

func (s *HTTPServer) Logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	if err := s.auth.Logout(r.Context(), claims); err != nil {
		s.mapError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	id, err := s.auth.Me(r.Context(), claims)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{UserID: id.UserID, Username: id.Username})
}

func (s *HTTPServer) TwoFactorStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	enabled, err := s.auth.TwoFactorStatus(r.Context(), claims)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TwoFactorStatusResponse{Enabled: enabled})
}

func (s *HTTPServer) InitTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	setup, err := s.auth.InitTwoFactor(r.Context(), claims)
	if err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TwoFactorInitResponse{Secret: setup.Secret, OTPAuth: setup.OTPAuthURL})
}

func (s *HTTPServer) ConfirmTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req OTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.auth.ConfirmTwoFactor(r.Context(), claims, string(req.OTP)); err != nil {
		s.mapError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "2fa enabled", "user_id", claims.Subject)
	writeJSON(w, http.StatusOK, TwoFactorStatusResponse{Enabled: true})
}

func (s *HTTPServer) DisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req OTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.auth.DisableTwoFactor(r.Context(), claims, string(req.OTP)); err != nil {
		s.mapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TwoFactorStatusResponse{Enabled: false})
}

// decodeBody reads a JSON body into v. An empty body leaves v zero so the
// service reports the missing fields itself.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}

	writeError(w, http.StatusBadRequest, "invalid request body")
	return false
}
