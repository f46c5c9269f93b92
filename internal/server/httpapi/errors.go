package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorInternal):
		return http.StatusInternalServerError
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorInvalidCode),
		errors.Is(err, common.ErrorPrecondition):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorTwoFactorRequired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// mapError writes err as {"error": msg}. Internal failures are logged and
// reported without detail.
func (s *HTTPServer) mapError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	var cerr *common.Error
	if status == http.StatusInternalServerError || !errors.As(err, &cerr) {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}

	writeError(w, status, cerr.Message)
}
