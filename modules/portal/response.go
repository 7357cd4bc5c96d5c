package portal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hostable/credkit/pkg/apikey"
	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/invoice"
	"github.com/hostable/credkit/pkg/sessiontoken"
	"github.com/hostable/credkit/pkg/twofactor"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service errors to HTTP status codes and stable error
// codes. Credential failures deliberately share one generic message so the
// response cannot distinguish a wrong password from an unknown account.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, apikey.ErrInvalidKey),
		errors.Is(err, sessiontoken.ErrNoToken),
		errors.Is(err, sessiontoken.ErrInvalidToken),
		errors.Is(err, sessiontoken.ErrExpiredToken),
		errors.Is(err, sessiontoken.ErrInvalidSignature):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials", Code: "invalid_credentials"})

	case errors.Is(err, auth.ErrAccountSuspended):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "account suspended", Code: "account_suspended"})
	case errors.Is(err, apikey.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Code: "forbidden"})

	case errors.Is(err, twofactor.ErrNoChallenge):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "no active verification code", Code: "no_challenge"})
	case errors.Is(err, twofactor.ErrChallengeExpired):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "verification code expired", Code: "challenge_expired"})
	case errors.Is(err, twofactor.ErrChallengeMismatch):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "incorrect verification code", Code: "challenge_mismatch"})

	case errors.Is(err, auth.ErrEmailAlreadyExists):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "email already registered", Code: "email_exists"})
	case errors.Is(err, auth.ErrWeakPassword):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "password must be between 8 and 128 characters", Code: "weak_password"})

	case errors.Is(err, apikey.ErrInvalidLabel):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "label must be between 3 and 50 characters", Code: "invalid_label"})
	case errors.Is(err, apikey.ErrQuotaExceeded):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "active key limit reached", Code: "quota_exceeded"})
	case errors.Is(err, apikey.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "key not found", Code: "not_found"})

	case errors.Is(err, invoice.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "invoice not found", Code: "not_found"})

	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func respondBadRequest(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body", Code: "bad_request"})
}
