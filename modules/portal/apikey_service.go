package portal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hostable/credkit/pkg/apikey"
	"github.com/hostable/credkit/pkg/auth"
)

// APIKeyService manages a customer's API keys. Mounted behind the session
// middleware; every operation acts on the context user's own keys.
type APIKeyService struct {
	keys *apikey.Manager
}

func NewAPIKeyService(keys *apikey.Manager) *APIKeyService {
	return &APIKeyService{keys: keys}
}

func (s *APIKeyService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.list)
	r.Post("/", s.create)
	r.Delete("/{id}", s.revoke)
	return r
}

type keyResponse struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Prefix    string     `json:"prefix"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toKeyResponse(k apikey.Key) keyResponse {
	return keyResponse{
		ID:        k.ID.String(),
		Label:     k.Label,
		Prefix:    k.Prefix,
		Active:    k.Active,
		ExpiresAt: k.ExpiresAt,
		LastUsed:  k.LastUsed,
		CreatedAt: k.CreatedAt,
	}
}

type createKeyRequest struct {
	Label string `json:"label"`
}

type createKeyResponse struct {
	keyResponse
	// Secret is shown exactly once; it is not recoverable afterwards.
	Secret string `json:"secret"`
}

func (s *APIKeyService) create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, auth.ErrInvalidCredentials)
		return
	}

	var req createKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	key, secret, err := s.keys.Create(r.Context(), user.ID, req.Label)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, createKeyResponse{keyResponse: toKeyResponse(*key), Secret: secret})
}

func (s *APIKeyService) list(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, auth.ErrInvalidCredentials)
		return
	}

	keys, err := s.keys.List(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]keyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, toKeyResponse(k))
	}
	respondJSON(w, http.StatusOK, map[string][]keyResponse{"keys": out})
}

func (s *APIKeyService) revoke(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, auth.ErrInvalidCredentials)
		return
	}

	keyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apikey.ErrNotFound)
		return
	}

	if err := s.keys.Revoke(r.Context(), user.ID, keyID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
