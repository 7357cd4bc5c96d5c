package portal

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/invoice"
)

// InvoiceStorage extends the verification port with issuance-side writes.
type InvoiceStorage interface {
	invoice.Storage
	CreateInvoice(ctx context.Context, ownerID *uuid.UUID, rec invoice.Record) error
}

// InvoiceService stamps invoices at issuance (admin only) and verifies
// holder-presented copies on an unauthenticated public endpoint.
type InvoiceService struct {
	signer  *invoice.Service
	storage InvoiceStorage
	users   auth.Storage
}

func NewInvoiceService(signer *invoice.Service, storage InvoiceStorage, users auth.Storage) *InvoiceService {
	return &InvoiceService{signer: signer, storage: storage, users: users}
}

// HandleVerify is the public verification endpoint, mounted without auth.
func (s *InvoiceService) HandleVerify() http.Handler {
	r := chi.NewRouter()
	r.Post("/verify", s.verify)
	return r
}

// HandleAdmin is the issuance endpoint, mounted behind the admin role check.
func (s *InvoiceService) HandleAdmin() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.issue)
	return r
}

type issueRequest struct {
	Number string `json:"number"`
	Amount int64  `json:"amount"`
	Email  string `json:"email"`
}

type issueResponse struct {
	Number          string `json:"number"`
	VerificationKey string `json:"verification_key"`
	PinHash         string `json:"pin_hash,omitempty"`
	Signature       string `json:"signature"`
}

func (s *InvoiceService) issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}
	if req.Number == "" || req.Amount <= 0 || req.Email == "" {
		respondBadRequest(w)
		return
	}

	// The PIN printed on the document belongs to the invoice owner, looked
	// up by the billed address. An owner without a PIN yields an invoice
	// that can never pass verification, matching the verifier's rules.
	var pin string
	var ownerID *uuid.UUID
	if owner, err := s.users.GetUserByEmail(r.Context(), req.Email); err == nil {
		pin = owner.PIN
		ownerID = &owner.ID
	}

	stamp, err := s.signer.Sign(r.Context(), req.Number, req.Amount, req.Email, pin)
	if err != nil {
		respondError(w, err)
		return
	}

	rec := invoice.Record{
		Number:          req.Number,
		Amount:          req.Amount,
		Email:           req.Email,
		VerificationKey: stamp.VerificationKey,
		PinHash:         stamp.PinHash,
		Signature:       stamp.Signature,
	}
	if err := s.storage.CreateInvoice(r.Context(), ownerID, rec); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, issueResponse{
		Number:          rec.Number,
		VerificationKey: rec.VerificationKey,
		PinHash:         rec.PinHash,
		Signature:       rec.Signature,
	})
}

type verifyRequest struct {
	Number          string `json:"number"`
	VerificationKey string `json:"verification_key"`
	Email           string `json:"email"`
	PinHash         string `json:"pin_hash"`
	Signature       string `json:"signature"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// verify reports the outcome with the failing check's kind. A holder who
// typed one field wrong learns which one to fix; every value checked here
// is already printed on the document, so the kinds reveal nothing new.
func (s *InvoiceService) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	err := s.signer.Verify(r.Context(), invoice.VerifyRequest{
		Number:          req.Number,
		VerificationKey: req.VerificationKey,
		Email:           req.Email,
		PinHash:         req.PinHash,
		Signature:       req.Signature,
	})
	if err == nil {
		respondJSON(w, http.StatusOK, verifyResponse{Valid: true})
		return
	}

	switch err {
	case invoice.ErrNotFound:
		respondJSON(w, http.StatusNotFound, verifyResponse{Valid: false, Reason: "not_found"})
	case invoice.ErrEmailMismatch:
		respondJSON(w, http.StatusUnprocessableEntity, verifyResponse{Valid: false, Reason: "email_mismatch"})
	case invoice.ErrKeyMismatch:
		respondJSON(w, http.StatusUnprocessableEntity, verifyResponse{Valid: false, Reason: "key_mismatch"})
	case invoice.ErrPinMismatch:
		respondJSON(w, http.StatusUnprocessableEntity, verifyResponse{Valid: false, Reason: "pin_mismatch"})
	case invoice.ErrSignatureInvalid:
		respondJSON(w, http.StatusUnprocessableEntity, verifyResponse{Valid: false, Reason: "signature_invalid"})
	default:
		respondError(w, err)
	}
}
