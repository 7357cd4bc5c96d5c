package portal

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/sessiontoken"
)

// AuthService exposes the login flow over JSON: registration, password
// login, the OTP second step, and logout. OTP codes travel only through the
// mailer; no response body ever carries one.
type AuthService struct {
	svc     *auth.Service
	tokens  *sessiontoken.Service
	cookies *sessiontoken.CookieTransport
	mailer  Mailer
	logger  *slog.Logger
}

func NewAuthService(svc *auth.Service, tokens *sessiontoken.Service, cookies *sessiontoken.CookieTransport, mailer Mailer, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AuthService{svc: svc, tokens: tokens, cookies: cookies, mailer: mailer, logger: logger}
}

func (s *AuthService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/register", s.register)
	r.Post("/login", s.login)
	r.Post("/otp/verify", s.verifyOTP)
	r.Post("/otp/resend", s.resendOTP)
	r.Post("/logout", s.logout)
	return r
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{ID: u.ID.String(), Email: u.Email, Name: u.Name, Role: u.Role}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *AuthService) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	user, err := s.svc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	TwoFactorRequired bool          `json:"two_factor_required"`
	User              *userResponse `json:"user,omitempty"`
}

func (s *AuthService) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	result, err := s.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	if result.TwoFactorRequired {
		if err := s.mailer.SendOTP(r.Context(), result.User.Email, result.OTPCode); err != nil {
			s.logger.ErrorContext(r.Context(), "otp delivery failed",
				slog.String("user_id", result.User.ID.String()),
				slog.String("component", "portal"),
			)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, loginResponse{TwoFactorRequired: true})
		return
	}

	s.cookies.SetToken(w, result.Token, s.tokens.TTL())
	user := toUserResponse(result.User)
	respondJSON(w, http.StatusOK, loginResponse{User: &user})
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *AuthService) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	result, err := s.svc.CompleteTwoFactor(r.Context(), req.Email, req.Code)
	if err != nil {
		respondError(w, err)
		return
	}

	s.cookies.SetToken(w, result.Token, s.tokens.TTL())
	user := toUserResponse(result.User)
	respondJSON(w, http.StatusOK, loginResponse{User: &user})
}

type resendRequest struct {
	Email string `json:"email"`
}

func (s *AuthService) resendOTP(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	code, err := s.svc.ResendTwoFactor(r.Context(), req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.mailer.SendOTP(r.Context(), req.Email, code); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]bool{"sent": true})
}

// logout clears the cookie. The token itself only dies when exp elapses.
func (s *AuthService) logout(w http.ResponseWriter, _ *http.Request) {
	s.cookies.ClearToken(w)
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword is mounted behind the session middleware; it reads the
// acting user from the request context.
func (s *AuthService) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, auth.ErrInvalidCredentials)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w)
		return
	}

	if err := s.svc.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, auth.ErrInvalidCredentials)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}
