// Package auth orchestrates the portal login flow over the credential
// primitives: bcrypt password verification, the OTP second factor, and
// session token issuance.
//
// The invariant the flow protects: an account with two-factor enabled is
// never handed a session token on password alone. Authenticate returns an
// intermediate result carrying the freshly issued OTP code for out-of-band
// delivery, and only CompleteTwoFactor mints the token.
//
//	result, err := svc.Authenticate(ctx, email, password)
//	if err != nil {
//	    // generic failure — never reveals whether the email exists
//	}
//	if result.TwoFactorRequired {
//	    mailer.SendOTP(result.User.Email, result.OTPCode)
//	    // later:
//	    result, err = svc.CompleteTwoFactor(ctx, email, suppliedCode)
//	}
//	transport.SetToken(w, result.Token, tokens.TTL())
//
// All credential failures collapse to ErrInvalidCredentials to prevent
// account enumeration; suspension is the one distinguishable state, and
// it is re-checked here because issued tokens cannot be revoked early.
package auth
