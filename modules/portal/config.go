package portal

import (
	"errors"
	"time"
)

// Config holds the portal's credential-layer configuration. The two signing
// secrets must be distinct and non-default in production; neither is ever
// logged.
type Config struct {
	SessionSigningKey    string        `env:"SESSION_SIGNING_KEY,required"`
	InvoiceSigningSecret string        `env:"INVOICE_SIGNING_SECRET,required"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SessionCookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	SecureCookies        bool          `env:"SECURE_COOKIES" envDefault:"false"`
	OTPTTL               time.Duration `env:"OTP_TTL" envDefault:"10m"`
	AuthRateLimit        int           `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthRateWindow       time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

// Validate rejects configurations that would silently weaken the trust
// domain, in particular reusing one secret for both signing purposes.
func (c Config) Validate() error {
	if c.SessionSigningKey == "" || c.InvoiceSigningSecret == "" {
		return errors.New("portal: both signing secrets are required")
	}
	if c.SessionSigningKey == c.InvoiceSigningSecret {
		return errors.New("portal: session and invoice secrets must be distinct")
	}
	return nil
}
