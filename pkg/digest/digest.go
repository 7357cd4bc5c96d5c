package digest

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// SignatureLength is the hex length HMAC signatures are truncated to.
	// 32 hex chars keep 128 bits, which is collision-resistant well beyond
	// the number of invoices a single deployment will ever stamp.
	SignatureLength = 32

	// ShortHashLength is the hex length of ShortHash output. Short hashes
	// are printed on documents as convenience codes, not used as secrets.
	ShortHashLength = 16
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// Pass bcrypt.DefaultCost unless the caller has a reason not to.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches a bcrypt hash produced by HashPassword.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Hash returns the SHA-256 hex digest of s. Used for values that must be
// looked up by hash (API key secrets) or that are short-lived and guarded
// by expiry at the call site (OTP codes).
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShortHash returns a truncated SHA-256 hex digest of s. It is deliberately
// a fast hash: the output is printed on documents as a copy-paste
// verification code and the surrounding application treats it as
// low-stakes, not as a secret.
func ShortHash(s string) string {
	return Hash(s)[:ShortHashLength]
}

// Sign returns a deterministic HMAC-SHA256 signature of message keyed by
// secret, hex-encoded and truncated to SignatureLength characters.
func Sign(message, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))[:SignatureLength]
}

// Equal compares two strings in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// EqualFold compares two hex-encoded values case-insensitively in constant
// time. Printed artifacts (verification keys, signatures, PIN hashes) may
// come back re-typed in either case.
func EqualFold(a, b string) bool {
	return Equal(strings.ToLower(a), strings.ToLower(b))
}
