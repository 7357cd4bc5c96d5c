// Package digest provides the secret-derived primitives shared by the
// credential and document-integrity services: bcrypt password hashing,
// fast one-way hashes for OTP codes and API key lookups, short hashes
// for printed verification codes, and truncated HMAC-SHA256 signatures
// for tamper-evident documents.
//
// All functions are pure with respect to external state; there is no
// I/O and no package-level configuration.
//
// # Usage
//
//	hash, err := digest.HashPassword("s3cret", bcrypt.DefaultCost)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok := digest.VerifyPassword("s3cret", hash)
//
//	sig := digest.Sign("INV-1024|5000|alice@example.com|ab12cd34", serverSecret)
//	valid := digest.EqualFold(sig, supplied)
//
// Sign is deterministic: the same message and secret always yield the same
// signature, which lets verifiers recompute signatures from persisted fields
// instead of trusting a stored value.
package digest
