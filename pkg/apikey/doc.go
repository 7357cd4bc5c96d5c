// Package apikey manages long-lived opaque bearer credentials for the
// portal's programmatic API. A key's raw secret is disclosed exactly once
// at creation; storage keeps only a SHA-256 hash for O(1) authentication
// lookups and a short unmasked prefix for display in key lists.
//
// Keys are never hard-deleted while referenced: revocation flips the
// active flag so the audit trail survives. Each account may hold at most
// MaxActiveKeys active keys.
package apikey
