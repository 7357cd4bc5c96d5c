// Package invoice makes issued invoices tamper-evident. At issuance a
// document is stamped with three derived values: an 8-character public
// verification key (unique across all invoices), a short hash of the
// owner's PIN, and a truncated HMAC signature binding the invoice number,
// amount, owner email, and verification key under a server-held secret.
//
// Verification is unauthenticated and holder-driven: the holder supplies
// the printed values and the service checks each against local state,
// recomputing the signature from persisted fields rather than trusting a
// stored copy. All comparisons on printed values are case-insensitive,
// since holders re-type them.
//
// Every mismatch is terminal and reported as its own error kind
// (ErrNotFound, ErrEmailMismatch, ErrKeyMismatch, ErrPinMismatch,
// ErrSignatureInvalid); the caller surface decides what the end user sees.
package invoice
