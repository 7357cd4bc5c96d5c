// Package twofactor manages the portal's email-delivered OTP second factor.
// Challenges are 6-digit uniformly random codes stored only as a one-way
// hash with an absolute expiry. A challenge moves through
// NoChallenge -> Issued -> {Verified, Expired, Resent} and every terminal
// transition nulls the stored state, so codes are strictly single-use.
//
// Expiry is checked lazily at verification time; there is no timer sweep.
// An expired challenge that is never re-verified lingers harmlessly until
// it is overwritten or a verify attempt clears it.
package twofactor
