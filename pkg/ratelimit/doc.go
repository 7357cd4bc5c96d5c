// Package ratelimit provides fixed-window request limiting with pluggable
// storage (in-memory for a single instance, redis for a fleet) and an HTTP
// middleware. The credential core deliberately carries no lockout counters;
// this package is the external rate limiting it assumes for OTP and login
// brute-force resistance.
package ratelimit
