// Package clientip resolves the originating client address of an HTTP
// request behind proxies and CDNs. Used for per-client rate limiting on the
// credential endpoints.
package clientip
