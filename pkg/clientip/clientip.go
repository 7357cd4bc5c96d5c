package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders in trust order. CDN headers win over generic proxy headers
// because they are set by infrastructure the deployment controls.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP"}

// FromRequest extracts the originating client IP from a request, preferring
// trusted proxy headers and falling back to the socket address. Returns a
// normalized IP string, or the raw RemoteAddr host when nothing parses.
func FromRequest(r *http.Request) string {
	for _, h := range proxyHeaders {
		if ip := normalize(r.Header.Get(h)); ip != "" {
			return ip
		}
	}

	// X-Forwarded-For may hold a chain; the first valid entry is the client.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for part := range strings.SplitSeq(fwd, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return host
}

// normalize parses and canonicalizes an IP string, returning "" when invalid.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
