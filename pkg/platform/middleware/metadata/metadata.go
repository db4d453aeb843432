// Package metadata captures who is calling: client IP, raw User-Agent and a
// short channel label derived from it. The label is recorded on audit events.
package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"custodian/pkg/requestcontext"
)

// ChannelAPI labels callers that send no browser User-Agent.
const ChannelAPI = "api"

// ChannelBot labels crawlers and other automated agents.
const ChannelBot = "bot"

// ClientMetadata extracts client IP and User-Agent from the request and
// stores them with the derived channel in the context.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), ua, Channel(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Channel returns "<Browser> on <OS>" for browsers, ChannelBot for bots and
// ChannelAPI for everything else.
func Channel(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return ChannelAPI
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		return ChannelBot
	}
	browser, _ := ua.Browser()
	os := ua.OS()
	if browser == "" || ua.Mozilla() == "" {
		return ChannelAPI
	}
	if os == "" {
		return browser
	}
	return strings.TrimSpace(browser + " on " + os)
}

// ClientIPFromRequest extracts the client IP, preferring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
