package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/replyflow/replyflow-backend/pkg/ctxutil"
)

// ClientInfo captures the caller's IP address and User-Agent and stores
// them in the request context so the audit trail can record them.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := ctxutil.ClientInfo{
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}
		next.ServeHTTP(w, r.WithContext(ctxutil.WithClientInfo(r.Context(), info)))
	})
}

// clientIP prefers the first X-Forwarded-For entry, falling back to
// RemoteAddr with the port stripped.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
