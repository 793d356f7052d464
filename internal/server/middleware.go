package server

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carebridge/cms-proxy/pkg/logging"
)

// requestLogger logs one line per handled request and records the HTTP
// metrics, keyed by the chi route pattern so path parameters don't explode
// label cardinality.
func requestLogger(next http.Handler) http.Handler {
	logger := logging.NewLogger("http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		duration := time.Since(start)

		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(duration.Seconds())

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status_code", ww.Status()).
			Dur("duration", duration).
			Msg("Request handled")
	})
}

// domainGuard rejects browser-facing requests whose origin is not on the
// allowlist, and emits CORS headers for allowed origins. An empty allowlist
// disables the check. Requests without any Origin or Referer (curl, server
// to server, health probes) always pass.
func domainGuard(allowed []string) func(http.Handler) http.Handler {
	allowedHosts := make(map[string]bool, len(allowed))
	for _, domain := range allowed {
		allowedHosts[strings.ToLower(domain)] = true
	}

	hostAllowed := func(host string) bool {
		host = strings.ToLower(host)
		if allowedHosts[host] {
			return true
		}
		for domain := range allowedHosts {
			if strings.HasSuffix(host, "."+domain) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			referer := r.Header.Get("Referer")

			if len(allowedHosts) == 0 {
				if origin != "" {
					allowOrigin(w, origin)
				}
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			source := origin
			if source == "" {
				source = referer
			}
			if source == "" {
				next.ServeHTTP(w, r)
				return
			}

			host := hostnameOf(source)
			if host == "" || !hostAllowed(host) {
				writeError(w, http.StatusForbidden, "domain not allowed")
				return
			}

			if origin != "" {
				allowOrigin(w, origin)
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func allowOrigin(w http.ResponseWriter, origin string) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	h.Add("Vary", "Origin")
}

// hostnameOf extracts the bare hostname from an Origin or Referer value.
func hostnameOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(u.Host); err == nil {
		return host
	}
	return u.Host
}
