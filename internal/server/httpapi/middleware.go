package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// principalFromContext returns the authenticated user attached by
// requireUser. The second return is false on routes outside the
// protected subtree.
func principalFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}

// bearerToken extracts the credential from the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

// requireUser gates the protected subtree. Per-request state machine:
// no token -> 401; invalid/expired token or unresolvable subject -> 401;
// disabled account -> 400; otherwise the resolved user is attached to
// the request context as the principal.
func (s *HTTPServer) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := bearerToken(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondWithError(ctx, w, http.StatusUnauthorized, "Not authenticated", s.logger)
			return
		}

		user, err := s.users.ResolveActive(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrorUserDisabled):
				respondWithError(ctx, w, http.StatusBadRequest, "Inactive user", s.logger)
			case errors.Is(err, common.ErrorUnauthorized):
				w.Header().Set("WWW-Authenticate", "Bearer")
				respondWithError(ctx, w, http.StatusUnauthorized, "Could not validate credentials", s.logger)
			default:
				s.logger.Error(ctx, "failed to resolve principal", "error", err)
				respondWithError(ctx, w, http.StatusInternalServerError, "Internal server error", s.logger)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, principalKey, user)))
	})
}

// requestLogger logs every request with its status and duration.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// statusWriter captures the response code for the request logger.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
