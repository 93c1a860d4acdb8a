package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/service"
)

type claimsKey struct{}

type Middleware struct {
	service *service.Service
	logger  *slog.Logger
}

func NewMiddleware(s *service.Service, logger *slog.Logger) *Middleware {
	return &Middleware{service: s, logger: logger}
}

func WriteJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// ClaimsFromContext returns the identity stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(service.Claims)
	return claims, ok
}

// AuthRequired verifies the bearer token and stores the decoded
// claims in the request context.
func (m *Middleware) AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Missing bearer token.")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			WriteJSONError(w, http.StatusUnauthorized, "Bearer token required.")
			return
		}

		claims, err := m.service.ValidateToken(tokenString)
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminRequired must run after AuthRequired.
func (m *Middleware) AdminRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			WriteJSONError(w, http.StatusUnauthorized, "Missing bearer token.")
			return
		}
		if !claims.Admin {
			WriteJSONError(w, http.StatusForbidden, "Insufficient permission.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logging logs every request with its status and duration.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			m.logger.Info("Request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"url", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", ww.Status(),
				"took", time.Since(start),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// Recover turns panics into 500s without leaking stack traces to the
// client.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				m.logger.Error("Panic recovered", "panic", rvr, "stack", string(debug.Stack()))
				WriteJSONError(w, http.StatusInternalServerError, "Internal server error.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
