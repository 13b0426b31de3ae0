package middleware

import (
	"net/http"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/repvision/internal/telemetry/tracing"
	"github.com/2beens/repvision/pkg"
)

type AuthMiddlewareHandler struct {
	apiTokenHash string
	allowedPaths map[string]bool
	// tokens already matched against the hash, bcrypt is too slow to run per request
	verifiedTokens sync.Map
}

// NewAuthMiddlewareHandler guards the API with a bearer token checked against
// apiTokenHash. An empty hash leaves the API open.
func NewAuthMiddlewareHandler(apiTokenHash string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		apiTokenHash: apiTokenHash,
		allowedPaths: map[string]bool{
			"/":          true,
			"/health":    true,
			"/exercises": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.apiTokenHash == "" || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !h.tokenValid(authToken) {
				reqIp, _ := pkg.ClientIP(r)
				log.Warnf("[invalid token] [auth middleware] unauthorized => %s from %s", r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	if _, ok := h.verifiedTokens.Load(token); ok {
		return true
	}
	if !pkg.CheckAPITokenHash(token, h.apiTokenHash) {
		return false
	}
	h.verifiedTokens.Store(token, struct{}{})
	return true
}
