package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// GateMiddleware protects mutating routes behind the shared-passcode gate.
// When no passcode hash is configured the gate is open and every request
// passes through.
type GateMiddleware struct {
	jwtManager *JWTManager
	enabled    bool
}

func NewGateMiddleware(jwtManager *JWTManager, enabled bool) *GateMiddleware {
	return &GateMiddleware{
		jwtManager: jwtManager,
		enabled:    enabled,
	}
}

func (m *GateMiddleware) RequireGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := m.jwtManager.ExtractTokenFromBearer(r.Header.Get("Authorization"))
		if tokenString == "" {
			writeErrorResponse(w, http.StatusUnauthorized, "Gate passcode required")
			return
		}

		if _, err := m.jwtManager.ValidateToken(tokenString); err != nil {
			writeErrorResponse(w, http.StatusUnauthorized, "Gate passcode required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Helper function for consistent error responses
func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]string{"error": message}
	json.NewEncoder(w).Encode(response)
}

// Security headers middleware
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only set HSTS in production
		if !strings.Contains(r.Host, "localhost") && !strings.Contains(r.Host, "127.0.0.1") {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
