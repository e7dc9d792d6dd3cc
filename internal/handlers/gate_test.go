package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evanofslack/pokerboard/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateHandler_Unlock(t *testing.T) {
	hash, err := auth.HashPasscode("table-secret")
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager("test-secret", "test-issuer")
	handler := NewGateHandler(hash, jwtManager)

	tests := []struct {
		name         string
		body         string
		expectedCode int
	}{
		{
			name:         "correct passcode",
			body:         `{"passcode": "table-secret"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "wrong passcode",
			body:         `{"passcode": "wrong-guess"}`,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing passcode",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid json",
			body:         `{passcode`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/gate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Unlock(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assertIssuedToken(t, jwtManager, w.Body.String())
			}
		})
	}
}

func TestGateHandler_OpenTableIssuesToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", "test-issuer")
	handler := NewGateHandler("", jwtManager)

	// With no hash configured the gate is open; any unlock attempt gets a
	// token, even with no body at all.
	for _, body := range []string{`{"passcode": "anything"}`, `{}`, ``} {
		req := httptest.NewRequest(http.MethodPost, "/gate", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Unlock(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assertIssuedToken(t, jwtManager, w.Body.String())
	}
}

// assertIssuedToken checks the response carries a token that validates with
// the same manager.
func assertIssuedToken(t *testing.T, jwtManager *auth.JWTManager, body string) {
	t.Helper()

	start := strings.Index(body, `"token":"`)
	require.GreaterOrEqual(t, start, 0)
	start += len(`"token":"`)
	end := strings.Index(body[start:], `"`)
	require.GreaterOrEqual(t, end, 0)

	claims, err := jwtManager.ValidateToken(body[start : start+end])
	require.NoError(t, err)
	assert.Equal(t, "gate", claims.Subject)
}
