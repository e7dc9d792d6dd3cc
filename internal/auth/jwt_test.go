package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateToken(t *testing.T) {
	jwtManager := NewJWTManager("test-secret", "test-issuer")

	token, err := jwtManager.GenerateToken()

	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Parse the token to verify its contents
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})

	require.NoError(t, err)
	assert.True(t, parsedToken.Valid)

	claims := parsedToken.Claims.(jwt.MapClaims)
	assert.Equal(t, "gate", claims["sub"])
	assert.Equal(t, "test-issuer", claims["iss"])
}

func TestJWTManager_ValidateToken(t *testing.T) {
	jwtManager := NewJWTManager("test-secret", "test-issuer")

	tests := []struct {
		name        string
		setupToken  func() string
		expectError bool
	}{
		{
			name: "Valid token",
			setupToken: func() string {
				token, _ := jwtManager.GenerateToken()
				return token
			},
			expectError: false,
		},
		{
			name: "Invalid token",
			setupToken: func() string {
				return "invalid.jwt.token"
			},
			expectError: true,
		},
		{
			name: "Token with wrong secret",
			setupToken: func() string {
				wrongManager := NewJWTManager("wrong-secret", "test-issuer")
				token, _ := wrongManager.GenerateToken()
				return token
			},
			expectError: true,
		},
		{
			name: "Empty token",
			setupToken: func() string {
				return ""
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtManager.ValidateToken(tt.setupToken())
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, "gate", claims.Subject)
			}
		})
	}
}

func TestJWTManager_ExtractTokenFromBearer(t *testing.T) {
	jwtManager := NewJWTManager("test-secret", "test-issuer")

	assert.Equal(t, "abc123", jwtManager.ExtractTokenFromBearer("Bearer abc123"))
	assert.Equal(t, "", jwtManager.ExtractTokenFromBearer("abc123"))
	assert.Equal(t, "", jwtManager.ExtractTokenFromBearer("Bearer"))
	assert.Equal(t, "", jwtManager.ExtractTokenFromBearer(""))
}

func TestPasscodeHashing(t *testing.T) {
	hash, err := HashPasscode("table-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "table-secret", hash)

	assert.NoError(t, VerifyPasscode("table-secret", hash))
	assert.Error(t, VerifyPasscode("wrong-guess", hash))
	assert.Error(t, VerifyPasscode("", hash))
}
