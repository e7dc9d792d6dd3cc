package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12
)

// HashPasscode generates a bcrypt hash of the shared table passcode. Used by
// operators to produce the GATE_PASSCODE_HASH value.
func HashPasscode(passcode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(passcode), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPasscode checks if the passcode matches the configured hash
func VerifyPasscode(passcode, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
}
