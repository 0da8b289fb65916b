package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// GenerateSMSCode generates a uniformly random 6-digit code using crypto/rand.
func GenerateSMSCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateEmailToken generates a UUID v4 verification token.
func GenerateEmailToken() string {
	return uuid.NewString()
}
