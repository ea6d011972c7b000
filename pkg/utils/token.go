package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateAccessToken returns a fresh opaque access token.
func GenerateAccessToken() string {
	return uuid.NewString()
}

// GenerateResetToken returns a random hex token for password reset links.
func GenerateResetToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
