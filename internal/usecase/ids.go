package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// generateSessionID - generates a new unique sessionID.
func generateSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// generateGameID - generates a unique identifier for the game.
func generateGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(99999999))
	if err != nil {
		return ""
	}

	return n.String()
}
