package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// VerificationTokenLength is the number of characters in a raw
// verification token.
const VerificationTokenLength = 50

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateToken returns a random mixed-case alphanumeric string of the
// given length, drawn from crypto/rand. These tokens gate account
// verification and password resets, so a CSPRNG is required.
func GenerateToken(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// HashToken returns the hex-encoded SHA-256 of a raw token, the at-rest
// form for verification tokens.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
