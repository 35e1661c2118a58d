package myapikey

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
)

const Prefix = "agx_"

// NewAPIKey creates a public tenant key: "agx_" followed by 48 hex chars.
func NewAPIKey() (string, error) {
	value, err := randomBytesInHex(24)
	if err != nil {
		return "", err
	}
	return Prefix + value, nil
}

func NewSecret() (string, error) {
	return randomBytesInHex(32)
}

func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func VerifySecret(secret string, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSecret(secret)), []byte(hash)) == 1
}

func randomBytesInHex(count int) (string, error) {
	buf := make([]byte, count)

	_, err := io.ReadFull(rand.Reader, buf)
	if err != nil {
		return "", fmt.Errorf("could not generate %d random bytes: %v", count, err)
	}

	return hex.EncodeToString(buf), nil
}
