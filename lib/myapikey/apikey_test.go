package myapikey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKey(t *testing.T) {
	t.Run("Key has prefix and length", func(t *testing.T) {
		key, err := NewAPIKey()
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "agx_"))
		assert.Len(t, key, 4+48)
	})

	t.Run("Keys are unique", func(t *testing.T) {
		key1, _ := NewAPIKey()
		key2, _ := NewAPIKey()
		assert.NotEqual(t, key1, key2)
	})
}

func TestSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		hash   string
	}{
		{
			name:   "test vector",
			secret: "abc",
			hash:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hash, HashSecret(tt.secret))
			assert.True(t, VerifySecret(tt.secret, tt.hash))
			assert.False(t, VerifySecret(tt.secret+"x", tt.hash))
		})
	}

	t.Run("New secret is 64 hex chars", func(t *testing.T) {
		secret, err := NewSecret()
		assert.NoError(t, err)
		assert.Len(t, secret, 64)
	})
}
