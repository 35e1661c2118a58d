package myvault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	ivLength  = 16
	tagLength = 16
)

// Vault seals platform credentials before they are stored and opens them on use.
// Sealed values have the form "<iv-hex>:<tag-hex>:<ciphertext-hex>".
type Vault interface {
	Seal(value any) (string, error)
	Open(sealed string, into any) error
}

type aesGCMVault struct {
	key []byte
}

func New(secret string) Vault {
	var key []byte
	if secret != "" {
		sum := sha256.Sum256([]byte(secret))
		key = sum[:]
	}
	return &aesGCMVault{
		key: key,
	}
}

func (v *aesGCMVault) Seal(value any) (string, error) {
	aead, err := v.aead()
	if err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("error marshalling value to seal: %s", err)
	}

	iv := make([]byte, ivLength)
	_, err = io.ReadFull(rand.Reader, iv)
	if err != nil {
		return "", fmt.Errorf("error generating iv: %s", err)
	}

	sealed := aead.Seal(nil, iv, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-tagLength], sealed[len(sealed)-tagLength:]

	return fmt.Sprintf("%s:%s:%s", hex.EncodeToString(iv), hex.EncodeToString(tag), hex.EncodeToString(ciphertext)), nil
}

func (v *aesGCMVault) Open(sealed string, into any) error {
	aead, err := v.aead()
	if err != nil {
		return err
	}

	parts := strings.Split(sealed, ":")
	if len(parts) != 3 {
		return fmt.Errorf("invalid encrypted data format")
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivLength {
		return fmt.Errorf("invalid iv")
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagLength {
		return fmt.Errorf("invalid auth tag")
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("invalid ciphertext")
	}

	plaintext, err := aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return fmt.Errorf("error decrypting: %s", err)
	}

	err = json.Unmarshal(plaintext, into)
	if err != nil {
		return fmt.Errorf("error unmarshalling decrypted value: %s", err)
	}

	return nil
}

func (v *aesGCMVault) aead() (cipher.AEAD, error) {
	if len(v.key) == 0 {
		return nil, fmt.Errorf("ENCRYPTION_KEY is not configured")
	}
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %s", err)
	}
	return cipher.NewGCMWithNonceSize(block, ivLength)
}
