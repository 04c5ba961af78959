// Package cryptox seals small values at rest with AES-256-GCM. The client
// uses it to keep the persisted session unreadable without the device key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
)

// KeySize is the length of a device key in bytes (AES-256).
const KeySize = 32

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Seal serializes v to JSON and encrypts it with AES-GCM under key.
//
// A fresh random nonce is generated on every call and prepended to the
// ciphertext, so the result can be passed to Open as is.
//
// Example:
//
//	key, _ := cryptox.DeviceKey(filepath.Join(dir, "device.key"))
//	blob, err := cryptox.Seal(session, key)
//	...
//	var restored Session
//	err = cryptox.Open(blob, key, &restored)
func Seal(v any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	out := aesgcm.Seal(nonce, nonce, plaintext, nil)
	common.WipeByteArray(plaintext)
	return out, nil
}

// Open reverses Seal and unmarshals the plaintext into v.
func Open(blob, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	ns := aesgcm.NonceSize()
	if len(blob) < ns+aesgcm.Overhead() {
		return ErrCiphertextTooShort
	}

	plaintext, err := aesgcm.Open(nil, blob[:ns], blob[ns:], nil)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// DeviceKey reads the key stored at path, creating a random one (mode 0600)
// on first use.
func DeviceKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("device key %s: want %d bytes, got %d", path, KeySize, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	key = common.GenerateRandByteArray(KeySize)
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
