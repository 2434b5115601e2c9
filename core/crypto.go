package core

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
)

// AES256GCMKeySize is the required key length for EncryptionAES256GCM.
const AES256GCMKeySize = 32

// AES256GCMNonceSize is the required nonce length for EncryptionAES256GCM.
const AES256GCMNonceSize = 12

// aes256gcmTagSize is the GCM authentication tag length appended to the
// ciphertext.
const aes256gcmTagSize = 16

// Seal encrypts plaintext under key and nonce using the named algorithm,
// returning nonce || ciphertext || tag (§6 AEAD contract). Adapted from the
// encrypt/decrypt pair in core/ai_secure_storage.go, generalized to take an
// explicit nonce and to reject any algorithm other than AES-256-GCM.
func Seal(alg EncryptionAlgorithm, key, nonce, plaintext []byte) ([]byte, error) {
	if alg != EncryptionAES256GCM {
		return nil, errCryptoFailure("unsupported encryption algorithm", nil)
	}
	if len(key) != AES256GCMKeySize {
		return nil, errCryptoFailure("key must be 32 bytes", nil)
	}
	if len(nonce) != AES256GCMNonceSize {
		return nil, errCryptoFailure("nonce must be 12 bytes", nil)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errCryptoFailure("construct AES cipher", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errCryptoFailure("construct GCM", err)
	}
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	out := make([]byte, 0, len(nonce)+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// GenerateNonce returns a fresh random AES-256-GCM nonce.
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, AES256GCMNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errCryptoFailure("generate nonce", err)
	}
	return nonce, nil
}

// Unseal decrypts a blob produced by Seal, verifying its tag. Rejects blobs
// shorter than the nonce plus the authentication tag (28 bytes), any
// algorithm other than AES-256-GCM, and any tag mismatch.
func Unseal(alg EncryptionAlgorithm, key, blob []byte) ([]byte, error) {
	if alg != EncryptionAES256GCM {
		return nil, errCryptoFailure("unsupported encryption algorithm", nil)
	}
	if len(key) != AES256GCMKeySize {
		return nil, errCryptoFailure("key must be 32 bytes", nil)
	}
	if len(blob) < AES256GCMNonceSize+aes256gcmTagSize {
		return nil, errCryptoFailure("ciphertext too short", nil)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errCryptoFailure("construct AES cipher", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errCryptoFailure("construct GCM", err)
	}
	nonce, ciphertext := blob[:AES256GCMNonceSize], blob[AES256GCMNonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errCryptoFailure("open sealed blob", err)
	}
	return plaintext, nil
}
