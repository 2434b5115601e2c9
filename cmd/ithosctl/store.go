package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ithos-org/ithos/chain"
	"github.com/ithos-org/ithos/core"
	pkgconfig "github.com/ithos-org/ithos/pkg/config"
	"github.com/ithos-org/ithos/storage/bolt"
)

// openChain opens the configured Bolt adapter and wraps it in a Chain
// Authority, creating the data directory if it does not yet exist.
func openChain() (*chain.Chain, *bolt.Adapter, error) {
	cfg := pkgconfig.AppConfig
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.BoltPath), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}
	adapter, err := bolt.Open(cfg.Storage.BoltPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open chain database: %w", err)
	}
	return chain.New(adapter), adapter, nil
}

// adminKeyPath is where ithosctl keeps the admin's usable private key
// locally; the chain itself only ever holds the sealed copy, matching the
// Credential entry's sealed_private_key field (§4.4).
func adminKeyPath() string {
	return filepath.Join(filepath.Dir(pkgconfig.AppConfig.Storage.BoltPath), "admin.key")
}

func writeAdminKey(priv ed25519.PrivateKey) error {
	return os.WriteFile(adminKeyPath(), []byte(hex.EncodeToString(priv)), 0o600)
}

func readAdminKey() (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(adminKeyPath())
	if err != nil {
		return nil, fmt.Errorf("read admin key (run 'ithosctl init' first?): %w", err)
	}
	b, err := hex.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("decode admin key: %w", err)
	}
	return ed25519.PrivateKey(b), nil
}

// sealKeyPath is where ithosctl keeps the AEAD key it uses to seal the
// admin private key material stored in the Credential entry. Keeping
// sealing key material alongside the usable key is a CLI-only
// simplification: a production deployment would source this from an
// external KMS rather than the local filesystem.
func sealKeyPath() string {
	return filepath.Join(filepath.Dir(pkgconfig.AppConfig.Storage.BoltPath), "seal.key")
}

func sealAdminKey(priv ed25519.PrivateKey) (sealed, salt []byte, err error) {
	key, err := loadOrCreateSealKey()
	if err != nil {
		return nil, nil, err
	}
	nonce, err := core.GenerateNonce()
	if err != nil {
		return nil, nil, err
	}
	sealed, err = core.Seal(core.EncryptionAES256GCM, key, nonce, priv)
	if err != nil {
		return nil, nil, err
	}
	salt, err = core.GenerateNonce() // reused as unused-schema-slot salt; no KDF is wired yet
	if err != nil {
		return nil, nil, err
	}
	return sealed, salt, nil
}

func loadOrCreateSealKey() ([]byte, error) {
	path := sealKeyPath()
	if raw, err := os.ReadFile(path); err == nil {
		key, err := hex.DecodeString(string(raw))
		if err != nil {
			return nil, fmt.Errorf("decode seal key: %w", err)
		}
		return key, nil
	}

	key := make([]byte, core.AES256GCMKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate seal key: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("persist seal key: %w", err)
	}
	return key, nil
}
