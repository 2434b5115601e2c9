package core

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	bls "github.com/herumi/bls-eth-go-binary/bls"
)

// blsInitialized guards the one-time herumi curve setup, mirroring the
// package-level init() in core/security.go. It is lazy here rather than an
// init() func so that packages which never touch BLS never pay the curve
// setup cost.
var blsInitialized bool

func ensureBLSInit() error {
	if blsInitialized {
		return nil
	}
	if err := bls.Init(bls.BLS12_381); err != nil {
		return fmt.Errorf("bls init: %w", err)
	}
	blsInitialized = true
	return nil
}

// Signature is a single witness signature: the algorithm it was produced
// with, the raw signature bytes, and the entry id of the signing credential
// (§4.3 Witness field schema).
type Signature struct {
	Algorithm SignatureAlgorithm
	Raw       []byte
	SignerID  EntryID
}

// Witness is the non-empty set of signatures attesting to a Body.
type Witness struct {
	Signatures []Signature
}

// Sign produces a raw signature over msg using priv, dispatching on algo.
// For SignatureEd25519, priv must be ed25519.PrivateKey. For
// SignatureBLS12381, priv must be *bls.SecretKey. Adapted from
// core/security.go's Sign function, narrowed to the two algorithms this
// spec's credential schema admits.
func Sign(algo SignatureAlgorithm, priv interface{}, msg []byte) ([]byte, error) {
	switch algo {
	case SignatureEd25519:
		pk, ok := priv.(ed25519.PrivateKey)
		if !ok {
			return nil, errCryptoFailure("invalid ed25519 private key type", nil)
		}
		return ed25519.Sign(pk, msg), nil

	case SignatureBLS12381:
		if err := ensureBLSInit(); err != nil {
			return nil, errCryptoFailure("bls init", err)
		}
		sk, ok := priv.(*bls.SecretKey)
		if !ok {
			return nil, errCryptoFailure("invalid BLS secret key type", nil)
		}
		sig := sk.SignByte(msg)
		return sig.Serialize(), nil

	default:
		return nil, errCryptoFailure("unknown signature algorithm", nil)
	}
}

// Verify checks sig over msg against pub, dispatching on algo. pub may be
// ed25519.PublicKey, or *bls.PublicKey / compressed []byte for BLS.
func Verify(algo SignatureAlgorithm, pub interface{}, msg, sig []byte) (bool, error) {
	switch algo {
	case SignatureEd25519:
		pk, ok := pub.(ed25519.PublicKey)
		if !ok {
			return false, errCryptoFailure("invalid ed25519 public key type", nil)
		}
		return ed25519.Verify(pk, msg, sig), nil

	case SignatureBLS12381:
		if err := ensureBLSInit(); err != nil {
			return false, errCryptoFailure("bls init", err)
		}
		var pk bls.PublicKey
		switch v := pub.(type) {
		case *bls.PublicKey:
			pk = *v
		case []byte:
			if err := pk.Deserialize(v); err != nil {
				return false, errCryptoFailure("deserialize BLS public key", err)
			}
		default:
			return false, errCryptoFailure("invalid BLS public key type", nil)
		}
		var s bls.Sign
		if err := s.Deserialize(sig); err != nil {
			return false, errCryptoFailure("deserialize BLS signature", err)
		}
		return s.VerifyByte(&pk, msg), nil

	default:
		return false, errCryptoFailure("unknown signature algorithm", nil)
	}
}

// AggregateBLS merges multiple compressed BLS signatures over the same
// message into one, for witnesses with multiple BLS signers. Adapted from
// core/security.go's AggregateBLSSigs.
func AggregateBLS(sigs [][]byte) ([]byte, error) {
	if len(sigs) == 0 {
		return nil, errCryptoFailure("no signatures to aggregate", errors.New("empty set"))
	}
	if err := ensureBLSInit(); err != nil {
		return nil, errCryptoFailure("bls init", err)
	}
	var agg bls.Sign
	for i, raw := range sigs {
		var s bls.Sign
		if err := s.Deserialize(raw); err != nil {
			return nil, errCryptoFailure(fmt.Sprintf("signature %d", i), err)
		}
		if i == 0 {
			agg = s
		} else {
			agg.Add(&s)
		}
	}
	return agg.Serialize(), nil
}
