package core

// DigestAlgorithm identifies the object-hash digest function. SHA-256 is the
// only supported value (§4.2).
type DigestAlgorithm uint8

const (
	DigestSHA256 DigestAlgorithm = iota
)

// SignatureAlgorithm identifies a credential's signing algorithm. The
// original implementation fixes Ed25519 only; this expansion widens the
// domain to also admit BLS12-381 aggregated witnesses (SPEC_FULL.md §4.4,
// grounded on the teacher's herumi BLS stack in core/security.go).
type SignatureAlgorithm uint8

const (
	SignatureEd25519 SignatureAlgorithm = iota
	SignatureBLS12381
)

func (a SignatureAlgorithm) String() string {
	switch a {
	case SignatureEd25519:
		return "ed25519"
	case SignatureBLS12381:
		return "bls12-381"
	default:
		return "unknown"
	}
}

// EncryptionAlgorithm identifies the AEAD used to seal private key material.
// AES-256-GCM is the only supported value (§6).
type EncryptionAlgorithm uint8

const (
	EncryptionAES256GCM EncryptionAlgorithm = iota
)

// CipherSuite names the combination of algorithms a chain is bootstrapped
// with. "Ed25519Aes256GcmSha256" from original_source/src/block.rs is
// CipherSuiteEd25519, the default.
type CipherSuite struct {
	Digest     DigestAlgorithm
	Signature  SignatureAlgorithm
	Encryption EncryptionAlgorithm
}

// CipherSuiteEd25519 is the default suite: SHA-256 digests, Ed25519
// signatures, AES-256-GCM sealing.
var CipherSuiteEd25519 = CipherSuite{
	Digest:     DigestSHA256,
	Signature:  SignatureEd25519,
	Encryption: EncryptionAES256GCM,
}

// CipherSuiteBLS12381 is the expansion suite admitting BLS12-381 witnesses,
// for chains that want aggregated multi-signer witnesses.
var CipherSuiteBLS12381 = CipherSuite{
	Digest:     DigestSHA256,
	Signature:  SignatureBLS12381,
	Encryption: EncryptionAES256GCM,
}
