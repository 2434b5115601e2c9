package core

// CredentialObject models a Credential entry: a keypair's public material,
// its sealed private half, and its validity window (§4.4). The signature
// algorithm is widened beyond the original Ed25519-only schema to also
// admit BLS12-381 (SPEC_FULL.md §4.4).
type CredentialObject struct {
	SignatureAlgorithm  SignatureAlgorithm
	EncryptionAlgorithm EncryptionAlgorithm
	SealedPrivateKey    []byte
	Salt                []byte
	PublicKey           []byte
	CreatedAt           Timestamp
	ExpiresAt           Timestamp
	Label               string
}

func (c CredentialObject) TypeID() TypeID { return TypeCredential }

func (c CredentialObject) ObjectHash() Digest {
	return HashStruct(map[string]Digest{
		"signature_algorithm":  HashUint64(uint64(c.SignatureAlgorithm)),
		"encryption_algorithm": HashUint64(uint64(c.EncryptionAlgorithm)),
		"sealed_private_key":   HashRaw(c.SealedPrivateKey),
		"salt":                 HashRaw(c.Salt),
		"public_key":           HashRaw(c.PublicKey),
		"created_at":           HashTimestamp(c.CreatedAt),
		"expires_at":           HashTimestamp(c.ExpiresAt),
		"label":                HashString(c.Label),
	})
}

func (c CredentialObject) Encode() []byte {
	e := NewEncoder()
	e.WriteVarint(1, uint64(c.SignatureAlgorithm))
	e.WriteVarint(2, uint64(c.EncryptionAlgorithm))
	e.WriteBytes(3, c.SealedPrivateKey)
	e.WriteBytes(4, c.Salt)
	e.WriteBytes(5, c.PublicKey)
	e.WriteVarint(6, uint64(c.CreatedAt))
	e.WriteVarint(7, uint64(c.ExpiresAt))
	e.WriteString(8, c.Label)
	return e.Bytes()
}

// ValidAt reports whether c's validity window contains ts.
func (c CredentialObject) ValidAt(ts Timestamp) bool {
	return ts >= c.CreatedAt && ts < c.ExpiresAt
}

// DecodeCredential decodes a CredentialObject from its canonical encoding.
func DecodeCredential(payload []byte) (Object, error) {
	dec := NewDecoder(payload)
	var c CredentialObject
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return nil, errParse("decode credential object", err)
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			c.SignatureAlgorithm = SignatureAlgorithm(f.Varint)
		case 2:
			c.EncryptionAlgorithm = EncryptionAlgorithm(f.Varint)
		case 3:
			c.SealedPrivateKey = append([]byte(nil), f.Bytes...)
		case 4:
			c.Salt = append([]byte(nil), f.Bytes...)
		case 5:
			c.PublicKey = append([]byte(nil), f.Bytes...)
		case 6:
			c.CreatedAt = Timestamp(f.Varint)
		case 7:
			c.ExpiresAt = Timestamp(f.Varint)
		case 8:
			c.Label = string(f.Bytes)
		}
	}
	return c, nil
}
