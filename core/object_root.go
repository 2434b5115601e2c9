package core

// RootObject is the object class stored at the tree's root entry. It names
// the digest algorithm the chain was bootstrapped with.
type RootObject struct {
	Digest DigestAlgorithm
}

func (r RootObject) TypeID() TypeID { return TypeRoot }

func (r RootObject) ObjectHash() Digest {
	return HashStruct(map[string]Digest{
		"digest_algorithm": HashUint64(uint64(r.Digest)),
	})
}

func (r RootObject) Encode() []byte {
	e := NewEncoder()
	e.WriteVarint(1, uint64(r.Digest))
	return e.Bytes()
}

// DecodeRoot decodes a RootObject from its canonical encoding.
func DecodeRoot(payload []byte) (Object, error) {
	d := NewDecoder(payload)
	var r RootObject
	for {
		f, ok, err := d.Next()
		if err != nil {
			return nil, errParse("decode root object", err)
		}
		if !ok {
			break
		}
		if f.Number == 1 {
			r.Digest = DigestAlgorithm(f.Varint)
		}
	}
	return r, nil
}
