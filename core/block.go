package core

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
)

// BlockID is the 32-byte digest identifying a Block: the object hash of the
// full block, including its witness (§4.6).
type BlockID [32]byte

// ZeroBlockID is the distinguished parent id of a genesis block.
var ZeroBlockID BlockID

// Bytes returns the raw digest bytes.
func (id BlockID) Bytes() []byte { return id[:] }

// IsZero reports whether id is the all-zero genesis parent marker.
func (id BlockID) IsZero() bool { return id == ZeroBlockID }

// BlockIDFromDigest converts a Digest to a BlockID.
func BlockIDFromDigest(d Digest) BlockID { return BlockID(d) }

// MarshalJSON renders a BlockID as a hex string rather than a byte array.
func (id BlockID) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(id[:]))
}

// Body is the unsigned content of a block.
type Body struct {
	ParentID  BlockID
	Timestamp Timestamp
	Ops       []Op
	Comment   string
}

func (b Body) ObjectHash() Digest {
	opHashes := make([]Digest, len(b.Ops))
	for i, op := range b.Ops {
		opHashes[i] = op.ObjectHash()
	}
	return HashStruct(map[string]Digest{
		"parent_id": HashRaw(b.ParentID.Bytes()),
		"timestamp": HashTimestamp(b.Timestamp),
		"ops":       HashList(opHashes...),
		"comment":   HashString(b.Comment),
	})
}

// Encode produces the canonical encoding of b (§4.3: 1=parent_id,
// 2=timestamp, 3=repeated op, 4=comment).
func (b Body) Encode() []byte {
	e := NewEncoder()
	e.WriteBytes(1, b.ParentID.Bytes())
	e.WriteVarint(2, uint64(b.Timestamp))
	for _, op := range b.Ops {
		e.WriteMessage(3, op.Encode())
	}
	e.WriteString(4, b.Comment)
	return e.Bytes()
}

// DecodeBody decodes a Body from its canonical encoding.
func DecodeBody(payload []byte) (Body, error) {
	dec := NewDecoder(payload)
	var b Body
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return Body{}, errParse("decode body", err)
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			if len(f.Bytes) != 32 {
				return Body{}, errParse("parent_id must be 32 bytes", nil)
			}
			copy(b.ParentID[:], f.Bytes)
		case 2:
			b.Timestamp = Timestamp(f.Varint)
		case 3:
			op, err := DecodeOp(f.Bytes)
			if err != nil {
				return Body{}, err
			}
			b.Ops = append(b.Ops, op)
		case 4:
			b.Comment = string(f.Bytes)
		}
	}
	return b, nil
}

// signingPreimagePrefix is the fixed ASCII prefix of the signed byte string.
// This literal is part of the external contract and must not change (§6).
const signingPreimagePrefix = "ithos.block.body.ni:///sha-256;"

// SigningPreimage returns the byte string signed (and verified) for body:
// the ASCII prefix followed by the URL-safe base64 encoding of body's
// object hash.
func SigningPreimage(body Body) []byte {
	h := body.ObjectHash()
	return []byte(signingPreimagePrefix + base64.RawURLEncoding.EncodeToString(h[:]))
}

// Block is a signed unit of change: a body plus one or more witness
// signatures.
type Block struct {
	Body    Body
	Witness Witness
}

// ID returns the BlockID of b: the object hash of the full block, witness
// included.
func (blk Block) ID() (BlockID, error) {
	if len(blk.Witness.Signatures) == 0 {
		return BlockID{}, errCryptoFailure("block has no witness signatures", nil)
	}
	h := HashStruct(map[string]Digest{
		"body":    blk.Body.ObjectHash(),
		"witness": blk.Witness.ObjectHash(),
	})
	return BlockIDFromDigest(h), nil
}

func (w Witness) ObjectHash() Digest {
	sigHashes := make([]Digest, len(w.Signatures))
	for i, s := range w.Signatures {
		sigHashes[i] = HashStruct(map[string]Digest{
			"algorithm": HashUint64(uint64(s.Algorithm)),
			"signature": HashRaw(s.Raw),
			"signer_id": HashUint64(uint64(s.SignerID)),
		})
	}
	return HashList(sigHashes...)
}

// Encode produces the canonical encoding of the full block (§4.3: 1=body,
// 2=witness).
func (blk Block) Encode() []byte {
	e := NewEncoder()
	e.WriteMessage(1, blk.Body.Encode())
	e.WriteMessage(2, blk.Witness.Encode())
	return e.Bytes()
}

// Encode produces the canonical encoding of a Witness: a repeated signature
// field, each encoded as a nested message (1=algorithm, 2=raw, 3=signer_id).
func (w Witness) Encode() []byte {
	e := NewEncoder()
	for _, s := range w.Signatures {
		sigEnc := NewEncoder()
		sigEnc.WriteVarint(1, uint64(s.Algorithm))
		sigEnc.WriteBytes(2, s.Raw)
		sigEnc.WriteVarint(3, uint64(s.SignerID))
		e.WriteMessage(1, sigEnc.Bytes())
	}
	return e.Bytes()
}

// DecodeBlock decodes a full Block from its canonical encoding.
func DecodeBlock(payload []byte) (Block, error) {
	dec := NewDecoder(payload)
	var blk Block
	var bodyBytes, witnessBytes []byte
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return Block{}, errParse("decode block", err)
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			bodyBytes = f.Bytes
		case 2:
			witnessBytes = f.Bytes
		}
	}
	body, err := DecodeBody(bodyBytes)
	if err != nil {
		return Block{}, err
	}
	witness, err := DecodeWitness(witnessBytes)
	if err != nil {
		return Block{}, err
	}
	blk.Body = body
	blk.Witness = witness
	return blk, nil
}

// DecodeWitness decodes a Witness from its canonical encoding.
func DecodeWitness(payload []byte) (Witness, error) {
	dec := NewDecoder(payload)
	var w Witness
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return Witness{}, errParse("decode witness", err)
		}
		if !ok {
			break
		}
		if f.Number != 1 {
			continue
		}
		sigDec := NewDecoder(f.Bytes)
		var s Signature
		for {
			sf, ok, err := sigDec.Next()
			if err != nil {
				return Witness{}, errParse("decode signature", err)
			}
			if !ok {
				break
			}
			switch sf.Number {
			case 1:
				s.Algorithm = SignatureAlgorithm(sf.Varint)
			case 2:
				s.Raw = append([]byte(nil), sf.Bytes...)
			case 3:
				s.SignerID = EntryID(sf.Varint)
			}
		}
		w.Signatures = append(w.Signatures, s)
	}
	return w, nil
}

// Apply applies block's operations against txn: it stores the block, then
// applies each op of its body in order. The entire transaction must be
// aborted by the caller if any step fails (§4.6).
func (blk *Block) Apply(txn RWTxn) error {
	nextFree, err := txn.NextFreeEntryID()
	if err != nil {
		return err
	}
	state := NewState(nextFree)
	if err := txn.AddBlock(blk); err != nil {
		return err
	}
	for _, op := range blk.Body.Ops {
		if err := op.Apply(txn, state, blk); err != nil {
			return err
		}
	}
	return nil
}
