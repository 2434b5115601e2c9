package core

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// Digest is a 32-byte SHA-256 object hash. SHA-256 is the only supported
// digest algorithm (§4.2).
type Digest [32]byte

// Bytes returns the raw digest bytes.
func (d Digest) Bytes() []byte { return d[:] }

// tag bytes prefixed to a primitive's contents before hashing, per the
// canonicalization scheme: bool, uint, string, raw bytes, datetime, list,
// struct/map.
const (
	tagBool     = 'b'
	tagUint     = 'u'
	tagString   = 's'
	tagRaw      = 'r'
	tagDatetime = 'd'
	tagList     = 'l'
	tagStruct   = 'o'
)

func tagged(tag byte, content []byte) Digest {
	h := sha256.New()
	h.Write([]byte{tag})
	h.Write(content)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// HashBool hashes a boolean primitive.
func HashBool(b bool) Digest {
	v := byte(0)
	if b {
		v = 1
	}
	return tagged(tagBool, []byte{v})
}

// HashUint64 hashes an unsigned integer primitive, big-endian.
func HashUint64(v uint64) Digest {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return tagged(tagUint, buf[:])
}

// HashString hashes a UTF-8 string primitive.
func HashString(s string) Digest {
	return tagged(tagString, []byte(s))
}

// HashRaw hashes an opaque byte-string primitive.
func HashRaw(b []byte) Digest {
	return tagged(tagRaw, b)
}

// HashTimestamp hashes a datetime primitive. The pinned unit is unsigned
// 64-bit nanoseconds since the Unix epoch (SPEC_FULL.md §4.2).
func HashTimestamp(ts Timestamp) Digest {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ts))
	return tagged(tagDatetime, buf[:])
}

// HashList hashes an ordered sequence of child digests.
func HashList(children ...Digest) Digest {
	h := sha256.New()
	h.Write([]byte{tagList})
	for _, c := range children {
		h.Write(c[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// HashStruct hashes a set of (field name -> field digest) pairs as a
// sorted map: tag 'o' followed by H(field_name)||H(field_value) pairs in
// ascending order of H(field_name). This makes the result independent of
// field declaration order.
func HashStruct(fields map[string]Digest) Digest {
	type pair struct {
		nameDigest  Digest
		valueDigest Digest
	}
	pairs := make([]pair, 0, len(fields))
	for name, value := range fields {
		pairs = append(pairs, pair{nameDigest: HashString(name), valueDigest: value})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].nameDigest[:], pairs[j].nameDigest[:]) < 0
	})
	h := sha256.New()
	h.Write([]byte{tagStruct})
	for _, p := range pairs {
		h.Write(p.nameDigest[:])
		h.Write(p.valueDigest[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Hashable is implemented by every entity with a canonical object hash.
type Hashable interface {
	ObjectHash() Digest
}

// HashPath hashes a Path as its canonical string form.
func HashPath(p Path) Digest {
	return HashString(p.String())
}
