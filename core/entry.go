package core

// EntryID is a per-chain monotonic identifier for a directory entry.
type EntryID uint64

// EntryIDRoot is the distinguished sentinel used as an entry's ParentID
// when it has no real parent (currently, only the root entry's own Add op
// uses it this way). It is never itself allocated by the entry id counter,
// so no real entry's id may equal it.
const EntryIDRoot EntryID = 0

// FirstEntryID is the first id the per-chain counter allocates to a real
// entry, including the root entry itself. A fresh chain's
// next_free_entry_id starts here rather than at EntryIDRoot, keeping the
// sentinel and the root entry's own id distinct (§8 testable property 6).
const FirstEntryID EntryID = EntryIDRoot + 1

// Metadata records the provenance of a directory entry: the block that
// created it and that block's timestamp.
type Metadata struct {
	BlockID   BlockID
	Timestamp Timestamp
}

// Entry is a single materialized row in the directory tree.
type Entry struct {
	ID       EntryID
	ParentID EntryID
	Name     string
	TypeID   TypeID
	Payload  []byte
	Metadata Metadata
}

// Object decodes the entry's payload into its typed Object.
func (e Entry) Object() (Object, error) {
	return DecodeObject(e.TypeID, e.Payload)
}

// Header is the subset of an Entry identifying and locating it, without its
// payload. find_direntry (§4.7) returns a Header.
type Header struct {
	ID       EntryID
	TypeID   TypeID
	Metadata Metadata
}

// Encode produces the canonical on-disk encoding of e, for storage backends
// that persist entries as opaque blobs (1=id, 2=parent_id, 3=name,
// 4=type_id, 5=payload, 6=metadata{1=block_id,2=timestamp}).
func (e Entry) Encode() []byte {
	enc := NewEncoder()
	enc.WriteVarint(1, uint64(e.ID))
	enc.WriteVarint(2, uint64(e.ParentID))
	enc.WriteString(3, e.Name)
	enc.WriteVarint(4, uint64(e.TypeID))
	enc.WriteBytes(5, e.Payload)

	metaEnc := NewEncoder()
	metaEnc.WriteBytes(1, e.Metadata.BlockID.Bytes())
	metaEnc.WriteVarint(2, uint64(e.Metadata.Timestamp))
	enc.WriteMessage(6, metaEnc.Bytes())

	return enc.Bytes()
}

// DecodeEntry decodes an Entry from its canonical on-disk encoding.
func DecodeEntry(payload []byte) (Entry, error) {
	dec := NewDecoder(payload)
	var e Entry
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return Entry{}, errParse("decode entry", err)
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			e.ID = EntryID(f.Varint)
		case 2:
			e.ParentID = EntryID(f.Varint)
		case 3:
			e.Name = string(f.Bytes)
		case 4:
			e.TypeID = TypeID(f.Varint)
		case 5:
			e.Payload = append([]byte(nil), f.Bytes...)
		case 6:
			metaDec := NewDecoder(f.Bytes)
			for {
				mf, ok, err := metaDec.Next()
				if err != nil {
					return Entry{}, errParse("decode entry metadata", err)
				}
				if !ok {
					break
				}
				switch mf.Number {
				case 1:
					if len(mf.Bytes) != 32 {
						return Entry{}, errParse("metadata block_id must be 32 bytes", nil)
					}
					copy(e.Metadata.BlockID[:], mf.Bytes)
				case 2:
					e.Metadata.Timestamp = Timestamp(mf.Varint)
				}
			}
		}
	}
	return e, nil
}
