package core

import "testing"

func TestEntryEncodeDecodeRoundTrip(t *testing.T) {
	e := Entry{
		ID:       7,
		ParentID: 2,
		Name:     "signing",
		TypeID:   TypeCredential,
		Payload:  []byte{1, 2, 3, 4},
		Metadata: Metadata{BlockID: BlockID{0xAA, 0xBB}, Timestamp: 123456789},
	}
	decoded, err := DecodeEntry(e.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != e.ID || decoded.ParentID != e.ParentID || decoded.Name != e.Name || decoded.TypeID != e.TypeID {
		t.Fatalf("round-tripped entry mismatch: %+v vs %+v", decoded, e)
	}
	if decoded.Metadata.BlockID != e.Metadata.BlockID || decoded.Metadata.Timestamp != e.Metadata.Timestamp {
		t.Fatalf("round-tripped metadata mismatch")
	}
	if string(decoded.Payload) != string(e.Payload) {
		t.Fatalf("round-tripped payload mismatch")
	}
}

func TestEntryEncodeDecodeEmptyPayload(t *testing.T) {
	e := Entry{ID: EntryIDRoot, ParentID: EntryIDRoot, Name: "", TypeID: TypeRoot, Payload: nil}
	decoded, err := DecodeEntry(e.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != EntryIDRoot || decoded.TypeID != TypeRoot {
		t.Fatalf("unexpected decode for root entry: %+v", decoded)
	}
}
