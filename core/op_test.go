package core

import "testing"

func signedTestBlock(t *testing.T, ops []Op) *Block {
	t.Helper()
	body := Body{ParentID: ZeroBlockID, Timestamp: 42, Ops: ops, Comment: "test"}
	return &Block{
		Body:    body,
		Witness: Witness{Signatures: []Signature{{Algorithm: SignatureEd25519, Raw: []byte("sig"), SignerID: 0}}},
	}
}

func TestOpApplyAddRoot(t *testing.T) {
	txn := newMemTxn()
	blk := signedTestBlock(t, []Op{{Type: OpAdd, Path: Root(), Object: RootObject{Digest: DigestSHA256}}})
	state := NewState(FirstEntryID)
	if err := blk.Body.Ops[0].Apply(txn, state, blk); err != nil {
		t.Fatalf("apply root: %v", err)
	}
	hdr, err := txn.FindDirEntry(Root())
	if err != nil {
		t.Fatalf("find root: %v", err)
	}
	if hdr.ID != FirstEntryID {
		t.Fatalf("root entry id = %d, want %d", hdr.ID, FirstEntryID)
	}
	if hdr.ID == EntryIDRoot {
		t.Fatalf("root entry must not be allocated the sentinel EntryIDRoot")
	}
}

func TestOpApplySameBlockParentResolution(t *testing.T) {
	txn := newMemTxn()
	domain := MustParsePath("/global")
	ops := []Op{
		{Type: OpAdd, Path: Root(), Object: RootObject{Digest: DigestSHA256}},
		{Type: OpAdd, Path: domain, Object: DomainObject{Description: "d"}},
	}
	blk := signedTestBlock(t, ops)
	if err := blk.Apply(txn); err != nil {
		t.Fatalf("apply: %v", err)
	}
	hdr, err := txn.FindDirEntry(domain)
	if err != nil {
		t.Fatalf("find domain: %v", err)
	}
	if hdr.TypeID != TypeDomain {
		t.Fatalf("unexpected type id %v", hdr.TypeID)
	}
}

func TestOpApplyMissingParentFails(t *testing.T) {
	txn := newMemTxn()
	orphan := MustParsePath("/global/users")
	blk := signedTestBlock(t, []Op{{Type: OpAdd, Path: orphan, Object: OrgUnitObject{Description: "d"}}})
	err := blk.Apply(txn)
	if err == nil {
		t.Fatalf("expected error applying op with missing parent")
	}
	if kind, ok := KindOf(err); !ok || kind != KindDirectoryNotFound {
		t.Fatalf("expected KindDirectoryNotFound, got %v", err)
	}
}

func TestOpApplyDuplicateNameFails(t *testing.T) {
	txn := newMemTxn()
	ops := []Op{
		{Type: OpAdd, Path: Root(), Object: RootObject{Digest: DigestSHA256}},
		{Type: OpAdd, Path: MustParsePath("/global"), Object: DomainObject{Description: "d"}},
	}
	if err := signedTestBlock(t, ops).Apply(txn); err != nil {
		t.Fatalf("apply first block: %v", err)
	}
	dup := signedTestBlock(t, []Op{{Type: OpAdd, Path: MustParsePath("/global"), Object: DomainObject{Description: "again"}}})
	err := dup.Apply(txn)
	if err == nil {
		t.Fatalf("expected error for duplicate sibling name")
	}
	if kind, ok := KindOf(err); !ok || kind != KindEntryAlreadyExists {
		t.Fatalf("expected KindEntryAlreadyExists, got %v", err)
	}
}

func TestOpEncodeDecodeRoundTrip(t *testing.T) {
	op := Op{Type: OpAdd, Path: MustParsePath("/global"), Object: DomainObject{Description: "hello"}}
	decoded, err := DecodeOp(op.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ObjectHash() != op.ObjectHash() {
		t.Fatalf("round-tripped op hash mismatch")
	}
}
