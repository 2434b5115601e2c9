package chain

import (
	"crypto/ed25519"
	"testing"

	"github.com/ithos-org/ithos/core"
)

// memTxn is a minimal in-memory core.RWTxn, duplicated from core's own test
// double since that one is unexported to core's package-internal tests.
type memTxn struct {
	blocks   map[core.BlockID]*core.Block
	entries  map[core.EntryID]core.Entry
	children map[core.EntryID][]core.EntryID
	byPath   map[string]core.EntryID
	nextID   core.EntryID
	tip      core.BlockID
}

func newMemTxn() *memTxn {
	return &memTxn{
		blocks:   make(map[core.BlockID]*core.Block),
		entries:  make(map[core.EntryID]core.Entry),
		children: make(map[core.EntryID][]core.EntryID),
		byPath:   make(map[string]core.EntryID),
		nextID:   core.FirstEntryID,
	}
}

func (t *memTxn) NextFreeEntryID() (core.EntryID, error) { return t.nextID, nil }

func (t *memTxn) FindDirEntry(path core.Path) (core.Header, error) {
	id, ok := t.byPath[path.String()]
	if !ok {
		return core.Header{}, core.NewError(core.KindDirectoryNotFound, path.String(), nil)
	}
	e := t.entries[id]
	return core.Header{ID: e.ID, TypeID: e.TypeID, Metadata: e.Metadata}, nil
}

func (t *memTxn) GetEntry(id core.EntryID) (core.Entry, error) {
	e, ok := t.entries[id]
	if !ok {
		return core.Entry{}, core.NewError(core.KindDirectoryNotFound, "no such entry", nil)
	}
	return e, nil
}

func (t *memTxn) Children(parentID core.EntryID) ([]core.Entry, error) {
	var out []core.Entry
	for _, id := range t.children[parentID] {
		out = append(out, t.entries[id])
	}
	return out, nil
}

func (t *memTxn) GetBlock(id core.BlockID) (*core.Block, error) {
	b, ok := t.blocks[id]
	if !ok {
		return nil, core.NewError(core.KindDirectoryNotFound, "no such block", nil)
	}
	return b, nil
}

func (t *memTxn) Tip() (core.BlockID, error) { return t.tip, nil }

func (t *memTxn) AddBlock(block *core.Block) error {
	id, err := block.ID()
	if err != nil {
		return err
	}
	if _, exists := t.blocks[id]; exists {
		return core.NewError(core.KindEntryAlreadyExists, "block already stored", nil)
	}
	t.blocks[id] = block
	return nil
}

func (t *memTxn) AddEntry(id core.EntryID, parentID core.EntryID, name string, typeID core.TypeID, payload []byte, metadata core.Metadata) error {
	path := name
	if _, ok := t.entries[parentID]; ok {
		for k, v := range t.byPath {
			if v == parentID {
				if k == "/" {
					path = "/" + name
				} else {
					path = k + "/" + name
				}
				break
			}
		}
	} else if parentID == core.EntryIDRoot && name == "" {
		path = ""
	}
	if path == "" {
		path = "/"
	} else if path[0] != '/' {
		path = "/" + path
	}
	if _, exists := t.byPath[path]; exists {
		return core.NewError(core.KindEntryAlreadyExists, path, nil)
	}
	t.entries[id] = core.Entry{ID: id, ParentID: parentID, Name: name, TypeID: typeID, Payload: payload, Metadata: metadata}
	t.children[parentID] = append(t.children[parentID], id)
	t.byPath[path] = id
	if id >= t.nextID {
		t.nextID = id + 1
	}
	return nil
}

func (t *memTxn) SetTip(id core.BlockID) error {
	t.tip = id
	return nil
}

type memAdapter struct {
	txn *memTxn
}

func newMemAdapter() *memAdapter { return &memAdapter{txn: newMemTxn()} }

func (a *memAdapter) ROTransaction() (core.ROTxn, error) { return a.txn, nil }
func (a *memAdapter) RWTransaction() (core.RWTxn, error) { return a.txn, nil }
func (a *memAdapter) Commit(core.RWTxn) error            { return nil }
func (a *memAdapter) Rollback(core.RWTxn) error          { return nil }
func (a *memAdapter) Close() error                       { return nil }

func mustGenesisBlock(t *testing.T) (*core.Block, ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate admin key: %v", err)
	}
	blk, err := core.NewGenesisBlock(core.CipherSuiteEd25519, "manager", priv, []byte(pub), []byte("sealed"), []byte("salt"), core.Timestamp(1000), "the tree of a thousand users begins with a single block")
	if err != nil {
		t.Fatalf("NewGenesisBlock: %v", err)
	}
	return blk, pub, priv
}

func TestChainAppendGenesis(t *testing.T) {
	adapter := newMemAdapter()
	c := New(adapter)

	blk, _, _ := mustGenesisBlock(t)
	if err := c.Append(blk); err != nil {
		t.Fatalf("append genesis: %v", err)
	}

	tip, err := c.Tip()
	if err != nil {
		t.Fatalf("tip: %v", err)
	}
	id, _ := blk.ID()
	if tip != id {
		t.Fatalf("tip = %x, want %x", tip, id)
	}
}

func TestChainAppendRejectsTipMismatch(t *testing.T) {
	adapter := newMemAdapter()
	c := New(adapter)

	blk, _, _ := mustGenesisBlock(t)
	if err := c.Append(blk); err != nil {
		t.Fatalf("append genesis: %v", err)
	}

	second, _, _ := mustGenesisBlock(t) // wrong parent: zero, but tip is now non-zero
	err := c.Append(second)
	if err == nil {
		t.Fatalf("expected chain tip mismatch error")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.KindChainTipMismatch {
		t.Fatalf("expected KindChainTipMismatch, got %v", err)
	}
}

func TestChainAppendRejectsUnauthorizedWitness(t *testing.T) {
	adapter := newMemAdapter()
	c := New(adapter)

	blk, _, _ := mustGenesisBlock(t)
	_, otherPriv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	forgedSig, err := core.Sign(core.SignatureEd25519, otherPriv, core.SigningPreimage(blk.Body))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	blk.Witness.Signatures[0].Raw = forgedSig

	err = c.Append(blk)
	if err == nil {
		t.Fatalf("expected unauthorized error for forged witness")
	}
	if kind, ok := core.KindOf(err); !ok || kind != core.KindUnauthorized {
		t.Fatalf("expected KindUnauthorized, got %v", err)
	}
}

func TestChainAppendSecondBlockBySignerInTree(t *testing.T) {
	adapter := newMemAdapter()
	c := New(adapter)

	genesis, _, adminPriv := mustGenesisBlock(t)
	if err := c.Append(genesis); err != nil {
		t.Fatalf("append genesis: %v", err)
	}
	genesisID, _ := genesis.ID()

	// Genesis allocates ids starting at core.FirstEntryID (the sentinel
	// core.EntryIDRoot is never assigned): root, global, users, the admin
	// system entry, keys, then signing — six ops, so signing lands at
	// FirstEntryID+5.
	const signingCredEntryID = core.FirstEntryID + 5
	path := core.MustParsePath("/global/users/manager/keys/signing2")
	op := core.Op{Type: core.OpAdd, Path: path, Object: core.OrgUnitObject{Description: "unrelated, just exercising append"}}
	body := core.Body{ParentID: genesisID, Timestamp: 2000, Ops: []core.Op{op}, Comment: "second block"}
	sig, err := core.Sign(core.SignatureEd25519, adminPriv, core.SigningPreimage(body))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second := &core.Block{Body: body, Witness: core.Witness{Signatures: []core.Signature{{Algorithm: core.SignatureEd25519, Raw: sig, SignerID: signingCredEntryID}}}}

	if err := c.Append(second); err != nil {
		t.Fatalf("append second block: %v", err)
	}
}
