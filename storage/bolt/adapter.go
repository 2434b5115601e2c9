// Package bolt is the concrete Storage Adapter backing an ithos chain with
// an embedded go.etcd.io/bbolt database: a single-writer, multi-reader
// transactional B+tree store. The read-only/read-write transaction split
// this package exposes is bbolt's own View/Update split passed straight
// through, matching the shape of other_examples' badger-backed disk.go and
// the beacon-chain ReadOnlyDatabase/Database split this contract is
// grounded on.
package bolt

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/ithos-org/ithos/core"
	ithoslog "github.com/ithos-org/ithos/internal/log"
)

// Adapter is a core.Adapter backed by a single bbolt database file.
type Adapter struct {
	db  *bolt.DB
	log *logrus.Entry
}

// Open creates or opens the database at path and ensures its buckets exist.
func Open(path string) (*Adapter, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, core.NewError(core.KindStorageFailure, "open bolt database", err)
	}
	a := &Adapter{db: db, log: ithoslog.With("storage.bolt")}
	if err := a.db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, core.NewError(core.KindStorageFailure, "create buckets", err)
	}
	return a, nil
}

// ROTransaction opens a read-only bbolt transaction.
func (a *Adapter) ROTransaction() (core.ROTxn, error) {
	tx, err := a.db.Begin(false)
	if err != nil {
		a.log.WithError(err).Warn("failed to open read transaction")
		return nil, core.NewError(core.KindStorageFailure, "begin read transaction", err)
	}
	return &Txn{tx: tx}, nil
}

// RWTransaction opens the single writable bbolt transaction. bbolt itself
// serializes writers, so this blocks until any prior writer commits or
// rolls back.
func (a *Adapter) RWTransaction() (core.RWTxn, error) {
	tx, err := a.db.Begin(true)
	if err != nil {
		a.log.WithError(err).Warn("failed to open write transaction")
		return nil, core.NewError(core.KindStorageFailure, "begin write transaction", err)
	}
	return &Txn{tx: tx}, nil
}

// Commit publishes every write buffered in txn.
func (a *Adapter) Commit(txn core.RWTxn) error {
	t, ok := txn.(*Txn)
	if !ok {
		return core.NewError(core.KindStorageFailure, "commit: not a bolt transaction", nil)
	}
	if err := t.tx.Commit(); err != nil {
		a.log.WithError(err).Warn("commit failed")
		return core.NewError(core.KindStorageFailure, "commit", err)
	}
	return nil
}

// Rollback discards every write buffered in txn.
func (a *Adapter) Rollback(txn core.RWTxn) error {
	t, ok := txn.(*Txn)
	if !ok {
		return core.NewError(core.KindStorageFailure, "rollback: not a bolt transaction", nil)
	}
	if err := t.tx.Rollback(); err != nil {
		a.log.WithError(err).Warn("rollback failed")
		return core.NewError(core.KindStorageFailure, "rollback", err)
	}
	return nil
}

// Close releases the underlying database file.
func (a *Adapter) Close() error {
	if err := a.db.Close(); err != nil {
		return core.NewError(core.KindStorageFailure, "close", err)
	}
	return nil
}

// Txn is a core.ROTxn/core.RWTxn backed by one bbolt transaction. The same
// type implements both; whether write operations succeed depends on
// whether the underlying bbolt transaction is writable, exactly mirroring
// bbolt's own contract.
type Txn struct {
	tx *bolt.Tx
}

func entryIDKey(id core.EntryID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

func byNameKey(parentID core.EntryID, name string) []byte {
	key := entryIDKey(parentID)
	key = append(key, 0x00)
	return append(key, []byte(name)...)
}

func childKey(parentID, childID core.EntryID) []byte {
	key := entryIDKey(parentID)
	return append(key, entryIDKey(childID)...)
}

// NextFreeEntryID returns the next unallocated EntryID, defaulting to
// core.FirstEntryID for a fresh chain: core.EntryIDRoot itself is a
// sentinel parent marker, never a real entry's id, so the counter must
// never hand it out (§8 testable property 6).
func (t *Txn) NextFreeEntryID() (core.EntryID, error) {
	b := t.tx.Bucket(bucketMeta)
	v := b.Get(metaKeyNextFreeEntryID)
	if v == nil {
		return core.FirstEntryID, nil
	}
	return core.EntryID(binary.BigEndian.Uint64(v)), nil
}

func (t *Txn) setNextFreeEntryID(id core.EntryID) error {
	b := t.tx.Bucket(bucketMeta)
	return b.Put(metaKeyNextFreeEntryID, entryIDKey(id))
}

// rootEntryID returns the real, allocated id of the "/" entry, looked up
// rather than assumed: the root entry's id comes from the same counter as
// every other entry and is never core.EntryIDRoot (see AddEntry).
func (t *Txn) rootEntryID() (core.EntryID, error) {
	b := t.tx.Bucket(bucketMeta)
	v := b.Get(metaKeyRootID)
	if v == nil {
		return 0, core.NewError(core.KindDirectoryNotFound, "/", nil)
	}
	return core.EntryID(binary.BigEndian.Uint64(v)), nil
}

// FindDirEntry resolves path one component at a time through bucketByName,
// starting from the root.
func (t *Txn) FindDirEntry(path core.Path) (core.Header, error) {
	id, err := t.rootEntryID()
	if err != nil {
		return core.Header{}, err
	}
	if !path.IsRoot() {
		by := t.tx.Bucket(bucketByName)
		parent := id
		for _, component := range path.Components() {
			v := by.Get(byNameKey(parent, component))
			if v == nil {
				return core.Header{}, core.NewError(core.KindDirectoryNotFound, path.String(), nil)
			}
			parent = core.EntryID(binary.BigEndian.Uint64(v))
		}
		id = parent
	}

	entry, err := t.GetEntry(id)
	if err != nil {
		return core.Header{}, core.NewError(core.KindDirectoryNotFound, path.String(), err)
	}
	return core.Header{ID: entry.ID, TypeID: entry.TypeID, Metadata: entry.Metadata}, nil
}

// GetEntry fetches a directory row by its EntryID.
func (t *Txn) GetEntry(id core.EntryID) (core.Entry, error) {
	b := t.tx.Bucket(bucketEntries)
	v := b.Get(entryIDKey(id))
	if v == nil {
		return core.Entry{}, core.NewError(core.KindDirectoryNotFound, fmt.Sprintf("entry %d", id), nil)
	}
	return core.DecodeEntry(v)
}

// Children iterates the direct children of parentID in EntryID order.
func (t *Txn) Children(parentID core.EntryID) ([]core.Entry, error) {
	children := t.tx.Bucket(bucketChildren)
	entries := t.tx.Bucket(bucketEntries)
	prefix := entryIDKey(parentID)

	var out []core.Entry
	c := children.Cursor()
	for k, _ := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, _ = c.Next() {
		childID := core.EntryID(binary.BigEndian.Uint64(k[len(prefix):]))
		v := entries.Get(entryIDKey(childID))
		if v == nil {
			continue
		}
		e, err := core.DecodeEntry(v)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func hasPrefix(b, prefix []byte) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == string(prefix)
}

// GetBlock round-trips a previously stored block back into a Block value.
func (t *Txn) GetBlock(id core.BlockID) (*core.Block, error) {
	b := t.tx.Bucket(bucketBlocks)
	v := b.Get(id.Bytes())
	if v == nil {
		return nil, core.NewError(core.KindDirectoryNotFound, "no such block", nil)
	}
	blk, err := core.DecodeBlock(v)
	if err != nil {
		return nil, err
	}
	return &blk, nil
}

// Tip returns the BlockID of the most recently applied block, or the zero
// BlockID if the chain is empty.
func (t *Txn) Tip() (core.BlockID, error) {
	b := t.tx.Bucket(bucketMeta)
	v := b.Get(metaKeyTip)
	if v == nil {
		return core.BlockID{}, nil
	}
	var id core.BlockID
	copy(id[:], v)
	return id, nil
}

// AddBlock stores a block keyed by its BlockID.
func (t *Txn) AddBlock(block *core.Block) error {
	id, err := block.ID()
	if err != nil {
		return err
	}
	b := t.tx.Bucket(bucketBlocks)
	key := id.Bytes()
	if b.Get(key) != nil {
		return core.NewError(core.KindEntryAlreadyExists, "block already stored", nil)
	}
	if err := b.Put(key, block.Encode()); err != nil {
		return core.NewError(core.KindStorageFailure, "put block", err)
	}
	return nil
}

// AddEntry inserts a directory row and its by-name/children index entries.
// It fails with KindDirectoryNotFound if a non-root entry's parent row is
// absent, and with KindEntryAlreadyExists on a sibling name collision.
// The root entry is distinguished not by its id (which is allocated from
// the same counter as every other entry) but by having the sentinel
// core.EntryIDRoot as its parent and an empty name; it is indexed by its
// real id in bucketMeta instead of by_name/children, since it has no real
// parent to be indexed under.
func (t *Txn) AddEntry(id core.EntryID, parentID core.EntryID, name string, typeID core.TypeID, payload []byte, metadata core.Metadata) error {
	isRoot := parentID == core.EntryIDRoot && name == ""
	if !isRoot {
		if t.tx.Bucket(bucketEntries).Get(entryIDKey(parentID)) == nil {
			return core.NewError(core.KindDirectoryNotFound, fmt.Sprintf("parent entry %d", parentID), nil)
		}
		by := t.tx.Bucket(bucketByName)
		key := byNameKey(parentID, name)
		if by.Get(key) != nil {
			return core.NewError(core.KindEntryAlreadyExists, name, nil)
		}
		if err := by.Put(key, entryIDKey(id)); err != nil {
			return core.NewError(core.KindStorageFailure, "index by_name", err)
		}
		children := t.tx.Bucket(bucketChildren)
		if err := children.Put(childKey(parentID, id), []byte{}); err != nil {
			return core.NewError(core.KindStorageFailure, "index children", err)
		}
	}

	entry := core.Entry{ID: id, ParentID: parentID, Name: name, TypeID: typeID, Payload: payload, Metadata: metadata}
	entries := t.tx.Bucket(bucketEntries)
	if err := entries.Put(entryIDKey(id), entry.Encode()); err != nil {
		return core.NewError(core.KindStorageFailure, "put entry", err)
	}

	if isRoot {
		if err := t.tx.Bucket(bucketMeta).Put(metaKeyRootID, entryIDKey(id)); err != nil {
			return core.NewError(core.KindStorageFailure, "set root entry id", err)
		}
	}

	if err := t.setNextFreeEntryID(id + 1); err != nil {
		return core.NewError(core.KindStorageFailure, "advance next_free_entry_id", err)
	}
	return nil
}

// SetTip records the new chain tip.
func (t *Txn) SetTip(id core.BlockID) error {
	b := t.tx.Bucket(bucketMeta)
	if err := b.Put(metaKeyTip, id.Bytes()); err != nil {
		return core.NewError(core.KindStorageFailure, "set tip", err)
	}
	return nil
}
