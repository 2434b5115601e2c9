package core

// ROTxn is the read-only transaction capability (§4.7). Any number of ROTxn
// may be open concurrently with each other and with at most one RWTxn; a
// reader always observes the snapshot as of when its transaction began.
//
// The split mirrors the ReadOnlyDatabase / full Database split in the
// beacon-chain storage interface this contract is grounded on, narrowed to
// the handful of operations this engine actually needs (no general query
// language, per the spec's Non-goals).
type ROTxn interface {
	// NextFreeEntryID returns the next unallocated EntryID for this chain.
	NextFreeEntryID() (EntryID, error)
	// FindDirEntry resolves an absolute path to an entry header.
	FindDirEntry(path Path) (Header, error)
	// GetEntry fetches a directory row by its EntryID.
	GetEntry(id EntryID) (Entry, error)
	// Children iterates the direct children of parentID.
	Children(parentID EntryID) ([]Entry, error)
	// GetBlock round-trips a previously stored block back into a Block value.
	GetBlock(id BlockID) (*Block, error)
	// Tip returns the BlockID of the most recently applied block, or the
	// zero BlockID if the chain is empty.
	Tip() (BlockID, error)
}

// RWTxn is the exclusive-writer transaction capability. At most one RWTxn may
// be open at a time; opening one blocks until any prior RWTxn commits or
// rolls back.
type RWTxn interface {
	ROTxn

	// AddBlock stores a block keyed by its BlockID. Fails if the id already
	// exists.
	AddBlock(block *Block) error
	// AddEntry inserts a directory row. Fails with KindEntryAlreadyExists if
	// a sibling of parentID already has name; fails with
	// KindDirectoryNotFound if parentID is not the root and is absent.
	AddEntry(id EntryID, parentID EntryID, name string, typeID TypeID, payload []byte, metadata Metadata) error
	// SetTip records the new chain tip. Called only within the same RWTxn as
	// the block and entries it follows.
	SetTip(id BlockID) error
}

// Adapter is the storage backend abstraction the engine depends on (§4.7).
// Any backend satisfying this interface is acceptable; storage/bolt ships a
// concrete implementation over an embedded B+tree store.
type Adapter interface {
	// ROTransaction opens a read-only transaction.
	ROTransaction() (ROTxn, error)
	// RWTransaction opens an exclusive read-write transaction.
	RWTransaction() (RWTxn, error)
	// Commit atomically publishes every write performed through txn. txn
	// must have come from RWTransaction.
	Commit(txn RWTxn) error
	// Rollback discards every write buffered in txn without publishing any
	// of them.
	Rollback(txn RWTxn) error
	// Close releases the adapter's underlying resources.
	Close() error
}
