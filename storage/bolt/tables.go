package bolt

// Bucket name constants for the ithos chain database, styled after
// erigon's kv/tables.go: one short doc-commented name per logical table,
// no registry machinery.
var (
	// bucketBlocks maps a 32-byte BlockID to its canonical Block encoding.
	bucketBlocks = []byte("blocks")
	// bucketEntries maps an 8-byte big-endian EntryID to its canonical
	// Entry encoding.
	bucketEntries = []byte("entries")
	// bucketByName maps parentID(8 bytes) || 0x00 || name to the child's
	// EntryID (8 bytes), letting find_direntry walk a path one component
	// at a time without scanning.
	bucketByName = []byte("by_name")
	// bucketChildren maps parentID(8 bytes) || childID(8 bytes) to an
	// empty value, letting Children(parentID) prefix-scan in EntryID
	// order without a secondary sort step.
	bucketChildren = []byte("children")
	// bucketMeta holds the small fixed keys below.
	bucketMeta = []byte("meta")
)

// Keys within bucketMeta.
var (
	metaKeyTip             = []byte("tip")
	metaKeyNextFreeEntryID = []byte("next_free_entry_id")
	// metaKeyRootID holds the real, allocated EntryID of the "/" entry.
	// core.EntryIDRoot (0) is only ever a sentinel parent marker for the
	// root op itself; the root entry's own id is allocated from the same
	// counter as everything else, so it must be looked up rather than
	// assumed.
	metaKeyRootID = []byte("root_id")
)

var allBuckets = [][]byte{bucketBlocks, bucketEntries, bucketByName, bucketChildren, bucketMeta}
