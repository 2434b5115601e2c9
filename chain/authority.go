// Package chain implements the Chain Authority: the tip-tracking and
// signer-authorization layer that sits above the core Operation Engine and
// Storage Adapter, turning per-block verification into a running,
// append-only chain. Structured logging lives here, never in core/..., per
// the engine's propagation policy: core returns errors, chain logs them.
package chain

import (
	"crypto/ed25519"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ithos-org/ithos/core"
	ithoslog "github.com/ithos-org/ithos/internal/log"
)

// Chain owns the serialized append path for a single hash-chained
// directory log. Grounded on core/ledger.go's applyBlock/AppendBlock shape
// (height/parent check before persisting, mutex-guarded append), narrowed
// from a blockchain ledger to a single chain with one append point.
type Chain struct {
	adapter core.Adapter
	mu      sync.Mutex
	log     *logrus.Entry
}

// New wraps adapter with Chain Authority semantics.
func New(adapter core.Adapter) *Chain {
	return &Chain{adapter: adapter, log: ithoslog.With("chain")}
}

// Tip returns the BlockID of the chain's most recently applied block, or
// the zero BlockID for an empty chain.
func (c *Chain) Tip() (core.BlockID, error) {
	txn, err := c.adapter.ROTransaction()
	if err != nil {
		return core.BlockID{}, core.NewError(core.KindStorageFailure, "open read transaction", err)
	}
	return txn.Tip()
}

// Append validates block against the current tip and its signer-set
// authorization, then applies and commits it in a single RWTxn. Append
// serializes all writers: only one Append may run at a time per Chain.
func (c *Chain) Append(block *core.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	txn, err := c.adapter.RWTransaction()
	if err != nil {
		return core.NewError(core.KindStorageFailure, "open write transaction", err)
	}

	if err := c.appendLocked(txn, block); err != nil {
		if rbErr := c.adapter.Rollback(txn); rbErr != nil {
			c.log.WithError(rbErr).Warn("rollback failed after append error")
		}
		fields := logrus.Fields{"parent_id": block.Body.ParentID}
		if id, idErr := block.ID(); idErr == nil {
			fields["block_id"] = id
		}
		if kind, ok := core.KindOf(err); ok {
			fields["kind"] = kind.String()
			c.log.WithFields(fields).Warn("rejected block")
		} else {
			c.log.WithFields(fields).WithError(err).Warn("rejected block")
		}
		return err
	}

	if err := c.adapter.Commit(txn); err != nil {
		return core.NewError(core.KindStorageFailure, "commit block", err)
	}
	return nil
}

func (c *Chain) appendLocked(txn core.RWTxn, block *core.Block) error {
	tip, err := txn.Tip()
	if err != nil {
		return core.NewError(core.KindStorageFailure, "read tip", err)
	}
	if block.Body.ParentID != tip {
		return core.NewError(core.KindChainTipMismatch, "block parent does not match chain tip", nil)
	}

	signers, err := c.resolveSigners(txn, block, tip)
	if err != nil {
		return err
	}
	if err := verifyWitness(block, signers); err != nil {
		return err
	}

	if err := block.Apply(txn); err != nil {
		return err
	}
	id, err := block.ID()
	if err != nil {
		return err
	}
	if err := txn.SetTip(id); err != nil {
		return core.NewError(core.KindStorageFailure, "set tip", err)
	}
	c.log.WithFields(logrus.Fields{"block_id": id, "parent_id": tip}).Info("appended block")
	return nil
}

// resolveSigners returns the set of credentials authorized to witness
// block, keyed by their EntryID. For the first block of a chain (tip is
// zero) the only available signers are the credentials the block itself
// introduces, since /global/users does not exist yet; every later block
// resolves against the materialized tree's current signing credentials.
func (c *Chain) resolveSigners(txn core.ROTxn, block *core.Block, tip core.BlockID) (map[core.EntryID]core.CredentialObject, error) {
	if tip.IsZero() {
		return selfIntroducedSigners(block)
	}
	return treeSigners(txn, block.Body.Timestamp)
}

func selfIntroducedSigners(block *core.Block) (map[core.EntryID]core.CredentialObject, error) {
	ids, err := core.SimulateEntryIDs(block.Body.Ops)
	if err != nil {
		return nil, err
	}
	signers := make(map[core.EntryID]core.CredentialObject)
	for _, op := range block.Body.Ops {
		cred, ok := op.Object.(core.CredentialObject)
		if !ok {
			continue
		}
		if !cred.ValidAt(block.Body.Timestamp) {
			continue
		}
		signers[ids[op.Path]] = cred
	}
	if len(signers) == 0 {
		return nil, core.NewError(core.KindUnauthorized, "first block introduces no valid signing credential", nil)
	}
	return signers, nil
}

// treeSigners walks /global/users/*/keys/* for credentials valid at ts,
// mirroring the signer-set resolution the Chain Authority performs on
// every non-genesis append.
func treeSigners(txn core.ROTxn, ts core.Timestamp) (map[core.EntryID]core.CredentialObject, error) {
	usersHeader, err := txn.FindDirEntry(core.MustParsePath("/global/users"))
	if err != nil {
		return nil, core.NewError(core.KindUnauthorized, "no /global/users directory: cannot resolve signers", nil)
	}

	users, err := txn.Children(usersHeader.ID)
	if err != nil {
		return nil, core.NewError(core.KindStorageFailure, "list users", err)
	}

	signers := make(map[core.EntryID]core.CredentialObject)
	for _, user := range users {
		keysEntry, ok := findChildByName(txn, user.ID, "keys")
		if !ok {
			continue
		}
		creds, err := txn.Children(keysEntry.ID)
		if err != nil {
			return nil, core.NewError(core.KindStorageFailure, "list credentials", err)
		}
		for _, credEntry := range creds {
			if credEntry.TypeID != core.TypeCredential {
				continue
			}
			obj, err := credEntry.Object()
			if err != nil {
				return nil, err
			}
			cred, ok := obj.(core.CredentialObject)
			if !ok || !cred.ValidAt(ts) {
				continue
			}
			signers[credEntry.ID] = cred
		}
	}
	if len(signers) == 0 {
		return nil, core.NewError(core.KindUnauthorized, "no currently valid signing credential found", nil)
	}
	return signers, nil
}

func findChildByName(txn core.ROTxn, parentID core.EntryID, name string) (core.Entry, bool) {
	children, err := txn.Children(parentID)
	if err != nil {
		return core.Entry{}, false
	}
	for _, child := range children {
		if child.Name == name {
			return child, true
		}
	}
	return core.Entry{}, false
}

// verifyWitness reports whether every one of block's witness signatures
// verifies under a credential in signers. A block with no signatures, or with
// any signature that does not check out, is rejected.
func verifyWitness(block *core.Block, signers map[core.EntryID]core.CredentialObject) error {
	unauthorized := core.NewError(core.KindUnauthorized, "witness signature does not verify under an authorized signing credential", nil)
	if len(block.Witness.Signatures) == 0 {
		return unauthorized
	}
	preimage := core.SigningPreimage(block.Body)
	for _, sig := range block.Witness.Signatures {
		cred, ok := signers[sig.SignerID]
		if !ok || cred.SignatureAlgorithm != sig.Algorithm {
			return unauthorized
		}
		pub, err := credentialPublicKey(cred)
		if err != nil {
			return unauthorized
		}
		valid, err := core.Verify(sig.Algorithm, pub, preimage, sig.Raw)
		if err != nil || !valid {
			return unauthorized
		}
	}
	return nil
}

func credentialPublicKey(cred core.CredentialObject) (interface{}, error) {
	switch cred.SignatureAlgorithm {
	case core.SignatureEd25519:
		if len(cred.PublicKey) != ed25519.PublicKeySize {
			return nil, core.NewError(core.KindCryptoFailure, "malformed ed25519 public key", nil)
		}
		return ed25519.PublicKey(cred.PublicKey), nil
	case core.SignatureBLS12381:
		return cred.PublicKey, nil
	default:
		return nil, core.NewError(core.KindCryptoFailure, "unknown signature algorithm", nil)
	}
}
