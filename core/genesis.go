package core

// genesisOps builds the fixed six-operation bootstrap sequence every chain
// begins with: the root, the /global domain, its users org unit, the admin
// system entry, its keys org unit, and the admin's signing credential
// (§4.6). Grounded on original_source/src/block.rs's genesis-block
// construction.
func genesisOps(cs CipherSuite, adminUsername string, credential CredentialObject) ([]Op, error) {
	root := Root()
	adminPath, err := root.Push("global")
	if err != nil {
		return nil, err
	}
	usersPath, err := adminPath.Push("users")
	if err != nil {
		return nil, err
	}
	userPath, err := usersPath.Push(adminUsername)
	if err != nil {
		return nil, err
	}
	keysPath, err := userPath.Push("keys")
	if err != nil {
		return nil, err
	}
	signingPath, err := keysPath.Push("signing")
	if err != nil {
		return nil, err
	}

	return []Op{
		{Type: OpAdd, Path: root, Object: RootObject{Digest: cs.Digest}},
		{Type: OpAdd, Path: adminPath, Object: DomainObject{Description: "Global system configuration and identities"}},
		{Type: OpAdd, Path: usersPath, Object: OrgUnitObject{Description: "Core system users"}},
		{Type: OpAdd, Path: userPath, Object: SystemObject{Username: adminUsername}},
		{Type: OpAdd, Path: keysPath, Object: OrgUnitObject{Description: "Admin credentials"}},
		{Type: OpAdd, Path: signingPath, Object: credential},
	}, nil
}

// SimulateEntryIDs computes the EntryID each op in ops would receive if
// applied in order, for op sequences that are fully self-contained (every
// referenced parent path is created earlier in the same sequence). The
// chain authority layer uses this to resolve a genesis block's own signers
// before any entry exists in storage.
func SimulateEntryIDs(ops []Op) (map[Path]EntryID, error) {
	return simulateGenesisEntryIDs(ops)
}

// simulateGenesisEntryIDs mirrors State's same-block parent resolution for a
// sequence of ops that are known to be fully self-contained (every parent is
// created earlier in the same sequence, as genesis always is), returning the
// EntryID each op's path would receive. It never touches storage, so it can
// run before any Adapter exists.
func simulateGenesisEntryIDs(ops []Op) (map[Path]EntryID, error) {
	state := NewState(FirstEntryID)
	ids := make(map[Path]EntryID, len(ops))
	for _, op := range ops {
		id := state.allocate()
		if !op.Path.IsRoot() {
			parentPath, _ := op.Path.Parent()
			if _, ok := ids[parentPath]; !ok {
				return nil, errPathInvalid("genesis op has no in-sequence parent: " + op.Path.String())
			}
		}
		ids[op.Path] = id
		state.newEntries[op.Path] = id
	}
	return ids, nil
}

// NewGenesisBlock constructs and signs the first block of a new chain: the
// admin's signing keypair is both the subject of one of the block's own
// operations and the signer of the block itself (§4.6).
//
// adminPriv is the private half of adminPublicKey, in the form Sign expects
// for cs.Signature. sealedPrivateKey and salt are the already-sealed
// (crypto.Seal'd) private key material stored in the credential entry.
func NewGenesisBlock(
	cs CipherSuite,
	adminUsername string,
	adminPriv interface{},
	adminPublicKey []byte,
	sealedPrivateKey []byte,
	salt []byte,
	createdAt Timestamp,
	comment string,
) (*Block, error) {
	if adminUsername == "" {
		return nil, errPathInvalid("admin username must not be empty")
	}

	credential := CredentialObject{
		SignatureAlgorithm:  cs.Signature,
		EncryptionAlgorithm: cs.Encryption,
		SealedPrivateKey:    sealedPrivateKey,
		Salt:                salt,
		PublicKey:           adminPublicKey,
		CreatedAt:           createdAt,
		ExpiresAt:           createdAt.Add(AdminKeypairLifetime),
		Label:               "signing",
	}

	ops, err := genesisOps(cs, adminUsername, credential)
	if err != nil {
		return nil, err
	}

	ids, err := simulateGenesisEntryIDs(ops)
	if err != nil {
		return nil, err
	}
	signingPath := ops[len(ops)-1].Path
	signerID := ids[signingPath]

	body := Body{
		ParentID:  ZeroBlockID,
		Timestamp: createdAt,
		Ops:       ops,
		Comment:   comment,
	}

	sig, err := Sign(cs.Signature, adminPriv, SigningPreimage(body))
	if err != nil {
		return nil, err
	}

	return &Block{
		Body: body,
		Witness: Witness{Signatures: []Signature{
			{Algorithm: cs.Signature, Raw: sig, SignerID: signerID},
		}},
	}, nil
}
