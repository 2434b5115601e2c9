package core

// OpType identifies the kind of mutation an Op performs. Add is the only
// defined value in this version (§4.5); future optypes must extend this
// varint space without reusing values.
type OpType uint8

const (
	OpAdd OpType = 1
)

// Op is a single operation within a Body: create obj at path.
type Op struct {
	Type   OpType
	Path   Path
	Object Object
}

func (o Op) ObjectHash() Digest {
	return HashStruct(map[string]Digest{
		"optype": HashUint64(uint64(o.Type)),
		"path":   HashPath(o.Path),
		"object": o.Object.ObjectHash(),
	})
}

// Encode produces the canonical encoding of o (§4.3: 1=optype, 2=path,
// 3=object).
func (o Op) Encode() []byte {
	e := NewEncoder()
	e.WriteVarint(1, uint64(o.Type))
	e.WriteString(2, o.Path.String())
	objEnc := NewEncoder()
	objEnc.WriteVarint(1, uint64(o.Object.TypeID()))
	objEnc.WriteBytes(2, o.Object.Encode())
	e.WriteMessage(3, objEnc.Bytes())
	return e.Bytes()
}

// DecodeOp decodes an Op from its canonical encoding.
func DecodeOp(payload []byte) (Op, error) {
	dec := NewDecoder(payload)
	var o Op
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return Op{}, errParse("decode op", err)
		}
		if !ok {
			break
		}
		switch f.Number {
		case 1:
			o.Type = OpType(f.Varint)
		case 2:
			p, err := ParsePath(string(f.Bytes))
			if err != nil {
				return Op{}, err
			}
			o.Path = p
		case 3:
			objDec := NewDecoder(f.Bytes)
			var typeID TypeID
			var payload []byte
			for {
				of, ok, err := objDec.Next()
				if err != nil {
					return Op{}, errParse("decode op object", err)
				}
				if !ok {
					break
				}
				switch of.Number {
				case 1:
					typeID = TypeID(of.Varint)
				case 2:
					payload = of.Bytes
				}
			}
			obj, err := DecodeObject(typeID, payload)
			if err != nil {
				return Op{}, err
			}
			o.Object = obj
		}
	}
	return o, nil
}

// State tracks allocation and same-block visibility while applying a Body's
// operations (§4.5). Grounded on original_source/src/op.rs's State type.
type State struct {
	nextEntryID EntryID
	newEntries  map[Path]EntryID
}

// NewState seeds a State with the adapter's next free entry id.
func NewState(nextFreeEntryID EntryID) *State {
	return &State{nextEntryID: nextFreeEntryID, newEntries: make(map[Path]EntryID)}
}

func (s *State) allocate() EntryID {
	id := s.nextEntryID
	s.nextEntryID++
	return id
}

// Apply applies o against txn, updating state and using block for the
// entry's provenance metadata.
func (o Op) Apply(txn RWTxn, state *State, block *Block) error {
	switch o.Type {
	case OpAdd:
		return o.applyAdd(txn, state, block)
	default:
		return errPathInvalid("unsupported optype")
	}
}

func (o Op) applyAdd(txn RWTxn, state *State, block *Block) error {
	entryID := state.allocate()

	var parentID EntryID
	if o.Path.IsRoot() {
		parentID = EntryIDRoot
	} else {
		parentPath, _ := o.Path.Parent()
		if id, ok := state.newEntries[parentPath]; ok {
			parentID = id
		} else {
			header, err := txn.FindDirEntry(parentPath)
			if err != nil {
				return err
			}
			parentID = header.ID
		}
	}

	name := o.Path.EntryName()
	if name == "" && !o.Path.IsRoot() {
		return errPathInvalid("path has no final component: " + o.Path.String())
	}

	blockID, err := block.ID()
	if err != nil {
		return err
	}
	metadata := Metadata{BlockID: blockID, Timestamp: block.Body.Timestamp}
	payload := o.Object.Encode()

	if err := txn.AddEntry(entryID, parentID, name, o.Object.TypeID(), payload, metadata); err != nil {
		return err
	}
	state.newEntries[o.Path] = entryID
	return nil
}
