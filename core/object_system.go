package core

// SystemObject models a System entry: the schema is a single username field,
// pinned exactly from original_source/src/object/system.rs.
type SystemObject struct {
	Username string
}

func (s SystemObject) TypeID() TypeID { return TypeSystem }

func (s SystemObject) ObjectHash() Digest {
	return HashStruct(map[string]Digest{
		"username": HashString(s.Username),
	})
}

func (s SystemObject) Encode() []byte {
	e := NewEncoder()
	e.WriteString(1, s.Username)
	return e.Bytes()
}

// DecodeSystem decodes a SystemObject from its canonical encoding.
func DecodeSystem(payload []byte) (Object, error) {
	dec := NewDecoder(payload)
	var o SystemObject
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return nil, errParse("decode system object", err)
		}
		if !ok {
			break
		}
		if f.Number == 1 {
			o.Username = string(f.Bytes)
		}
	}
	return o, nil
}
