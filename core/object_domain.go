package core

// DomainObject models a Domain entry: a grouping node with an optional
// human-readable description (§4.4).
type DomainObject struct {
	Description string
}

func (d DomainObject) TypeID() TypeID { return TypeDomain }

func (d DomainObject) ObjectHash() Digest {
	return HashStruct(map[string]Digest{
		"description": HashString(d.Description),
	})
}

func (d DomainObject) Encode() []byte {
	e := NewEncoder()
	e.WriteString(1, d.Description)
	return e.Bytes()
}

// DecodeDomain decodes a DomainObject from its canonical encoding.
func DecodeDomain(payload []byte) (Object, error) {
	dec := NewDecoder(payload)
	var o DomainObject
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return nil, errParse("decode domain object", err)
		}
		if !ok {
			break
		}
		if f.Number == 1 {
			o.Description = string(f.Bytes)
		}
	}
	return o, nil
}
