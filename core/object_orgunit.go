package core

// OrgUnitObject models an organizational-unit entry: a grouping node with
// an optional human-readable description (§4.4).
type OrgUnitObject struct {
	Description string
}

func (o OrgUnitObject) TypeID() TypeID { return TypeOrgUnit }

func (o OrgUnitObject) ObjectHash() Digest {
	return HashStruct(map[string]Digest{
		"description": HashString(o.Description),
	})
}

func (o OrgUnitObject) Encode() []byte {
	e := NewEncoder()
	e.WriteString(1, o.Description)
	return e.Bytes()
}

// DecodeOrgUnit decodes an OrgUnitObject from its canonical encoding.
func DecodeOrgUnit(payload []byte) (Object, error) {
	dec := NewDecoder(payload)
	var o OrgUnitObject
	for {
		f, ok, err := dec.Next()
		if err != nil {
			return nil, errParse("decode org unit object", err)
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
