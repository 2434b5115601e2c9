package core

// TypeID discriminates the Object variant stored at a directory entry
// (§4.4). Values are frozen once assigned; new variants append, never
// renumber.
type TypeID uint8

const (
	TypeRoot TypeID = iota
	TypeDomain
	TypeOrgUnit
	TypeSystem
	TypeCredential
)

func (t TypeID) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeDomain:
		return "domain"
	case TypeOrgUnit:
		return "org_unit"
	case TypeSystem:
		return "system"
	case TypeCredential:
		return "credential"
	default:
		return "unknown"
	}
}

// Object is the typed payload stored at a directory entry. Every variant
// supports canonical encoding (§4.3) and object hashing (§4.2).
type Object interface {
	TypeID() TypeID
	Encode() []byte
	ObjectHash() Digest
}

// DecodeObject decodes payload according to typeID, dispatching to the
// matching variant's Decode function.
func DecodeObject(typeID TypeID, payload []byte) (Object, error) {
	switch typeID {
	case TypeRoot:
		return DecodeRoot(payload)
	case TypeDomain:
		return DecodeDomain(payload)
	case TypeOrgUnit:
		return DecodeOrgUnit(payload)
	case TypeSystem:
		return DecodeSystem(payload)
	case TypeCredential:
		return DecodeCredential(payload)
	default:
		return nil, errParse("unknown type id", nil)
	}
}
