package core

import "fmt"

// Kind classifies the failure mode of an Error so callers can branch on it
// without string matching.
type Kind uint8

const (
	// KindParse indicates a byte slice did not decode to the expected entity.
	KindParse Kind = iota
	// KindPathInvalid indicates a path failed to parse or resolve.
	KindPathInvalid
	// KindDirectoryNotFound indicates a path lookup missed a component.
	KindDirectoryNotFound
	// KindEntryAlreadyExists indicates a name collision among siblings.
	KindEntryAlreadyExists
	// KindCryptoFailure indicates a signature, seal, or unseal failure.
	KindCryptoFailure
	// KindStorageFailure indicates an adapter-level I/O or transaction failure.
	KindStorageFailure
	// KindChainTipMismatch indicates a block's parent_id does not match the
	// chain's current tip.
	KindChainTipMismatch
	// KindUnauthorized indicates a witness signature did not verify under any
	// currently authorized signing credential.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindPathInvalid:
		return "path_invalid"
	case KindDirectoryNotFound:
		return "directory_not_found"
	case KindEntryAlreadyExists:
		return "entry_already_exists"
	case KindCryptoFailure:
		return "crypto_failure"
	case KindStorageFailure:
		return "storage_failure"
	case KindChainTipMismatch:
		return "chain_tip_mismatch"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is the uniform error type returned across the engine. No error is
// swallowed internally; every failure propagates as one of these.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr builds an Error, wrapping cause if non-nil.
func newErr(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func errParse(message string, cause error) *Error {
	return newErr(KindParse, message, cause)
}

func errPathInvalid(message string) *Error {
	return newErr(KindPathInvalid, message, nil)
}

func errDirectoryNotFound(message string) *Error {
	return newErr(KindDirectoryNotFound, message, nil)
}

func errEntryAlreadyExists(message string) *Error {
	return newErr(KindEntryAlreadyExists, message, nil)
}

func errCryptoFailure(message string, cause error) *Error {
	return newErr(KindCryptoFailure, message, cause)
}

func errStorageFailure(message string, cause error) *Error {
	return newErr(KindStorageFailure, message, cause)
}

func errChainTipMismatch(message string) *Error {
	return newErr(KindChainTipMismatch, message, nil)
}

func errUnauthorized(message string) *Error {
	return newErr(KindUnauthorized, message, nil)
}

// NewError constructs an *Error of the given kind for packages outside core
// that need to surface one of its error kinds — chiefly the chain authority
// layer, which enforces ChainTipMismatch/Unauthorized above the core's
// propagation boundary.
func NewError(kind Kind, message string, cause error) *Error {
	return newErr(kind, message, cause)
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return 0, false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
