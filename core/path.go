package core

import "strings"

// Separator is the path component delimiter. The root path is the single
// character Separator.
const Separator = "/"

// Path is an absolute, slash-separated path into the directory tree. It is a
// plain value type: unlike the original implementation this does not need an
// unsafe borrowed view, since Go strings are already immutable and cheap to
// share.
type Path struct {
	raw string
}

// Root returns the root path "/".
func Root() Path { return Path{raw: Separator} }

// ParsePath validates s and returns the corresponding Path. s must begin with
// "/" and must not contain empty components other than the root itself.
func ParsePath(s string) (Path, error) {
	if !strings.HasPrefix(s, Separator) {
		return Path{}, errPathInvalid("path must be absolute: " + s)
	}
	if s == Separator {
		return Path{raw: Separator}, nil
	}
	for _, c := range strings.Split(s[1:], Separator) {
		if c == "" {
			return Path{}, errPathInvalid("path contains an empty component: " + s)
		}
	}
	return Path{raw: s}, nil
}

// MustParsePath parses s and panics on failure. Intended for constants in
// tests and CLI wiring, never for data from untrusted input.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical string form of p.
func (p Path) String() string {
	if p.raw == "" {
		return Separator
	}
	return p.raw
}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool {
	return p.raw == "" || p.raw == Separator
}

// Push returns a new Path with component appended. component must not itself
// contain Separator.
func (p Path) Push(component string) (Path, error) {
	if component == "" || strings.Contains(component, Separator) {
		return Path{}, errPathInvalid("invalid path component: " + component)
	}
	if p.IsRoot() {
		return Path{raw: Separator + component}, nil
	}
	return Path{raw: p.raw + Separator + component}, nil
}

// Parent returns the parent of p and true, or the zero Path and false if p is
// the root.
func (p Path) Parent() (Path, bool) {
	if p.IsRoot() {
		return Path{}, false
	}
	idx := strings.LastIndex(p.raw, Separator)
	if idx <= 0 {
		return Path{raw: Separator}, true
	}
	return Path{raw: p.raw[:idx]}, true
}

// EntryName returns the final component of p, or "" for the root.
func (p Path) EntryName() string {
	if p.IsRoot() {
		return ""
	}
	idx := strings.LastIndex(p.raw, Separator)
	return p.raw[idx+1:]
}

// Components returns the ordered list of path components. The root path has
// no components.
func (p Path) Components() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(p.raw[1:], Separator)
}

// Equal reports whether p and other denote the same path.
func (p Path) Equal(other Path) bool {
	return p.String() == other.String()
}
