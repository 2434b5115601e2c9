package core

import "testing"

// FuzzParsePathRoundTrip checks that any string ParsePath accepts survives a
// parse/String/parse round trip unchanged, mirroring the fuzz-testing idiom
// used elsewhere in this codebase for pure value-type round trips.
func FuzzParsePathRoundTrip(f *testing.F) {
	f.Add("/")
	f.Add("/global")
	f.Add("/global/users/manager/keys/signing")
	f.Fuzz(func(t *testing.T, s string) {
		p, err := ParsePath(s)
		if err != nil {
			return
		}
		p2, err := ParsePath(p.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", p.String(), err)
		}
		if !p.Equal(p2) {
			t.Fatalf("round trip mismatch: %q != %q", p.String(), p2.String())
		}
	})
}
