package core

import "testing"

func TestPathRootInit(t *testing.T) {
	r := Root()
	if r.String() != "/" {
		t.Fatalf("root string = %q, want /", r.String())
	}
	if !r.IsRoot() {
		t.Fatal("root.IsRoot() = false")
	}
	if r.EntryName() != "" {
		t.Fatalf("root.EntryName() = %q, want empty", r.EntryName())
	}
	if got := r.Components(); len(got) != 0 {
		t.Fatalf("root.Components() = %v, want empty", got)
	}
}

func TestPathPush(t *testing.T) {
	p, err := Root().Push("global")
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if p.String() != "/global" {
		t.Fatalf("got %q, want /global", p.String())
	}
	p2, err := p.Push("users")
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if p2.String() != "/global/users" {
		t.Fatalf("got %q, want /global/users", p2.String())
	}
}

func TestPathPushRejectsSeparator(t *testing.T) {
	if _, err := Root().Push("a/b"); err == nil {
		t.Fatal("expected error for component containing separator")
	}
	if _, err := Root().Push(""); err == nil {
		t.Fatal("expected error for empty component")
	}
}

func TestParsePathRejectsRelative(t *testing.T) {
	if _, err := ParsePath("global/users"); err == nil {
		t.Fatal("expected error for relative path")
	}
	if k, ok := KindOf(mustErr(ParsePath("global/users"))); !ok || k != KindPathInvalid {
		t.Fatalf("expected KindPathInvalid, got %v %v", k, ok)
	}
}

func TestParsePathRejectsEmptyComponents(t *testing.T) {
	cases := []string{"//global", "/global//users", "/global/"}
	for _, c := range cases {
		if _, err := ParsePath(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestPathParent(t *testing.T) {
	if _, ok := Root().Parent(); ok {
		t.Fatal("root should have no parent")
	}
	p := MustParsePath("/global/users/manager")
	parent, ok := p.Parent()
	if !ok {
		t.Fatal("expected parent")
	}
	if parent.String() != "/global/users" {
		t.Fatalf("got %q, want /global/users", parent.String())
	}
	top := MustParsePath("/global")
	parent, ok = top.Parent()
	if !ok || !parent.IsRoot() {
		t.Fatalf("expected root parent, got %q ok=%v", parent.String(), ok)
	}
}

func TestPathEntryNameAndComponents(t *testing.T) {
	p := MustParsePath("/global/users/manager/keys/signing")
	if p.EntryName() != "signing" {
		t.Fatalf("got %q, want signing", p.EntryName())
	}
	want := []string{"global", "users", "manager", "keys", "signing"}
	got := p.Components()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func mustErr(_ Path, err error) error { return err }
