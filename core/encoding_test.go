package core

import "testing"

func TestEncoderDecoderRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteVarint(1, 42)
	e.WriteString(2, "hello")
	e.WriteBytes(3, []byte{1, 2, 3})

	d := NewDecoder(e.Bytes())

	f1, ok, err := d.Next()
	if err != nil || !ok {
		t.Fatalf("field 1: ok=%v err=%v", ok, err)
	}
	if f1.Number != 1 || f1.Wire != wireVarint || f1.Varint != 42 {
		t.Fatalf("field 1 mismatch: %+v", f1)
	}

	f2, ok, err := d.Next()
	if err != nil || !ok {
		t.Fatalf("field 2: ok=%v err=%v", ok, err)
	}
	if f2.Number != 2 || string(f2.Bytes) != "hello" {
		t.Fatalf("field 2 mismatch: %+v", f2)
	}

	f3, ok, err := d.Next()
	if err != nil || !ok {
		t.Fatalf("field 3: ok=%v err=%v", ok, err)
	}
	if f3.Number != 3 || len(f3.Bytes) != 3 {
		t.Fatalf("field 3 mismatch: %+v", f3)
	}

	if _, ok, err := d.Next(); ok || err != nil {
		t.Fatalf("expected end of input, got ok=%v err=%v", ok, err)
	}
}

func TestDecoderRejectsTruncatedInput(t *testing.T) {
	e := NewEncoder()
	e.WriteString(1, "hello world")
	buf := e.Bytes()[:len(e.Bytes())-3]
	d := NewDecoder(buf)
	if _, _, err := d.Next(); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestEncoderDeterministicForEqualInputs(t *testing.T) {
	build := func() []byte {
		e := NewEncoder()
		e.WriteVarint(1, 7)
		e.WriteString(2, "x")
		return e.Bytes()
	}
	a, b := build(), build()
	if string(a) != string(b) {
		t.Fatal("expected identical encodings for identical inputs")
	}
}
