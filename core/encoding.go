package core

import "fmt"

// wireType distinguishes how a field's payload is laid out, mirroring the
// familiar protobuf tag/wire-type/length-delimited scheme (§4.3). Generating
// real protobuf stubs would require a protoc invocation outside this
// module's build, so the encoder/decoder below is hand-written directly
// against the frozen field-number schema instead.
type wireType uint8

const (
	wireVarint wireType = 0
	wireBytes  wireType = 2
)

// Encoder builds a canonical field-numbered, length-delimited byte encoding.
// Fields must be written in ascending field-number order to produce the
// canonical form; callers (Body/Block/Op/Object encoders) are responsible
// for that ordering.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the accumulated encoding.
func (e *Encoder) Bytes() []byte { return e.buf }

func putVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func (e *Encoder) writeTag(field int, wt wireType) {
	e.buf = putVarint(e.buf, uint64(field)<<3|uint64(wt))
}

// WriteVarint appends a varint-encoded field.
func (e *Encoder) WriteVarint(field int, v uint64) {
	e.writeTag(field, wireVarint)
	e.buf = putVarint(e.buf, v)
}

// WriteBytes appends a length-delimited field.
func (e *Encoder) WriteBytes(field int, b []byte) {
	e.writeTag(field, wireBytes)
	e.buf = putVarint(e.buf, uint64(len(b)))
	e.buf = append(e.buf, b...)
}

// WriteString appends a length-delimited string field.
func (e *Encoder) WriteString(field int, s string) {
	e.WriteBytes(field, []byte(s))
}

// WriteMessage appends a pre-encoded nested message as a length-delimited
// field.
func (e *Encoder) WriteMessage(field int, msg []byte) {
	e.WriteBytes(field, msg)
}

// Field is a single decoded (field number, wire type, payload) triple.
type Field struct {
	Number int
	Wire   wireType
	Varint uint64
	Bytes  []byte
}

// Decoder walks a canonical encoding field by field, in the order they were
// written.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder over b.
func NewDecoder(b []byte) *Decoder { return &Decoder{buf: b} }

// Done reports whether every byte of the input has been consumed.
func (d *Decoder) Done() bool { return d.pos >= len(d.buf) }

func getVarint(buf []byte, pos int) (uint64, int, error) {
	var v uint64
	var shift uint
	for {
		if pos >= len(buf) {
			return 0, 0, fmt.Errorf("truncated varint")
		}
		b := buf[pos]
		pos++
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			break
		}
		shift += 7
		if shift > 63 {
			return 0, 0, fmt.Errorf("varint overflow")
		}
	}
	return v, pos, nil
}

// Next decodes the next field, or returns ok=false once the input is
// exhausted.
func (d *Decoder) Next() (Field, bool, error) {
	if d.Done() {
		return Field{}, false, nil
	}
	tag, pos, err := getVarint(d.buf, d.pos)
	if err != nil {
		return Field{}, false, err
	}
	d.pos = pos
	field := int(tag >> 3)
	wt := wireType(tag & 0x7)
	switch wt {
	case wireVarint:
		v, pos, err := getVarint(d.buf, d.pos)
		if err != nil {
			return Field{}, false, err
		}
		d.pos = pos
		return Field{Number: field, Wire: wt, Varint: v}, true, nil
	case wireBytes:
		n, pos, err := getVarint(d.buf, d.pos)
		if err != nil {
			return Field{}, false, err
		}
		if pos+int(n) > len(d.buf) || n > 1<<32 {
			return Field{}, false, fmt.Errorf("truncated length-delimited field")
		}
		b := d.buf[pos : pos+int(n)]
		d.pos = pos + int(n)
		return Field{Number: field, Wire: wt, Bytes: b}, true, nil
	default:
		return Field{}, false, fmt.Errorf("unsupported wire type %d", wt)
	}
}
