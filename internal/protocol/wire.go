package protocol

import (
	"bytes"
	"encoding/binary"
)

// Writer appends fixed-width big-endian fields and fixed-length byte blocks
// to a payload under construction. It centralizes the byte-order and string
// truncation rules so that message encoders never do offset arithmetic.
type Writer struct {
	buf bytes.Buffer
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteInt32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

func (w *Writer) WriteBytes(p []byte) {
	w.buf.Write(p)
}

// WriteFixedString writes s into a block of exactly size bytes, null-padded.
// The string is truncated to size-1 bytes so that the block always contains
// a terminator.
func (w *Writer) WriteFixedString(s string, size int) {
	block := make([]byte, size)
	copy(block, s)
	block[size-1] = 0
	w.buf.Write(block)
}

// Len returns the number of payload bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Reader consumes fixed-width big-endian fields from a payload. The first
// short read marks the reader failed and every subsequent read returns zero
// values, so decoders can check Err once at the end.
type Reader struct {
	data []byte
	pos  int
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) {
		r.err = ErrMalformedPayload
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) ReadUint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) ReadUint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *Reader) ReadInt32() int32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (r *Reader) ReadBytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadFixedString reads a size-byte block and returns its contents up to the
// first null byte.
func (r *Reader) ReadFixedString(size int) string {
	b := r.take(size)
	if b == nil {
		return ""
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Remaining returns the number of unread payload bytes.
func (r *Reader) Remaining() int {
	if r.err != nil {
		return 0
	}
	return len(r.data) - r.pos
}

// Err returns the first error encountered while reading.
func (r *Reader) Err() error {
	return r.err
}
