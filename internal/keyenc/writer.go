// Package keyenc implements the order-preserving, self-delimiting
// byte encodings that back every mutation key keysort emits. Each
// Write* method appends the ascending-form bytes for one value, then
// complements them in place if the caller asked for Descending — so a
// concatenation of Write* calls compares, byte for byte, the same way
// the tuple of inputs compares under the declared per-column
// direction. No encoded value is ever a prefix of another of the same
// type: callers can concatenate encodings for multiple columns and
// still get tuple comparison semantics without length fields.
package keyenc

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/turtacn/keysort/common/types/enum"
)

// canonicalNaNBits is the single NaN bit pattern this encoder treats
// as canonical. Per spec, NaN sorts greater than +Inf; any NaN input
// collapses to this payload rather than preserving its original bits,
// since float NaN payloads carry no meaningful order of their own.
const canonicalNaNBits = 0x7ff8000000000001

// Writer accumulates an order-preserving, self-delimiting byte
// sequence. It is not safe for concurrent use; callers should create
// one Writer per encode call.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated output. The returned slice aliases the
// Writer's internal buffer and must not be retained across further
// writes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteFixedBytes appends b unmodified, with no direction handling.
// Used for structural prefixes (table ordering index, unknown-table
// marker) that have no declared sort direction of their own.
func (w *Writer) WriteFixedBytes(b []byte) {
	w.buf.Write(b)
}

// WriteRaw appends the single byte b, complementing it first if dir is
// Descending.
func (w *Writer) WriteRaw(b byte, dir enum.Direction) {
	if dir == enum.Descending {
		b = ^b
	}
	w.buf.WriteByte(b)
}

// complementLast flips every bit of the last n bytes written. Used
// after appending a primitive's ascending-form bytes when the caller
// asked for Descending.
func (w *Writer) complementLast(n int) {
	b := w.buf.Bytes()
	start := len(b) - n
	for i := start; i < len(b); i++ {
		b[i] = ^b[i]
	}
}

// WriteBool appends 0x00 (false) or 0x01 (true).
func (w *Writer) WriteBool(v bool, dir enum.Direction) {
	if v {
		w.buf.WriteByte(0x01)
	} else {
		w.buf.WriteByte(0x00)
	}
	if dir == enum.Descending {
		w.complementLast(1)
	}
}

// WriteInt64 appends big-endian two's-complement bytes with the sign
// bit flipped, so that negative values sort before positive ones
// under unsigned byte comparison.
func (w *Writer) WriteInt64(v int64, dir enum.Direction) {
	u := uint64(v) ^ (1 << 63)
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], u)
	w.buf.Write(tmp[:])
	if dir == enum.Descending {
		w.complementLast(8)
	}
}

// WriteDate appends a signed 32-bit day-offset using the same
// sign-flip scheme as WriteInt64, at 4 bytes instead of 8.
func (w *Writer) WriteDate(days int32, dir enum.Direction) {
	u := uint32(days) ^ (1 << 31)
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], u)
	w.buf.Write(tmp[:])
	if dir == enum.Descending {
		w.complementLast(4)
	}
}

// WriteTimestamp appends (seconds, nanos) as two WriteInt64-style
// integers in sequence, seconds first. Both halves are independently
// sign-flipped and, if Descending, independently complemented as part
// of a single contiguous span so the pair still reads back as one
// order-preserving unit.
func (w *Writer) WriteTimestamp(seconds, nanos int64, dir enum.Direction) {
	w.WriteInt64(seconds, dir)
	w.WriteInt64(nanos, dir)
}

// WriteFloat64 appends IEEE-754 big-endian bits transformed so that
// unsigned byte comparison matches float64 comparison: if the sign bit
// is set, every byte is complemented; otherwise only the sign bit is
// flipped. NaN inputs collapse to a single canonical bit pattern that
// sorts above +Inf; -0.0 is normalized to +0.0 so the two compare
// equal.
func (w *Writer) WriteFloat64(v float64, dir enum.Direction) {
	bits := floatOrderBits(v)
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], bits)
	w.buf.Write(tmp[:])
	if dir == enum.Descending {
		w.complementLast(8)
	}
}

func floatOrderBits(v float64) uint64 {
	if math.IsNaN(v) {
		v = math.Float64frombits(canonicalNaNBits)
	}
	if v == 0 {
		v = 0 // any zero, including -0.0, becomes the +0.0 literal
	}
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

// WriteString appends the UTF-8 bytes of s with every 0x00 escaped to
// 0x00 0xFF, terminated by 0x00 0x01. The scheme is prefix-free: the
// terminator byte pair never occurs inside an escaped payload, so no
// encoded string can be a prefix of another.
func (w *Writer) WriteString(s string, dir enum.Direction) {
	w.writeEscaped([]byte(s), dir)
}

// WriteBytes applies the same escape/terminator scheme as WriteString
// to an arbitrary byte string.
func (w *Writer) WriteBytes(b []byte, dir enum.Direction) {
	w.writeEscaped(b, dir)
}

func (w *Writer) writeEscaped(b []byte, dir enum.Direction) {
	start := w.buf.Len()
	for _, c := range b {
		if c == 0x00 {
			w.buf.WriteByte(0x00)
			w.buf.WriteByte(0xFF)
		} else {
			w.buf.WriteByte(c)
		}
	}
	w.buf.WriteByte(0x00)
	w.buf.WriteByte(0x01)
	if dir == enum.Descending {
		w.complementLast(w.buf.Len() - start)
	}
}

// WriteJSON appends raw JSON text via WriteString. Equal texts sort
// equal; semantically equal-but-differently-formatted JSON does not,
// since no canonicalization is performed.
func (w *Writer) WriteJSON(text string, dir enum.Direction) {
	w.WriteString(text, dir)
}
