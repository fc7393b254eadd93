package protocol

import (
	"bytes"
	"encoding/binary"
)

// Encoder encodes protocol payloads into a byte buffer.
//
// Variable-length integers use the unsigned LEB128 encoding; signed values
// are zigzag-encoded first. Strings are a uvarint length prefix followed by
// the raw UTF-8 bytes.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder creates a new encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the current length of the encoded data.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Reset clears the encoder for reuse.
func (e *Encoder) Reset() {
	e.buf.Reset()
}

// WriteByte writes a single byte.
func (e *Encoder) WriteByte(b byte) error {
	return e.buf.WriteByte(b)
}

// WriteBytes writes raw bytes without a length prefix.
func (e *Encoder) WriteBytes(data []byte) {
	e.buf.Write(data)
}

// WriteUvarint writes an unsigned variable-length integer.
func (e *Encoder) WriteUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	e.buf.Write(tmp[:n])
}

// WriteSvarint writes a signed variable-length integer using zigzag encoding.
func (e *Encoder) WriteSvarint(v int64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], v)
	e.buf.Write(tmp[:n])
}

// WriteString writes a length-prefixed string.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	e.buf.WriteString(s)
}

// WriteBool writes a boolean as a single byte.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// WriteUint16 writes a big-endian 16-bit unsigned integer.
func (e *Encoder) WriteUint16(v uint16) {
	e.buf.WriteByte(byte(v >> 8))
	e.buf.WriteByte(byte(v))
}
