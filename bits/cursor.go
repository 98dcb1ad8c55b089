// Package bits provides bit access operations over in-memory byte buffers.
//
// Bits are consumed most significant bit first, and fields spanning several
// bytes are concatenated in stream order:
//
//	byte   0               1               2 ...
//	      +---------------+---------------+-
//	      |7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|7 ...
//	      +---------------+---------------+-
//
// A Cursor is an immutable position within a buffer. Every read returns a new
// Cursor and leaves the original untouched, so a caller may retry a read from
// an earlier Cursor at any time.
package bits

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrCount is returned when a bit count is outside of [1, 64].
var ErrCount = errors.New("bits: bit count out of range")

// IncompleteError is returned when fewer bits remain in the buffer than a read
// requires. It is not a terminal failure; the read succeeds once the caller
// supplies more data at the same position.
type IncompleteError struct {
	// Number of additional bits required.
	Needed int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("bits: incomplete input; %d more bits needed", e.Needed)
}

// NeededBytes returns the number of additional bytes required to satisfy the
// read.
func (e *IncompleteError) NeededBytes() int {
	return (e.Needed + 7) / 8
}

// A Cursor is a bit position within a byte buffer.
type Cursor struct {
	// Buffer starting at the first byte which contains unread bits.
	buf []byte
	// Offset of the next unread bit within buf[0], between 0 and 7.
	off uint8
}

// NewCursor returns a Cursor positioned off bits into buf. Offsets of 8 or
// more skip whole bytes.
func NewCursor(buf []byte, off uint) Cursor {
	skip := int(off / 8)
	if skip > len(buf) {
		return Cursor{buf: buf[len(buf):]}
	}
	buf = buf[skip:]
	if len(buf) == 0 {
		return Cursor{buf: buf}
	}
	return Cursor{buf: buf, off: uint8(off % 8)}
}

// Bytes returns the buffer starting at the first byte which still contains
// unread bits. The caller must not modify the returned slice.
func (c Cursor) Bytes() []byte {
	return c.buf
}

// Offset returns the offset of the next unread bit within the first byte of
// Bytes.
func (c Cursor) Offset() uint {
	return uint(c.off)
}

// Len returns the number of unread bits.
func (c Cursor) Len() int {
	return len(c.buf)*8 - int(c.off)
}

// Require returns an *IncompleteError if fewer than n bits remain.
func (c Cursor) Require(n int) error {
	if rem := c.Len(); n > rem {
		return &IncompleteError{Needed: n - rem}
	}
	return nil
}

// Read reads and returns the next n bits as an unsigned integer, together with
// a Cursor positioned after them. On failure the original Cursor is returned.
func (c Cursor) Read(n uint) (Cursor, uint64, error) {
	if n < 1 || n > 64 {
		return c, 0, errors.WithMessagef(ErrCount, "bits.Cursor.Read: n=%d", n)
	}
	if err := c.Require(int(n)); err != nil {
		return c, 0, err
	}

	var x uint64
	buf, off := c.buf, uint(c.off)
	for n > 0 {
		// Bits left in the current byte.
		left := 8 - off
		m := left
		if n < m {
			m = n
		}
		b := uint64(buf[0]>>(left-m)) & (1<<m - 1)
		x = x<<m | b
		n -= m
		off += m
		if off == 8 {
			buf = buf[1:]
			off = 0
		}
	}
	return Cursor{buf: buf, off: uint8(off)}, x, nil
}
