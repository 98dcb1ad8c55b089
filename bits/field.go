package bits

import (
	"github.com/pkg/errors"
)

// Uint reads an n-bit unsigned integer. It is shorthand for c.Read(n).
func Uint(c Cursor, n uint) (Cursor, uint64, error) {
	return c.Read(n)
}

// Flag reads a single bit; any nonzero value is true.
func Flag(c Cursor) (Cursor, bool, error) {
	next, x, err := c.Read(1)
	if err != nil {
		return c, false, err
	}
	return next, x != 0, nil
}

// Fields reads len(widths) consecutive unsigned integers of the given bit
// widths. Either all fields are read or none.
func Fields(c Cursor, widths ...uint) (Cursor, []uint64, error) {
	if err := c.Require(sum(widths)); err != nil {
		return c, nil, err
	}
	fields := make([]uint64, len(widths))
	next := c
	for i, n := range widths {
		var err error
		next, fields[i], err = next.Read(n)
		if err != nil {
			return c, nil, err
		}
	}
	return next, fields, nil
}

// compose reads consecutive parts of the given bit widths and combines them
// into a single big-endian value; each part is weighted by the combined width
// of the parts following it.
func compose(c Cursor, widths ...uint) (Cursor, uint64, error) {
	next, parts, err := Fields(c, widths...)
	if err != nil {
		return c, 0, err
	}
	var x uint64
	for i, part := range parts {
		x = x<<widths[i] | part
	}
	return next, x, nil
}

// Uint8 reads an 8-bit unsigned integer.
func Uint8(c Cursor) (Cursor, uint8, error) {
	next, x, err := c.Read(8)
	return next, uint8(x), err
}

// Uint16 reads a 16-bit big-endian unsigned integer.
func Uint16(c Cursor) (Cursor, uint16, error) {
	next, x, err := compose(c, 8, 8)
	return next, uint16(x), err
}

// Uint20 reads a 20-bit big-endian unsigned integer.
func Uint20(c Cursor) (Cursor, uint32, error) {
	next, x, err := compose(c, 4, 8, 8)
	return next, uint32(x), err
}

// Uint24 reads a 24-bit big-endian unsigned integer.
func Uint24(c Cursor) (Cursor, uint32, error) {
	next, x, err := compose(c, 8, 8, 8)
	return next, uint32(x), err
}

// Uint36 reads a 36-bit big-endian unsigned integer.
func Uint36(c Cursor) (Cursor, uint64, error) {
	return compose(c, 4, 8, 8, 8, 8)
}

// Bytes reads n bytes into a newly allocated slice. The bytes need not be byte
// aligned in the buffer.
func Bytes(c Cursor, n int) (Cursor, []byte, error) {
	if n < 0 {
		return c, nil, errors.Errorf("bits.Bytes: negative byte count %d", n)
	}
	if err := c.Require(8 * n); err != nil {
		return c, nil, err
	}
	buf := make([]byte, n)
	if c.off == 0 {
		copy(buf, c.buf[:n])
		return Cursor{buf: c.buf[n:]}, buf, nil
	}
	next := c
	for i := range buf {
		var err error
		next, buf[i], err = Uint8(next)
		if err != nil {
			return c, nil, err
		}
	}
	return next, buf, nil
}

// sum returns the total bit width of widths.
func sum(widths []uint) int {
	total := 0
	for _, n := range widths {
		total += int(n)
	}
	return total
}
