package flac

import (
	"io"
	"log"

	"github.com/mewkiz/flachdr/bits"
	"github.com/pkg/errors"
)

// A Decoder decodes the header of a FLAC stream read from an io.Reader.
//
// The Decoder reads no more than the header itself; once Decode returns
// successfully, the underlying reader is positioned at the metadata block
// following StreamInfo.
type Decoder struct {
	// Logger, if non-nil, records each read from the underlying reader.
	Logger *log.Logger
	// Underlying reader.
	r io.Reader
	// Bytes read so far.
	buf []byte
}

// NewDecoder returns a new Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode decodes the FLAC stream header. Each time the buffered input falls
// short, Decode reads the missing number of bytes from the underlying reader
// and parses the buffer again from its start.
func (d *Decoder) Decode() (*Stream, error) {
	for {
		_, stream, err := Parse(bits.NewCursor(d.buf, 0))
		if err == nil {
			return stream, nil
		}
		var ierr *bits.IncompleteError
		if !errors.As(err, &ierr) {
			return nil, err
		}

		n := ierr.NeededBytes()
		if d.Logger != nil {
			d.Logger.Printf("flac.Decoder.Decode: reading %d bytes (%d buffered)", n, len(d.buf))
		}
		chunk := make([]byte, n)
		m, rerr := io.ReadFull(d.r, chunk)
		d.buf = append(d.buf, chunk[:m]...)
		if rerr == nil {
			continue
		}
		if rerr != io.EOF && rerr != io.ErrUnexpectedEOF {
			return nil, errors.WithStack(rerr)
		}
		// Parse what was read to tell truncated input apart from malformed
		// input.
		if _, stream, err = Parse(bits.NewCursor(d.buf, 0)); err != nil {
			return nil, errors.WithMessage(err, "flac.Decoder.Decode: unexpected end of input")
		}
		return stream, nil
	}
}
