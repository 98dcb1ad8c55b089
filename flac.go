// Package flac decodes the header of FLAC (Free Lossless Audio Codec) streams.
//
// The basic structure of a FLAC bitstream is:
//   - The four byte string signature "fLaC".
//   - The StreamInfo metadata block.
//   - Zero or more other metadata blocks.
//   - One or more audio frames.
//
// This package decodes the signature and the StreamInfo metadata block, and
// returns a bits.Cursor positioned right after it, from which the remaining
// metadata blocks and audio frames may be parsed.
//
// ref: https://www.xiph.org/flac/format.html
package flac

import (
	"bytes"
	"os"

	"github.com/mewkiz/flachdr/bits"
	"github.com/mewkiz/flachdr/meta"
	"github.com/pkg/errors"
)

// A Stream contains the decoded header of a FLAC stream.
type Stream struct {
	// Header of the StreamInfo metadata block. Header.IsLast reports whether
	// any metadata blocks follow.
	Header meta.Header
	// Stream properties.
	Info meta.StreamInfo
}

// signature is present at the beginning of each FLAC stream.
var signature = []byte("fLaC")

// Parse decodes the FLAC signature, the first metadata block header and the
// StreamInfo metadata block at c. It returns the decoded stream and a cursor
// positioned right after the StreamInfo block.
//
// Parse returns a *bits.IncompleteError if the input ends early; the same call
// succeeds once more data is appended to the buffer. Malformed input yields an
// error for which IsInvalid reports true. On failure c is returned unchanged.
func Parse(c bits.Cursor) (bits.Cursor, *Stream, error) {
	next, err := verifySignature(c)
	if err != nil {
		return c, nil, err
	}
	next, hdr, err := meta.ParseHeader(next)
	if err != nil {
		return c, nil, err
	}
	if hdr.Type != meta.TypeStreamInfo {
		return c, nil, errors.WithMessagef(ErrInvalidFirstBlock, "flac.Parse: got %v block", hdr.Type)
	}
	if hdr.Length != meta.StreamInfoLength {
		return c, nil, errors.WithMessagef(ErrInvalidStreamInfoLength, "flac.Parse: expected %d bytes, got %d", meta.StreamInfoLength, hdr.Length)
	}
	next, si, err := meta.ParseStreamInfo(next)
	if err != nil {
		return c, nil, err
	}
	return next, &Stream{Header: hdr, Info: si}, nil
}

// ParseBytes decodes the header of the FLAC stream stored in buf. Use Parse to
// learn where the header ends.
func ParseBytes(buf []byte) (*Stream, error) {
	_, stream, err := Parse(bits.NewCursor(buf, 0))
	return stream, err
}

// ParseFile decodes the header of the provided FLAC file.
func ParseFile(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return NewDecoder(f).Decode()
}

// verifySignature verifies the "fLaC" signature (size: 4 bytes) at c.
func verifySignature(c bits.Cursor) (bits.Cursor, error) {
	next, sig, err := bits.Bytes(c, len(signature))
	if err != nil {
		return c, err
	}
	if !bytes.Equal(sig, signature) {
		return c, errors.WithMessagef(ErrInvalidSignature, "flac.verifySignature: expected %q, got %q", signature, sig)
	}
	return next, nil
}
