package flac

import (
	"github.com/mewkiz/flachdr/bits"
	"github.com/pkg/errors"
)

// Errors returned for malformed FLAC streams. Unlike a *bits.IncompleteError,
// supplying more input does not resolve them.
var (
	// ErrInvalidSignature is returned when the stream does not start with
	// "fLaC".
	ErrInvalidSignature = errors.New("invalid FLAC signature")
	// ErrInvalidFirstBlock is returned when the first metadata block is not a
	// StreamInfo block.
	ErrInvalidFirstBlock = errors.New("first metadata block is not StreamInfo")
	// ErrInvalidStreamInfoLength is returned when the StreamInfo block header
	// specifies a length other than 34 bytes.
	ErrInvalidStreamInfoLength = errors.New("invalid StreamInfo block length")
)

// IsInvalid reports whether err is caused by malformed stream content.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrInvalidFirstBlock) ||
		errors.Is(err, ErrInvalidStreamInfoLength)
}

// IsIncomplete reports whether err is caused by truncated input, and if so the
// number of additional bits required.
func IsIncomplete(err error) (needed int, ok bool) {
	var ierr *bits.IncompleteError
	if errors.As(err, &ierr) {
		return ierr.Needed, true
	}
	return 0, false
}
