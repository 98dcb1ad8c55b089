// Package meta contains functions for parsing FLAC metadata block headers and
// the StreamInfo metadata block.
//
// A brief introduction of the FLAC metadata format follows. FLAC metadata is
// stored in blocks; each block contains a header followed by a body. The block
// header describes the type of the block body, its length in bytes, and
// specifies if the block was the last metadata block in a FLAC stream.
//
// ref: https://www.xiph.org/flac/format.html#format_overview
package meta

import (
	"github.com/mewkiz/flachdr/bits"
)

// BlockType is used to identify the metadata block type.
type BlockType uint8

// Metadata block types.
const (
	TypeStreamInfo BlockType = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture
	// TypeReserved covers the block type tags 7-126.
	TypeReserved
	// TypeInvalid is block type tag 127, invalid to avoid confusion with a
	// frame sync code.
	TypeInvalid
)

// blockTypeName is a map from BlockType to name.
var blockTypeName = map[BlockType]string{
	TypeStreamInfo:    "stream info",
	TypePadding:       "padding",
	TypeApplication:   "application",
	TypeSeekTable:     "seek table",
	TypeVorbisComment: "vorbis comment",
	TypeCueSheet:      "cue sheet",
	TypePicture:       "picture",
	TypeReserved:      "reserved",
	TypeInvalid:       "invalid",
}

func (t BlockType) String() string {
	if name, ok := blockTypeName[t]; ok {
		return name
	}
	return "<unknown block type>"
}

// TypeFromTag maps the 7-bit block type tag of a metadata block header to its
// BlockType.
//
//	0:     Streaminfo
//	1:     Padding
//	2:     Application
//	3:     Seektable
//	4:     Vorbis_comment
//	5:     Cuesheet
//	6:     Picture
//	7-126: reserved
//	127:   invalid
func TypeFromTag(tag uint8) BlockType {
	switch {
	case tag <= 6:
		return BlockType(tag)
	case tag == 127:
		return TypeInvalid
	default:
		return TypeReserved
	}
}

// A Header contains type and length information about a metadata block.
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_header
type Header struct {
	// IsLast is true if this block is the last metadata block before the audio
	// frames, and false otherwise.
	IsLast bool
	// Block type.
	Type BlockType
	// Length in bytes of the metadata body.
	Length uint32
}

// HeaderLength is the length in bytes of a metadata block header.
const HeaderLength = 4

// ParseHeader parses a metadata block header at c. The block length is not
// checked against the remaining input, since the block body is never read.
//
// Block header format (pseudo code):
//
//	type METADATA_BLOCK_HEADER struct {
//	   is_last    bool
//	   block_type uint7
//	   length     uint24
//	}
func ParseHeader(c bits.Cursor) (bits.Cursor, Header, error) {
	if err := c.Require(8 * HeaderLength); err != nil {
		return c, Header{}, err
	}
	next, isLast, err := bits.Flag(c)
	if err != nil {
		return c, Header{}, err
	}
	next, tag, err := bits.Uint(next, 7)
	if err != nil {
		return c, Header{}, err
	}
	next, length, err := bits.Uint24(next)
	if err != nil {
		return c, Header{}, err
	}
	h := Header{
		IsLast: isLast,
		Type:   TypeFromTag(uint8(tag)),
		Length: length,
	}
	return next, h, nil
}
