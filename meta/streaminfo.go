package meta

import (
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/mewkiz/flachdr/bits"
)

// StreamInfoLength is the length in bytes of a StreamInfo metadata block body.
const StreamInfoLength = 34

// StreamInfo contains the basic properties of a FLAC audio stream, such as its
// sample rate and channel count. It must be present as the first metadata
// block of a FLAC stream.
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_streaminfo
type StreamInfo struct {
	// Minimum block size (in samples) used in the stream; between 16 and 65535
	// samples.
	BlockSizeMin uint16
	// Maximum block size (in samples) used in the stream; between 16 and 65535
	// samples.
	BlockSizeMax uint16
	// Minimum frame size in bytes; a 0 value implies unknown.
	FrameSizeMin uint32
	// Maximum frame size in bytes; a 0 value implies unknown.
	FrameSizeMax uint32
	// Sample rate in Hz; between 1 and 655350 Hz.
	SampleRate uint32
	// Number of channels; between 1 and 8 channels.
	NChannels uint8
	// Sample size in bits-per-sample; between 4 and 32 bits.
	BitsPerSample uint8
	// Total number of inter-channel samples in the stream. One second of 44.1
	// KHz audio will have 44100 samples regardless of the number of channels. A
	// 0 value implies unknown.
	NSamples uint64
	// MD5 checksum of the unencoded audio data.
	MD5sum [16]uint8
}

// ParseStreamInfo parses the body of a StreamInfo metadata block at c. The body
// is a fixed-size unit; if any of it is missing, nothing is consumed and the
// returned *bits.IncompleteError covers the whole remainder of the body.
//
// StreamInfo format (pseudo code):
//
//	type METADATA_BLOCK_STREAMINFO struct {
//	   block_size_min  uint16
//	   block_size_max  uint16
//	   frame_size_min  uint24
//	   frame_size_max  uint24
//	   sample_rate     uint20
//	   n_channels      uint3 // (number of channels)-1
//	   bits_per_sample uint5 // (bits-per-sample)-1
//	   n_samples       uint36
//	   md5sum          [16]byte
//	}
func ParseStreamInfo(c bits.Cursor) (bits.Cursor, StreamInfo, error) {
	if err := c.Require(8 * StreamInfoLength); err != nil {
		return c, StreamInfo{}, err
	}

	var (
		si   StreamInfo
		next bits.Cursor
		err  error
	)
	next, si.BlockSizeMin, err = bits.Uint16(c)
	if err != nil {
		return c, StreamInfo{}, err
	}
	next, si.BlockSizeMax, err = bits.Uint16(next)
	if err != nil {
		return c, StreamInfo{}, err
	}

	next, si.FrameSizeMin, err = bits.Uint24(next)
	if err != nil {
		return c, StreamInfo{}, err
	}
	next, si.FrameSizeMax, err = bits.Uint24(next)
	if err != nil {
		return c, StreamInfo{}, err
	}

	next, si.SampleRate, err = bits.Uint20(next)
	if err != nil {
		return c, StreamInfo{}, err
	}

	// n_channels and bits_per_sample are stored with a bias of one.
	next, x, err := bits.Uint(next, 3)
	if err != nil {
		return c, StreamInfo{}, err
	}
	si.NChannels = uint8(x) + 1
	next, x, err = bits.Uint(next, 5)
	if err != nil {
		return c, StreamInfo{}, err
	}
	si.BitsPerSample = uint8(x) + 1

	next, si.NSamples, err = bits.Uint36(next)
	if err != nil {
		return c, StreamInfo{}, err
	}

	next, md5sum, err := bits.Bytes(next, len(si.MD5sum))
	if err != nil {
		return c, StreamInfo{}, err
	}
	copy(si.MD5sum[:], md5sum)

	return next, si, nil
}

// Duration returns the play time of the stream, or 0 if either the sample
// count or the sample rate is unknown. Play times beyond the range of
// time.Duration are clamped.
func (si StreamInfo) Duration() time.Duration {
	if si.SampleRate == 0 || si.NSamples == 0 {
		return 0
	}
	sec := si.NSamples / uint64(si.SampleRate)
	if sec >= math.MaxInt64/uint64(time.Second) {
		return math.MaxInt64
	}
	rem := si.NSamples % uint64(si.SampleRate)
	return time.Duration(sec)*time.Second + time.Duration(rem)*time.Second/time.Duration(si.SampleRate)
}

// Format returns the audio format described by the stream.
func (si StreamInfo) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(si.NChannels),
		SampleRate:  int(si.SampleRate),
	}
}
