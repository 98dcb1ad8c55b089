package flac_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	flac "github.com/mewkiz/flachdr"
	"github.com/mewkiz/flachdr/bits"
	"github.com/mewkiz/flachdr/meta"
	"github.com/stretchr/testify/require"
)

// header is the signature, StreamInfo block header and StreamInfo body of a 48
// kHz stereo stream with 32 bits-per-sample and 8640000 samples.
var header = []byte{
	'f', 'L', 'a', 'C',
	0x80, 0x00, 0x00, 0x22,
	0x00, 0x10, 0x24, 0x00, 0x00, 0x00, 0x21, 0x04, 0x20, 0x00, 0x0B, 0xB8,
	0x03, 0xF0, 0x00, 0x83, 0xD6, 0x00, 0x0B, 0x60, 0xDB, 0x9F, 0x4B, 0xA2,
	0xED, 0xB2, 0x90, 0x29, 0x59, 0xAC, 0xF0, 0x1F, 0x8F, 0x32,
}

var wantInfo = meta.StreamInfo{
	BlockSizeMin:  0x0010,
	BlockSizeMax:  0x2400,
	FrameSizeMin:  0x000021,
	FrameSizeMax:  0x042000,
	SampleRate:    48000,
	NChannels:     2,
	BitsPerSample: 32,
	NSamples:      8640000,
	MD5sum:        [16]uint8{0x0B, 0x60, 0xDB, 0x9F, 0x4B, 0xA2, 0xED, 0xB2, 0x90, 0x29, 0x59, 0xAC, 0xF0, 0x1F, 0x8F, 0x32},
}

// withByte returns a copy of buf with the byte at offset i replaced by b.
func withByte(buf []byte, i int, b byte) []byte {
	dup := append([]byte(nil), buf...)
	dup[i] = b
	return dup
}

func TestParse(t *testing.T) {
	next, stream, err := flac.Parse(bits.NewCursor(header, 0))
	require.NoError(t, err)
	require.Equal(t, wantInfo, stream.Info)
	require.Equal(t, meta.Header{IsLast: true, Type: meta.TypeStreamInfo, Length: 34}, stream.Header)
	require.Equal(t, 0, next.Len())
	require.Equal(t, uint(0), next.Offset())
	require.Empty(t, next.Bytes())
}

func TestParseRemainder(t *testing.T) {
	padding := []byte{0x81, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00}
	buf := append(append([]byte(nil), header...), padding...)

	next, stream, err := flac.Parse(bits.NewCursor(buf, 0))
	require.NoError(t, err)
	require.Equal(t, wantInfo, stream.Info)
	require.Equal(t, padding, next.Bytes())

	// The remainder is ready for the next metadata block.
	_, hdr, err := meta.ParseHeader(next)
	require.NoError(t, err)
	require.Equal(t, meta.Header{IsLast: true, Type: meta.TypePadding, Length: 4}, hdr)
}

func TestParseSignature(t *testing.T) {
	for i := 0; i < 4; i++ {
		buf := withByte(header, i, header[i]^0x20)
		c := bits.NewCursor(buf, 0)
		next, stream, err := flac.Parse(c)
		require.Error(t, err, "i=%d", i)
		require.ErrorIs(t, err, flac.ErrInvalidSignature, "i=%d", i)
		require.True(t, flac.IsInvalid(err), "i=%d", i)
		_, incomplete := flac.IsIncomplete(err)
		require.False(t, incomplete, "i=%d", i)
		require.Nil(t, stream, "i=%d", i)
		require.Equal(t, c.Len(), next.Len(), "i=%d: failed parse consumed input", i)
	}
}

func TestParseFirstBlock(t *testing.T) {
	golden := []struct {
		name    string
		buf     []byte
		wantErr error
	}{
		{name: "vorbis comment", buf: withByte(header, 4, 0x84), wantErr: flac.ErrInvalidFirstBlock},
		{name: "reserved", buf: withByte(header, 4, 0x32), wantErr: flac.ErrInvalidFirstBlock},
		{name: "invalid", buf: withByte(header, 4, 0xFF), wantErr: flac.ErrInvalidFirstBlock},
		{name: "short length", buf: withByte(header, 7, 0x21), wantErr: flac.ErrInvalidStreamInfoLength},
		{name: "long length", buf: withByte(header, 6, 0x01), wantErr: flac.ErrInvalidStreamInfoLength},
	}
	for _, g := range golden {
		t.Run(g.name, func(t *testing.T) {
			_, stream, err := flac.Parse(bits.NewCursor(g.buf, 0))
			require.ErrorIs(t, err, g.wantErr)
			require.True(t, flac.IsInvalid(err))
			require.Nil(t, stream)
		})
	}
}

func TestParseTruncated(t *testing.T) {
	for n := 0; n < len(header); n++ {
		c := bits.NewCursor(header[:n], 0)
		next, stream, err := flac.Parse(c)
		require.Error(t, err, "n=%d", n)
		require.False(t, flac.IsInvalid(err), "n=%d", n)
		needed, ok := flac.IsIncomplete(err)
		require.True(t, ok, "n=%d: expected incomplete error, got %v", n, err)
		require.Positive(t, needed, "n=%d", n)
		require.Nil(t, stream, "n=%d", n)
		require.Equal(t, c.Len(), next.Len(), "n=%d: failed parse consumed input", n)
	}
}

func TestParseBytes(t *testing.T) {
	stream, err := flac.ParseBytes(header)
	require.NoError(t, err)
	require.Equal(t, wantInfo, stream.Info)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.flac")
	require.NoError(t, os.WriteFile(path, header, 0o644))

	stream, err := flac.ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, wantInfo, stream.Info)

	_, err = flac.ParseFile(filepath.Join(t.TempDir(), "missing.flac"))
	require.Error(t, err)
}

func TestDecoder(t *testing.T) {
	rest := []byte{0x81, 0x00, 0x00, 0x00}
	r := bytes.NewReader(append(append([]byte(nil), header...), rest...))
	logBuf := new(bytes.Buffer)

	dec := flac.NewDecoder(r)
	dec.Logger = log.New(logBuf, "", 0)
	stream, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, wantInfo, stream.Info)

	// Only the header has been consumed.
	require.Equal(t, len(rest), r.Len())

	// One read each for the signature, the block header and StreamInfo.
	require.Equal(t,
		"flac.Decoder.Decode: reading 4 bytes (0 buffered)\n"+
			"flac.Decoder.Decode: reading 4 bytes (4 buffered)\n"+
			"flac.Decoder.Decode: reading 34 bytes (8 buffered)\n",
		logBuf.String())
}

func TestDecoderTruncated(t *testing.T) {
	for _, n := range []int{0, 3, 4, 7, 20, 41} {
		_, err := flac.NewDecoder(bytes.NewReader(header[:n])).Decode()
		needed, ok := flac.IsIncomplete(err)
		require.True(t, ok, "n=%d: expected incomplete error, got %v", n, err)
		require.Positive(t, needed, "n=%d", n)
		require.False(t, flac.IsInvalid(err), "n=%d", n)
	}
}

func TestDecoderInvalid(t *testing.T) {
	_, err := flac.NewDecoder(bytes.NewReader([]byte("RIFF...."))).Decode()
	require.ErrorIs(t, err, flac.ErrInvalidSignature)

	// Malformed content is reported even when the input is also truncated.
	_, err = flac.NewDecoder(bytes.NewReader(withByte(header, 4, 0x84)[:10])).Decode()
	require.ErrorIs(t, err, flac.ErrInvalidFirstBlock)
}
