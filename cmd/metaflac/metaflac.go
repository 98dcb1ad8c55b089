// metaflac lists the StreamInfo metadata block of FLAC files.
//
// Example:
//
//	METADATA block #0
//	  type: 0 (STREAMINFO)
//	  is last: false
//	  length: 34
//	  minimum blocksize: 4096 samples
//	  ...
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kylelemons/godebug/pretty"
	flac "github.com/mewkiz/flachdr"
	"github.com/mewkiz/flachdr/bits"
	"github.com/mewkiz/flachdr/meta"
	"github.com/mewkiz/pkg/errutil"
)

// flagPretty specifies if the decoded stream should be dumped rather than
// listed.
var flagPretty bool

func init() {
	flag.BoolVar(&flagPretty, "pretty", false, "Dump the decoded stream.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: metaflac [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if flag.NArg() > 1 {
			fmt.Printf("%s:\n", path)
		}
		if err := list(path); err != nil {
			log.Fatalln(err)
		}
	}
}

// list decodes and prints the header of the provided FLAC file.
func list(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errutil.Err(err)
	}
	next, stream, err := flac.Parse(bits.NewCursor(buf, 0))
	if err != nil {
		return errutil.Err(err)
	}

	if flagPretty {
		pretty.Print(stream)
	} else {
		listHeader(stream.Header, 0)
		listStreamInfo(stream.Info)
	}
	fmt.Printf("header ends at byte %d, bit offset %d\n", len(buf)-len(next.Bytes()), next.Offset())
	return nil
}

// typeName maps from metadata block type to a string version of its name.
var typeName = map[meta.BlockType]string{
	meta.TypeStreamInfo:    "STREAMINFO",
	meta.TypePadding:       "PADDING",
	meta.TypeApplication:   "APPLICATION",
	meta.TypeSeekTable:     "SEEKTABLE",
	meta.TypeVorbisComment: "VORBIS_COMMENT",
	meta.TypeCueSheet:      "CUESHEET",
	meta.TypePicture:       "PICTURE",
}

// Example:
//
//	METADATA block #0
//	  type: 0 (STREAMINFO)
//	  is last: false
//	  length: 34
func listHeader(header meta.Header, blockNum int) {
	name, ok := typeName[header.Type]
	if !ok {
		name = "UNKNOWN"
	}
	fmt.Printf("METADATA block #%d\n", blockNum)
	fmt.Printf("  type: %d (%s)\n", header.Type, name)
	fmt.Printf("  is last: %t\n", header.IsLast)
	fmt.Printf("  length: %d\n", header.Length)
}

// Example:
//
//	minimum blocksize: 4608 samples
//	maximum blocksize: 4608 samples
//	minimum framesize: 0 bytes
//	maximum framesize: 19024 bytes
//	sample_rate: 44100 Hz
//	channels: 2
//	bits-per-sample: 16
//	total samples: 151007220
//	MD5 signature: 2e6238f5d9fe5c19f3ead628f750fd3d
//	duration: 57m4.2s
func listStreamInfo(si meta.StreamInfo) {
	fmt.Printf("  minimum blocksize: %d samples\n", si.BlockSizeMin)
	fmt.Printf("  maximum blocksize: %d samples\n", si.BlockSizeMax)
	fmt.Printf("  minimum framesize: %d bytes\n", si.FrameSizeMin)
	fmt.Printf("  maximum framesize: %d bytes\n", si.FrameSizeMax)
	fmt.Printf("  sample_rate: %d Hz\n", si.SampleRate)
	fmt.Printf("  channels: %d\n", si.NChannels)
	fmt.Printf("  bits-per-sample: %d\n", si.BitsPerSample)
	fmt.Printf("  total samples: %d\n", si.NSamples)
	fmt.Printf("  MD5 signature: %x\n", si.MD5sum)
	fmt.Printf("  duration: %v\n", si.Duration())
}
