// Package compress transparently decompresses solution streams.
//
// The codec is detected from the leading magic bytes; streams without a
// known magic are passed through unchanged.
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a stream compression format.
type Codec uint8

const (
	// None is an uncompressed stream.
	None Codec = iota
	// Gzip is an RFC 1952 stream.
	Gzip
	// Zstd is a Zstandard frame stream.
	Zstd
	// LZ4 is an LZ4 frame stream.
	LZ4
)

func (c Codec) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

const peekSize = 4

// Detect reports the codec whose magic prefixes head.
func Detect(head []byte) Codec {
	switch {
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	default:
		return None
	}
}

// NewReader returns a reader yielding the decompressed contents of r.
// Closing the returned reader does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}

	codec := Detect(head)
	switch codec {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, codec, fmt.Errorf("compress: open gzip stream: %w", err)
		}
		return zr, codec, nil
	case Zstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, codec, fmt.Errorf("compress: open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), codec, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), codec, nil
	default:
		return io.NopCloser(br), codec, nil
	}
}
