// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package source resolves the byte stream a dump reads: a file or
// stdin, optionally hex-encoded, optionally compressed. The package
// never buffers whole inputs; every transformation is a streaming
// io.Reader wrapper, so piping a multi-gigabyte capture through the
// decoder works in constant memory.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the decompression applied to input bytes
// before decoding.
type Compression string

const (
	// CompressionAuto sniffs the stream's leading magic bytes and
	// passes unrecognized streams through untouched.
	CompressionAuto Compression = "auto"

	// CompressionNone passes the stream through untouched.
	CompressionNone Compression = "none"

	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression validates a compression name from the command
// line. The empty string selects auto.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case "":
		return CompressionAuto, nil
	case CompressionAuto, CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4:
		return Compression(name), nil
	default:
		return "", fmt.Errorf("unknown compression %q (want auto, none, gzip, zstd, or lz4)", name)
	}
}

// Options select the transformations applied between the raw input
// and the decoder.
type Options struct {
	// HexInput decodes ASCII hex, ignoring whitespace, before any
	// other transformation sees the stream. Compressed hex dumps
	// therefore work: the hex decodes to compressed bytes, which
	// decompress as usual.
	HexInput bool

	// Compression names the decompression to apply.
	Compression Compression
}

// Open returns the byte source named by path: the process's standard
// input for "" or "-", otherwise the file. The caller closes it.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// Reader wraps raw according to options and returns the stream the
// decoder should see.
func Reader(raw io.Reader, options Options) (io.Reader, error) {
	stream := raw
	if options.HexInput {
		stream = NewHexReader(stream)
	}
	switch options.Compression {
	case "", CompressionAuto:
		return sniffCompression(stream)
	case CompressionNone:
		return stream, nil
	case CompressionGzip:
		return newGzipReader(stream)
	case CompressionZstd:
		return newZstdReader(stream)
	case CompressionLZ4:
		return lz4.NewReader(stream), nil
	default:
		return nil, fmt.Errorf("unknown compression %q (want auto, none, gzip, zstd, or lz4)", options.Compression)
	}
}

// Frame magics of the supported compression formats, as they appear
// at the start of the stream.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// sniffCompression peeks at the stream's first bytes and wraps it in
// the matching decompressor. Peeking buffers rather than consumes, so
// a stream without a known magic (including one shorter than any
// magic, or empty) passes through intact.
func sniffCompression(stream io.Reader) (io.Reader, error) {
	buffered := bufio.NewReader(stream)
	head, _ := buffered.Peek(4)
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return newGzipReader(buffered)
	case bytes.HasPrefix(head, magicZstd):
		return newZstdReader(buffered)
	case bytes.HasPrefix(head, magicLZ4):
		return lz4.NewReader(buffered), nil
	}
	return buffered, nil
}

func newGzipReader(stream io.Reader) (io.Reader, error) {
	reader, err := gzip.NewReader(stream)
	if err != nil {
		return nil, fmt.Errorf("gzip input: %w", err)
	}
	return reader, nil
}

func newZstdReader(stream io.Reader) (io.Reader, error) {
	reader, err := zstd.NewReader(stream)
	if err != nil {
		return nil, fmt.Errorf("zstd input: %w", err)
	}
	return reader.IOReadCloser(), nil
}
