// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// sample is a small MessagePack value: {"a": 1, "b": [2, 3]}. Its
// exact meaning does not matter here, only that its leading byte is
// no compression magic.
var sample = []byte{0x82, 0xa1, 'a', 0x01, 0xa1, 'b', 0x92, 0x02, 0x03}

func gzipCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("zstd write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	return buf.Bytes()
}

func lz4Compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	return buf.Bytes()
}

func TestParseCompression(t *testing.T) {
	t.Parallel()
	valid := map[string]Compression{
		"":     CompressionAuto,
		"auto": CompressionAuto,
		"none": CompressionNone,
		"gzip": CompressionGzip,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	}
	for name, want := range valid {
		got, err := ParseCompression(name)
		if err != nil {
			t.Errorf("ParseCompression(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseCompression(%q): got %q, want %q", name, got, want)
		}
	}

	if _, err := ParseCompression("brotli"); err == nil {
		t.Error("ParseCompression(brotli): no error")
	}
}

func TestReaderDecompression(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		compress func(*testing.T, []byte) []byte
		forced   Compression
	}{
		{"gzip", gzipCompress, CompressionGzip},
		{"zstd", zstdCompress, CompressionZstd},
		{"lz4", lz4Compress, CompressionLZ4},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			compressed := test.compress(t, sample)

			for _, mode := range []Compression{CompressionAuto, test.forced} {
				stream, err := Reader(bytes.NewReader(compressed), Options{Compression: mode})
				if err != nil {
					t.Fatalf("Reader(%s): %v", mode, err)
				}
				got, err := io.ReadAll(stream)
				if err != nil {
					t.Fatalf("ReadAll(%s): %v", mode, err)
				}
				if !bytes.Equal(got, sample) {
					t.Errorf("decompressed(%s): got % x, want % x", mode, got, sample)
				}
			}
		})
	}
}

func TestReaderPassthrough(t *testing.T) {
	t.Parallel()
	for _, mode := range []Compression{CompressionAuto, CompressionNone} {
		stream, err := Reader(bytes.NewReader(sample), Options{Compression: mode})
		if err != nil {
			t.Fatalf("Reader(%s): %v", mode, err)
		}
		got, err := io.ReadAll(stream)
		if err != nil {
			t.Fatalf("ReadAll(%s): %v", mode, err)
		}
		if !bytes.Equal(got, sample) {
			t.Errorf("passthrough(%s): got % x, want % x", mode, got, sample)
		}
	}
}

func TestReaderAutoEdgeCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0x01}},
		{"shorter than longest magic", []byte{0x01, 0x02, 0x03}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			stream, err := Reader(bytes.NewReader(test.input), Options{})
			if err != nil {
				t.Fatalf("Reader: %v", err)
			}
			got, err := io.ReadAll(stream)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(got, test.input) {
				t.Errorf("got % x, want % x", got, test.input)
			}
		})
	}
}

func TestReaderCorruptGzip(t *testing.T) {
	t.Parallel()
	// Correct magic, garbage header. Construction fails because gzip
	// reads its header eagerly.
	corrupt := []byte{0x1f, 0x8b, 0xff, 0xff, 0xff, 0xff}
	if _, err := Reader(bytes.NewReader(corrupt), Options{Compression: CompressionGzip}); err == nil {
		t.Error("Reader: no error for corrupt gzip header")
	}
}

func TestReaderForcedMismatch(t *testing.T) {
	t.Parallel()
	// gzip bytes decoded as lz4: the frame decoder must report an
	// error at read time rather than hand back garbage.
	stream, err := Reader(bytes.NewReader(gzipCompress(t, sample)), Options{Compression: CompressionLZ4})
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if _, err := io.ReadAll(stream); err == nil {
		t.Error("ReadAll: no error decoding gzip frame as lz4")
	}
}

func TestReaderHexThenDecompression(t *testing.T) {
	t.Parallel()
	// A hex dump of a zstd frame: hex decoding applies first, then
	// magic sniffing sees the compressed bytes.
	hexDump := hex.EncodeToString(zstdCompress(t, sample))
	stream, err := Reader(strings.NewReader(hexDump), Options{HexInput: true})
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, sample) {
		t.Errorf("got % x, want % x", got, sample)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("stdin aliases", func(t *testing.T) {
		t.Parallel()
		for _, path := range []string{"", "-"} {
			input, err := Open(path)
			if err != nil {
				t.Fatalf("Open(%q): %v", path, err)
			}
			// Closing the wrapper must not close the real stdin.
			if err := input.Close(); err != nil {
				t.Errorf("Close(%q): %v", path, err)
			}
		}
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "values.msgpack")
		if err := os.WriteFile(path, sample, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		input, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer input.Close()
		got, err := io.ReadAll(input)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if !bytes.Equal(got, sample) {
			t.Errorf("got % x, want % x", got, sample)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := Open(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Error("Open: no error for missing file")
		}
	})
}
