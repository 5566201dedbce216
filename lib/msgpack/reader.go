// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"errors"
	"io"
)

// Reader pulls exact byte counts from a stream and tracks the running
// offset for diagnostics. It distinguishes a clean end of stream (zero
// bytes available when a read begins) from truncation (the stream gave
// out partway through a read): the former returns ErrEndOfStream, the
// latter a *TruncatedError.
//
// After a clean end of stream the reader is latched: further reads
// return ErrEndOfStream without touching the source.
type Reader struct {
	source io.Reader
	offset int64
	atEOF  bool
}

// NewReader returns a Reader consuming from source.
func NewReader(source io.Reader) *Reader {
	return &Reader{source: source}
}

// Offset returns the number of bytes consumed so far. Offsets feed
// diagnostics only; no decoding decision depends on them.
func (r *Reader) Offset() int64 {
	return r.offset
}

// AtEOF reports whether a clean end of stream has been observed.
func (r *Reader) AtEOF() bool {
	return r.atEOF
}

// ReadByte returns the next byte of the stream.
func (r *Reader) ReadByte() (byte, error) {
	var single [1]byte
	if err := r.ReadExactInto(single[:]); err != nil {
		return 0, err
	}
	return single[0], nil
}

// ReadExact returns the next n bytes of the stream in a fresh buffer.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.ReadExactInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadExactInto fills buf from the stream. It returns nil only when
// every byte of buf was filled, ErrEndOfStream when the stream was
// already exhausted before the first byte, and a *TruncatedError when
// the stream ended or failed partway through.
func (r *Reader) ReadExactInto(buf []byte) error {
	if r.atEOF {
		return ErrEndOfStream
	}
	start := r.offset
	received, err := io.ReadFull(r.source, buf)
	r.offset += int64(received)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		r.atEOF = true
		return ErrEndOfStream
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &TruncatedError{Offset: start, Requested: len(buf), Received: received}
	default:
		return &TruncatedError{Offset: start, Requested: len(buf), Received: received, Cause: err}
	}
}
