// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"errors"
	"fmt"
)

// ErrEndOfStream reports a clean end of input: zero bytes were available
// at the point where a read began. Dump treats it as normal termination
// when it occurs before the tag byte of a top-level value; anywhere else
// the stream ended inside a value and the decoder reports a
// *TruncatedError instead.
var ErrEndOfStream = errors.New("end of stream")

// TruncatedError reports a read that could not deliver its full byte
// count: the stream ended mid-value, or the underlying source failed.
type TruncatedError struct {
	// Offset is the stream position where the read began.
	Offset int64

	// Requested and Received are the byte counts asked for and
	// actually delivered before the stream gave out.
	Requested int
	Received  int

	// Cause is the source error, if the failure was anything other
	// than running out of bytes.
	Cause error
}

func (e *TruncatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read %d of %d bytes at offset %d: %v",
			e.Received, e.Requested, e.Offset, e.Cause)
	}
	return fmt.Sprintf("truncated value at offset %d: got %d of %d bytes",
		e.Offset, e.Received, e.Requested)
}

func (e *TruncatedError) Unwrap() error { return e.Cause }

// UnknownTagError reports a tag byte outside the MessagePack
// encoding. Only 0xc1 is unassigned; every other byte value begins a
// valid value.
type UnknownTagError struct {
	// Offset is the stream position of the offending byte.
	Offset int64

	// Tag is the byte that matched no encoding class.
	Tag byte
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag 0x%02x at offset %d", e.Tag, e.Offset)
}

// DepthError reports nesting beyond the configured limit. It fires on
// entry to the container that crossed the limit, before any of its
// elements are decoded.
type DepthError struct {
	// Offset is the stream position just after the container's header.
	Offset int64

	// Depth is the nesting level that exceeded the limit.
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("nesting depth %d exceeds limit at offset %d", e.Depth, e.Offset)
}
