// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command mpkdump renders a MessagePack stream as indented,
// human-readable text.
//
// It is a wire-level diagnostic: it shows exactly what is in the
// bytes (string vs bin, int width class by value, extension type
// codes) rather than unmarshaling into convenient host types. Input
// comes from a file argument or stdin, may be a concatenation of any
// number of top-level values, and may be hex-encoded (--hex) or
// compressed with gzip, zstd, or lz4 (detected automatically).
//
// The decoder streams: memory use does not depend on input size or on
// the lengths corrupt headers declare. The first malformed byte stops
// the dump with a diagnostic naming the offset; everything rendered
// up to that point is kept, which is usually the fastest way to see
// where a capture went wrong.
package main
