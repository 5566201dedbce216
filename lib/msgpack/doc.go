// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package msgpack decodes a MessagePack stream and renders it as
// indented, human-readable text. It is a diagnostic decoder: it
// recovers the structure of whatever bytes it is handed, it does not
// unmarshal into Go values and it does not validate payloads (string
// payloads are not required to be UTF-8, extension payloads are opaque
// hex).
//
// The stream model is a sequence of concatenated top-level values with
// no framing between them, the natural shape of a MessagePack capture
// or log. Dump renders each one in turn:
//
//	dumper := msgpack.NewDumper(input, output, msgpack.Options{})
//	values, err := dumper.Dump()
//
// Rendering is fully streaming. Container headers recurse, scalar and
// byte payloads pass straight through to the sink in bounded chunks,
// so memory use is independent of both value size and the length a
// corrupt header claims.
//
// End of input is significant only between values: a stream ending at
// a top-level boundary is a normal, complete dump, while a stream
// ending anywhere inside a value is reported as a *TruncatedError
// with the offset and byte counts of the failed read. A byte that is
// not a valid tag (only 0xc1 exists) is an *UnknownTagError. All
// errors are fatal to the dump; output produced before the error
// stands.
package msgpack
