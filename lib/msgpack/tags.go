// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

// Tag bytes of the MessagePack encoding. Every possible byte value
// belongs to exactly one class:
//
//	0x00..0x7f  positive fixint (the byte is the value)
//	0x80..0x8f  fixmap (entry count in the low four bits)
//	0x90..0x9f  fixarray (element count in the low four bits)
//	0xa0..0xbf  fixstr (byte length in the low five bits)
//	0xc0..0xdf  the named tags below
//	0xe0..0xff  negative fixint (the byte reinterpreted as int8)
//
// The single gap is 0xc1, which the format leaves unassigned; it is the
// only byte that produces an UnknownTagError.
const (
	TagNil   = 0xc0
	TagFalse = 0xc2
	TagTrue  = 0xc3

	TagBin8  = 0xc4
	TagBin16 = 0xc5
	TagBin32 = 0xc6

	TagExt8  = 0xc7
	TagExt16 = 0xc8
	TagExt32 = 0xc9

	TagFloat32 = 0xca
	TagFloat64 = 0xcb

	TagUint8  = 0xcc
	TagUint16 = 0xcd
	TagUint32 = 0xce
	TagUint64 = 0xcf

	TagInt8  = 0xd0
	TagInt16 = 0xd1
	TagInt32 = 0xd2
	TagInt64 = 0xd3

	TagFixExt1  = 0xd4
	TagFixExt2  = 0xd5
	TagFixExt4  = 0xd6
	TagFixExt8  = 0xd7
	TagFixExt16 = 0xd8

	TagStr8  = 0xd9
	TagStr16 = 0xda
	TagStr32 = 0xdb

	TagArray16 = 0xdc
	TagArray32 = 0xdd

	TagMap16 = 0xde
	TagMap32 = 0xdf
)

// Fix-range boundaries and masks. The fix classes encode a small
// length or value directly in the tag byte.
const (
	fixIntPositiveMax = 0x7f // 0x00..0x7f, value == tag

	fixMapMask  = 0xf0 // tag & fixMapMask == fixMapTag
	fixMapTag   = 0x80
	fixMapCount = 0x0f

	fixArrayMask  = 0xf0
	fixArrayTag   = 0x90
	fixArrayCount = 0x0f

	fixStrMask   = 0xe0
	fixStrTag    = 0xa0
	fixStrLength = 0x1f

	fixIntNegativeMin = 0xe0 // 0xe0..0xff, value == int8(tag)
)

// fixExtLength returns the payload length of a fixext tag. The five
// fixext tags are consecutive, carrying 1, 2, 4, 8, and 16 bytes.
func fixExtLength(tag byte) uint64 {
	return 1 << (tag - TagFixExt1)
}
