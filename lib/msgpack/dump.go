// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// payloadChunkSize bounds the buffer used to stream string, bin, and
// ext payloads to the sink. A hostile length prefix (say a 4 GiB
// string declared in a 10 byte file) fails after at most one chunk
// instead of committing a length-sized allocation up front.
const payloadChunkSize = 64 * 1024

// Options configure a Dumper. The zero value renders with the default
// three-space indent, unlimited depth, no offset lines, and no color.
type Options struct {
	// Indent is one unit of indentation, repeated once per nesting
	// level. Empty selects the default of three spaces.
	Indent string

	// MaxDepth aborts the dump with a *DepthError when container
	// nesting exceeds it. Zero means unlimited.
	MaxDepth int

	// Offsets prints a "# 0x%08x" line with the starting byte offset
	// of each top-level value, before the value itself.
	Offsets bool

	// Palette styles rendered tokens. Nil renders plain text.
	Palette *Palette
}

// Dumper renders a MessagePack stream as indented text, one block per
// top-level value. It decodes structure only: payload bytes stream
// through to the sink without being retained, so an arbitrarily large
// value dumps in constant memory.
//
// A Dumper is single-use and not safe for concurrent use.
type Dumper struct {
	reader  *Reader
	sink    io.Writer
	options Options
	depth   int
}

// NewDumper returns a Dumper that decodes source and writes rendered
// text to sink.
func NewDumper(source io.Reader, sink io.Writer, options Options) *Dumper {
	if options.Indent == "" {
		options.Indent = "   "
	}
	return &Dumper{
		reader:  NewReader(source),
		sink:    sink,
		options: options,
	}
}

// Offset returns the number of input bytes consumed so far.
func (d *Dumper) Offset() int64 {
	return d.reader.Offset()
}

// Dump renders top-level values until the stream ends cleanly. It
// returns the number of values rendered. The first error is fatal to
// the whole run; text already written for an in-progress value stays
// written, there is no rollback.
func (d *Dumper) Dump() (int, error) {
	rendered := 0
	for {
		err := d.dumpValue(role{kind: roleTopLevel})
		if errors.Is(err, ErrEndOfStream) {
			return rendered, nil
		}
		if err != nil {
			return rendered, err
		}
		rendered++
	}
}

// role describes the position of the value being rendered: a top-level
// value, the index-th element of an array, or one side of a map entry.
// Roles affect formatting only (the "[i]: " prefix, indentation
// suppression for map values, the ": " separator after map keys),
// never decoding.
type role struct {
	kind  roleKind
	index uint64
}

type roleKind uint8

const (
	roleTopLevel roleKind = iota
	roleArrayElement
	roleMapKey
	roleMapValue
)

// dumpValue decodes and renders one value, recursing for containers.
// ErrEndOfStream escapes only when a top-level tag byte was never
// read; in any other position the stream ended inside an enclosing
// value, which is truncation.
func (d *Dumper) dumpValue(valueRole role) error {
	tagOffset := d.reader.Offset()
	tag, err := d.reader.ReadByte()
	if err != nil {
		if errors.Is(err, ErrEndOfStream) && valueRole.kind != roleTopLevel {
			return &TruncatedError{Offset: tagOffset, Requested: 1}
		}
		return err
	}

	if d.options.Offsets && valueRole.kind == roleTopLevel {
		if err := d.writeToken(tokenOffset, fmt.Sprintf("# 0x%08x", tagOffset)); err != nil {
			return err
		}
		if err := d.write("\n"); err != nil {
			return err
		}
	}

	// Map values continue the line their key started, so they skip
	// indentation. Everything else indents to the current depth.
	if valueRole.kind != roleMapValue {
		if err := d.writeIndent(); err != nil {
			return err
		}
	}
	if valueRole.kind == roleArrayElement {
		prefix := "[" + strconv.FormatUint(valueRole.index, 10) + "]: "
		if err := d.writeToken(tokenIndex, prefix); err != nil {
			return err
		}
	}

	if err := d.renderValue(tag, tagOffset); err != nil {
		return err
	}

	// A map key shares its line with the value that follows; every
	// other role ends its line here.
	if valueRole.kind == roleMapKey {
		return d.writeToken(tokenPunct, ": ")
	}
	return d.write("\n")
}

// renderValue dispatches on the tag byte and renders one value. The
// cases follow the encoding's partition of the byte space (see
// tags.go). The two fixint range tests run first and clear 0x00..0x7f
// and 0xe0..0xff, so the mask tests below only ever see 0x80..0xdf,
// where the classes are disjoint and no case shadows another.
func (d *Dumper) renderValue(tag byte, tagOffset int64) error {
	switch {
	case tag <= fixIntPositiveMax:
		return d.writeToken(tokenNumber, strconv.FormatUint(uint64(tag), 10))
	case tag >= fixIntNegativeMin:
		return d.writeToken(tokenNumber, strconv.FormatInt(int64(int8(tag)), 10))
	case tag&fixMapMask == fixMapTag:
		return d.renderMap(uint64(tag & fixMapCount))
	case tag&fixArrayMask == fixArrayTag:
		return d.renderArray(uint64(tag & fixArrayCount))
	case tag&fixStrMask == fixStrTag:
		return d.renderString(uint64(tag & fixStrLength))

	case tag == TagNil:
		return d.writeToken(tokenNil, "()")
	case tag == TagFalse:
		return d.writeToken(tokenBool, "false")
	case tag == TagTrue:
		return d.writeToken(tokenBool, "true")

	case tag == TagBin8:
		return d.renderBinaryPrefixed(1)
	case tag == TagBin16:
		return d.renderBinaryPrefixed(2)
	case tag == TagBin32:
		return d.renderBinaryPrefixed(4)

	case tag == TagExt8:
		return d.renderExtensionPrefixed(1)
	case tag == TagExt16:
		return d.renderExtensionPrefixed(2)
	case tag == TagExt32:
		return d.renderExtensionPrefixed(4)

	case tag == TagFloat32:
		return d.renderFloat(4)
	case tag == TagFloat64:
		return d.renderFloat(8)

	case tag >= TagUint8 && tag <= TagUint64:
		return d.renderUint(1 << (tag - TagUint8))
	case tag >= TagInt8 && tag <= TagInt64:
		return d.renderInt(1 << (tag - TagInt8))

	case tag >= TagFixExt1 && tag <= TagFixExt16:
		return d.renderExtension(fixExtLength(tag))

	case tag == TagStr8:
		return d.renderStringPrefixed(1)
	case tag == TagStr16:
		return d.renderStringPrefixed(2)
	case tag == TagStr32:
		return d.renderStringPrefixed(4)

	case tag == TagArray16:
		return d.renderArrayPrefixed(2)
	case tag == TagArray32:
		return d.renderArrayPrefixed(4)

	case tag == TagMap16:
		return d.renderMapPrefixed(2)
	case tag == TagMap32:
		return d.renderMapPrefixed(4)

	default:
		// Only 0xc1 reaches here.
		return &UnknownTagError{Offset: tagOffset, Tag: tag}
	}
}

// renderUint reads and renders a big-endian unsigned integer of the
// given byte width.
func (d *Dumper) renderUint(width int) error {
	value, err := d.readUint(width)
	if err != nil {
		return err
	}
	return d.writeToken(tokenNumber, strconv.FormatUint(value, 10))
}

// renderInt reads and renders a big-endian two's-complement integer of
// the given byte width.
func (d *Dumper) renderInt(width int) error {
	value, err := d.readInt(width)
	if err != nil {
		return err
	}
	return d.writeToken(tokenNumber, strconv.FormatInt(value, 10))
}

// renderFloat reads and renders an IEEE 754 value, 4 or 8 bytes
// big-endian. Formatting uses the shortest decimal that round-trips at
// the value's own precision.
func (d *Dumper) renderFloat(width int) error {
	bits, err := d.readUint(width)
	if err != nil {
		return err
	}
	var text string
	if width == 4 {
		text = strconv.FormatFloat(float64(math.Float32frombits(uint32(bits))), 'g', -1, 32)
	} else {
		text = strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64)
	}
	return d.writeToken(tokenNumber, text)
}

// renderString renders a string payload of the declared byte length: a
// double quote, the raw payload bytes, a closing double quote. Payload
// bytes pass through exactly as read, no escaping and no UTF-8
// validation; the declared length alone decides where the string ends.
func (d *Dumper) renderString(length uint64) error {
	if err := d.writeToken(tokenString, `"`); err != nil {
		return err
	}
	err := d.copyPayload(length, func(chunk []byte) error {
		return d.writeToken(tokenString, string(chunk))
	})
	if err != nil {
		return err
	}
	return d.writeToken(tokenString, `"`)
}

func (d *Dumper) renderStringPrefixed(widthBytes int) error {
	length, err := d.readUint(widthBytes)
	if err != nil {
		return err
	}
	return d.renderString(length)
}

// renderBinary renders a byte payload as lowercase hex pairs separated
// by single spaces. A zero-length payload renders as nothing at all.
func (d *Dumper) renderBinary(length uint64) error {
	first := true
	return d.copyPayload(length, func(chunk []byte) error {
		var text strings.Builder
		text.Grow(len(chunk) * 3)
		for _, value := range chunk {
			if !first {
				text.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&text, "%02x", value)
		}
		return d.writeToken(tokenBinary, text.String())
	})
}

func (d *Dumper) renderBinaryPrefixed(widthBytes int) error {
	length, err := d.readUint(widthBytes)
	if err != nil {
		return err
	}
	return d.renderBinary(length)
}

// renderExtension renders an application-defined extension value: the
// one-byte type code as "Type<code>:", then the payload in hex form.
// The code prints as the unsigned wire byte.
func (d *Dumper) renderExtension(length uint64) error {
	code, err := d.readPayloadBytes(1)
	if err != nil {
		return err
	}
	prefix := "Type" + strconv.FormatUint(uint64(code[0]), 10) + ":"
	if err := d.writeToken(tokenExt, prefix); err != nil {
		return err
	}
	return d.renderBinary(length)
}

func (d *Dumper) renderExtensionPrefixed(widthBytes int) error {
	length, err := d.readUint(widthBytes)
	if err != nil {
		return err
	}
	return d.renderExtension(length)
}

// renderArray renders count child values, each on its own line with an
// "[i]: " prefix, one level deeper. The closing bracket returns to the
// opening depth so it aligns with the line that opened the array.
func (d *Dumper) renderArray(count uint64) error {
	if err := d.openContainer("["); err != nil {
		return err
	}
	for index := uint64(0); index < count; index++ {
		if err := d.dumpValue(role{kind: roleArrayElement, index: index}); err != nil {
			return err
		}
	}
	return d.closeContainer("]")
}

func (d *Dumper) renderArrayPrefixed(widthBytes int) error {
	count, err := d.readUint(widthBytes)
	if err != nil {
		return err
	}
	return d.renderArray(count)
}

// renderMap renders count key-value pairs, one pair per line. The key
// renders indented, then ": ", then the value continues the same line.
func (d *Dumper) renderMap(count uint64) error {
	if err := d.openContainer("{"); err != nil {
		return err
	}
	for entry := uint64(0); entry < count; entry++ {
		if err := d.dumpValue(role{kind: roleMapKey}); err != nil {
			return err
		}
		if err := d.dumpValue(role{kind: roleMapValue}); err != nil {
			return err
		}
	}
	return d.closeContainer("}")
}

func (d *Dumper) renderMapPrefixed(widthBytes int) error {
	count, err := d.readUint(widthBytes)
	if err != nil {
		return err
	}
	return d.renderMap(count)
}

// openContainer writes the opening bracket and enters one nesting
// level, enforcing the depth limit. Depth left inconsistent by a
// failed parse is fine: the first error aborts the whole dump.
func (d *Dumper) openContainer(bracket string) error {
	if err := d.writeToken(tokenPunct, bracket); err != nil {
		return err
	}
	if err := d.write("\n"); err != nil {
		return err
	}
	d.depth++
	if d.options.MaxDepth > 0 && d.depth > d.options.MaxDepth {
		return &DepthError{Offset: d.reader.Offset(), Depth: d.depth}
	}
	return nil
}

// closeContainer leaves the nesting level and writes the closing
// bracket at the restored depth.
func (d *Dumper) closeContainer(bracket string) error {
	d.depth--
	if err := d.writeIndent(); err != nil {
		return err
	}
	return d.writeToken(tokenPunct, bracket)
}

// readUint reads a big-endian unsigned integer of width 1, 2, 4, or 8
// bytes. Both scalar values and length prefixes decode through here.
func (d *Dumper) readUint(width int) (uint64, error) {
	buf, err := d.readPayloadBytes(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(buf)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(buf)), nil
	default:
		return binary.BigEndian.Uint64(buf), nil
	}
}

// readInt reads a big-endian two's-complement integer. The sign bit is
// the top bit of the first byte; Go's fixed-width conversions extend
// it across the 64-bit result.
func (d *Dumper) readInt(width int) (int64, error) {
	value, err := d.readUint(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return int64(int8(value)), nil
	case 2:
		return int64(int16(value)), nil
	case 4:
		return int64(int32(value)), nil
	default:
		return int64(value), nil
	}
}

// copyPayload streams length payload bytes through emit in chunks of
// at most payloadChunkSize bytes each.
func (d *Dumper) copyPayload(length uint64, emit func([]byte) error) error {
	if length == 0 {
		return nil
	}
	chunkSize := uint64(payloadChunkSize)
	if length < chunkSize {
		chunkSize = length
	}
	chunk := make([]byte, chunkSize)
	for remaining := length; remaining > 0; {
		n := uint64(len(chunk))
		if remaining < n {
			n = remaining
		}
		if err := d.readPayloadInto(chunk[:n]); err != nil {
			return err
		}
		if err := emit(chunk[:n]); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// readPayloadInto fills buf with payload bytes. A clean end of stream
// is still truncation here: an enclosing tag promised these bytes.
func (d *Dumper) readPayloadInto(buf []byte) error {
	offset := d.reader.Offset()
	err := d.reader.ReadExactInto(buf)
	if errors.Is(err, ErrEndOfStream) {
		return &TruncatedError{Offset: offset, Requested: len(buf)}
	}
	return err
}

func (d *Dumper) readPayloadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := d.readPayloadInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeIndent writes one indent unit per nesting level.
func (d *Dumper) writeIndent() error {
	for level := 0; level < d.depth; level++ {
		if err := d.write(d.options.Indent); err != nil {
			return err
		}
	}
	return nil
}

// writeToken writes text through the palette style for class, or
// verbatim when no palette is set.
func (d *Dumper) writeToken(class tokenClass, text string) error {
	if style, ok := d.options.Palette.style(class); ok {
		text = style.Render(text)
	}
	return d.write(text)
}

func (d *Dumper) write(text string) error {
	_, err := io.WriteString(d.sink, text)
	return err
}
