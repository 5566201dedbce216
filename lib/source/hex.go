// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bufio"
	"fmt"
	"io"
)

// NewHexReader returns a reader that decodes ASCII hex from stream on
// the fly. Whitespace may appear anywhere, including inside a digit
// pair ("a1 63 6b" and "a163 6b" and "a1636b" all decode the same).
// Any other non-hex byte is an error, as is input ending on a half
// byte.
func NewHexReader(stream io.Reader) io.Reader {
	return &hexReader{source: bufio.NewReader(stream)}
}

type hexReader struct {
	source *bufio.Reader

	// err latches the first terminal condition (io.EOF or a decode
	// error) so later Read calls repeat it instead of resuming past
	// bad input.
	err error
}

func (r *hexReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for count < len(p) {
		high, err := r.nextDigit()
		if err != nil {
			// Input ending cleanly between digit pairs ends the
			// decoded stream.
			if err == io.EOF && count > 0 {
				return count, nil
			}
			r.err = err
			return count, err
		}
		low, err := r.nextDigit()
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("hex input: odd number of digits")
			}
			r.err = err
			return count, err
		}
		p[count] = high<<4 | low
		count++
	}
	return count, nil
}

// nextDigit returns the value of the next hex digit, skipping
// whitespace. io.EOF means the input ended cleanly before any digit.
func (r *hexReader) nextDigit() (byte, error) {
	for {
		c, err := r.source.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			continue
		case '0' <= c && c <= '9':
			return c - '0', nil
		case 'a' <= c && c <= 'f':
			return c - 'a' + 10, nil
		case 'A' <= c && c <= 'F':
			return c - 'A' + 10, nil
		default:
			return 0, fmt.Errorf("hex input: invalid byte %q", c)
		}
	}
}
