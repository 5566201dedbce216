// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package msgpack

import "github.com/charmbracelet/lipgloss"

// Palette holds the styles applied to rendered tokens when color
// output is enabled. Styles wrap individual tokens only; structure
// (indentation, newlines, the separators between hex pairs) is always
// written unstyled, so colored output stripped of escape sequences is
// byte-identical to plain output.
//
// A nil *Palette renders plain text.
type Palette struct {
	Nil    lipgloss.Style // the () placeholder
	Bool   lipgloss.Style // false and true
	Number lipgloss.Style // integers and floats
	String lipgloss.Style // quotes and string payload bytes
	Binary lipgloss.Style // hex pairs of bin and ext payloads
	Ext    lipgloss.Style // the Type<code>: prefix
	Index  lipgloss.Style // the [i]: prefix of array elements
	Punct  lipgloss.Style // brackets, braces, the key separator
	Offset lipgloss.Style // the # 0x00000000 offset lines
}

// DefaultPalette returns the built-in color scheme with styles bound
// to renderer. The renderer's color profile decides what the styles
// emit: on a dumb terminal or with no TTY they degrade to plain text.
// All colors are ANSI 256-color codes for broad terminal
// compatibility.
func DefaultPalette(renderer *lipgloss.Renderer) *Palette {
	return &Palette{
		Nil:    renderer.NewStyle().Foreground(lipgloss.Color("245")), // gray
		Bool:   renderer.NewStyle().Foreground(lipgloss.Color("208")), // orange
		Number: renderer.NewStyle().Foreground(lipgloss.Color("75")),  // blue
		String: renderer.NewStyle().Foreground(lipgloss.Color("114")), // green
		Binary: renderer.NewStyle().Foreground(lipgloss.Color("141")), // light purple
		Ext:    renderer.NewStyle().Foreground(lipgloss.Color("220")), // yellow/amber
		Index:  renderer.NewStyle().Foreground(lipgloss.Color("245")), // gray
		Punct:  renderer.NewStyle().Foreground(lipgloss.Color("252")), // near-white
		Offset: renderer.NewStyle().Foreground(lipgloss.Color("240")). // dim gray
			Faint(true),
	}
}

// tokenClass selects which palette style applies to a token.
type tokenClass uint8

const (
	tokenNil tokenClass = iota
	tokenBool
	tokenNumber
	tokenString
	tokenBinary
	tokenExt
	tokenIndex
	tokenPunct
	tokenOffset
)

// style returns the style for class and whether one applies. A nil
// palette applies none.
func (p *Palette) style(class tokenClass) (lipgloss.Style, bool) {
	if p == nil {
		return lipgloss.Style{}, false
	}
	switch class {
	case tokenNil:
		return p.Nil, true
	case tokenBool:
		return p.Bool, true
	case tokenNumber:
		return p.Number, true
	case tokenString:
		return p.String, true
	case tokenBinary:
		return p.Binary, true
	case tokenExt:
		return p.Ext, true
	case tokenIndex:
		return p.Index, true
	case tokenPunct:
		return p.Punct, true
	case tokenOffset:
		return p.Offset, true
	}
	return lipgloss.Style{}, false
}
