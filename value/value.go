// Copyright 2024 The ross-config Authors
// This file is part of the ross-config library.
//
// The ross-config library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ross-config library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ross-config library. If not, see <http://www.gnu.org/licenses/>.

// Package value defines Value, the owned typed scalar held by the state
// store and used for literal operands. The transient pipeline value,
// ExtractorValue, lives in package pipeline.
package value

import (
	"errors"
	"fmt"
)

// Kind tags the active variant of a Value.
type Kind uint8

const (
	KindU8 Kind = iota
	KindU16
	KindU32
	KindBool
	KindRgb
	KindRgbw
)

// String renders the kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindBool:
		return "bool"
	case KindRgb:
		return "rgb"
	case KindRgbw:
		return "rgbw"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ErrKindMismatch is returned by comparisons and arithmetic that require
// both operands to share a variant.
var ErrKindMismatch = errors.New("value: kind mismatch")

// ErrNotArithmetic is returned by Add/Sub on a variant that carries no
// well-defined wrapping arithmetic (Bool, Rgb, Rgbw).
var ErrNotArithmetic = errors.New("value: kind has no arithmetic")

// Value is the persistent scalar type held by the state store and used as
// literal operands in the configuration. Equality is structural and only
// ever true between values of identical Kind.
type Value struct {
	kind Kind
	u32  uint32 // backs U8/U16/U32, truncated to width on read
	b    bool
	rgb  [4]uint8 // Rgb uses [0:3], Rgbw uses all four
}

// U8 constructs a Value holding an unsigned 8-bit integer.
func U8(v uint8) Value { return Value{kind: KindU8, u32: uint32(v)} }

// U16 constructs a Value holding an unsigned 16-bit integer.
func U16(v uint16) Value { return Value{kind: KindU16, u32: uint32(v)} }

// U32 constructs a Value holding an unsigned 32-bit integer.
func U32(v uint32) Value { return Value{kind: KindU32, u32: v} }

// Bool constructs a Value holding a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Rgb constructs a Value holding three 8-bit channels.
func Rgb(r, g, b uint8) Value { return Value{kind: KindRgb, rgb: [4]uint8{r, g, b, 0}} }

// Rgbw constructs a Value holding four 8-bit channels.
func Rgbw(r, g, b, w uint8) Value { return Value{kind: KindRgbw, rgb: [4]uint8{r, g, b, w}} }

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// U8 returns the held 8-bit integer and whether the Kind matched.
func (v Value) U8() (uint8, bool) {
	if v.kind != KindU8 {
		return 0, false
	}
	return uint8(v.u32), true
}

// U16 returns the held 16-bit integer and whether the Kind matched.
func (v Value) U16() (uint16, bool) {
	if v.kind != KindU16 {
		return 0, false
	}
	return uint16(v.u32), true
}

// U32 returns the held 32-bit integer and whether the Kind matched.
func (v Value) U32() (uint32, bool) {
	if v.kind != KindU32 {
		return 0, false
	}
	return v.u32, true
}

// Bool returns the held boolean and whether the Kind matched.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Rgb returns the held channels and whether the Kind matched.
func (v Value) Rgb() (r, g, b uint8, ok bool) {
	if v.kind != KindRgb {
		return 0, 0, 0, false
	}
	return v.rgb[0], v.rgb[1], v.rgb[2], true
}

// Rgbw returns the held channels and whether the Kind matched.
func (v Value) Rgbw() (r, g, b, w uint8, ok bool) {
	if v.kind != KindRgbw {
		return 0, 0, 0, 0, false
	}
	return v.rgb[0], v.rgb[1], v.rgb[2], v.rgb[3], true
}

// Equal reports structural equality. Values of different Kind are never
// equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindU8, KindU16, KindU32:
		return v.u32 == other.u32
	case KindBool:
		return v.b == other.b
	case KindRgb:
		return v.rgb[0] == other.rgb[0] && v.rgb[1] == other.rgb[1] && v.rgb[2] == other.rgb[2]
	case KindRgbw:
		return v.rgb == other.rgb
	default:
		return false
	}
}

// Less reports whether v < other. Only defined within a single Kind;
// ErrKindMismatch otherwise. Rgb/Rgbw use tuple (lexicographic) order.
func (v Value) Less(other Value) (bool, error) {
	if v.kind != other.kind {
		return false, fmt.Errorf("%w: %s vs %s", ErrKindMismatch, v.kind, other.kind)
	}
	switch v.kind {
	case KindU8, KindU16, KindU32:
		return v.u32 < other.u32, nil
	case KindBool:
		return !v.b && other.b, nil
	case KindRgb:
		return lexLess(v.rgb[:3], other.rgb[:3]), nil
	case KindRgbw:
		return lexLess(v.rgb[:4], other.rgb[:4]), nil
	default:
		return false, fmt.Errorf("%w: %s", ErrKindMismatch, v.kind)
	}
}

// More reports whether v > other, with the same rules as Less.
func (v Value) More(other Value) (bool, error) {
	lt, err := other.Less(v)
	return lt, err
}

func lexLess(a, b []uint8) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Add performs wrapping addition within a Kind. U8/U16/U32 wrap around
// their width; Bool/Rgb/Rgbw have no arithmetic and return
// ErrNotArithmetic.
func (v Value) Add(delta Value) (Value, error) {
	return v.arith(delta, func(a, b uint32) uint32 { return a + b })
}

// Sub performs wrapping subtraction within a Kind, mirroring Add.
func (v Value) Sub(delta Value) (Value, error) {
	return v.arith(delta, func(a, b uint32) uint32 { return a - b })
}

func (v Value) arith(delta Value, op func(a, b uint32) uint32) (Value, error) {
	if v.kind != delta.kind {
		return Value{}, fmt.Errorf("%w: %s vs %s", ErrKindMismatch, v.kind, delta.kind)
	}
	switch v.kind {
	case KindU8:
		return U8(uint8(op(v.u32, delta.u32))), nil
	case KindU16:
		return U16(uint16(op(v.u32, delta.u32))), nil
	case KindU32:
		return U32(op(v.u32, delta.u32)), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrNotArithmetic, v.kind)
	}
}

// GoString renders v in constructor syntax for %#v formatting with the fmt
// package. go-spew does not call it; spew dumps the struct fields.
func (v Value) GoString() string {
	switch v.kind {
	case KindU8:
		u, _ := v.U8()
		return fmt.Sprintf("value.U8(%d)", u)
	case KindU16:
		u, _ := v.U16()
		return fmt.Sprintf("value.U16(%d)", u)
	case KindU32:
		u, _ := v.U32()
		return fmt.Sprintf("value.U32(%d)", u)
	case KindBool:
		b, _ := v.Bool()
		return fmt.Sprintf("value.Bool(%t)", b)
	case KindRgb:
		r, g, b, _ := v.Rgb()
		return fmt.Sprintf("value.Rgb(%d,%d,%d)", r, g, b)
	case KindRgbw:
		r, g, b, w, _ := v.Rgbw()
		return fmt.Sprintf("value.Rgbw(%d,%d,%d,%d)", r, g, b, w)
	default:
		return "value.Value{}"
	}
}
