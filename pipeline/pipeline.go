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

// Package pipeline defines ExtractorValue, the transient value that flows
// from an Extractor into a Filter or Producer for the duration of one
// evaluation step (spec §3). Unlike value.Value it may additionally be
// None or a borrowed Packet, and it is never stored in the state manager
// — that asymmetry is why it lives in its own package rather than next to
// value.Value: value.Value must not depend on packet.Packet (the state
// store has no business knowing about bus frames), but ExtractorValue
// must depend on both.
package pipeline

import (
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/value"
)

// Kind tags the active variant of an ExtractorValue.
type Kind uint8

const (
	KindNone Kind = iota
	KindU8
	KindU16
	KindU32
	KindBool
	KindPacket
)

// ExtractorValue is the pipeline value produced by an Extractor and
// consumed by a Filter or Producer.
type ExtractorValue struct {
	kind Kind
	u32  uint32
	b    bool
	pkt  *packet.Packet
}

// None is the value produced by the None extractor and by any extractor
// whose preconditions aren't met in a way that is not itself an error.
var None = ExtractorValue{kind: KindNone}

// U8 wraps an 8-bit integer.
func U8(v uint8) ExtractorValue { return ExtractorValue{kind: KindU8, u32: uint32(v)} }

// U16 wraps a 16-bit integer.
func U16(v uint16) ExtractorValue { return ExtractorValue{kind: KindU16, u32: uint32(v)} }

// U32 wraps a 32-bit integer.
func U32(v uint32) ExtractorValue { return ExtractorValue{kind: KindU32, u32: v} }

// Bool wraps a boolean.
func Bool(v bool) ExtractorValue { return ExtractorValue{kind: KindBool, b: v} }

// FromPacket wraps a borrowed Packet reference.
func FromPacket(p *packet.Packet) ExtractorValue { return ExtractorValue{kind: KindPacket, pkt: p} }

// FromValue lifts a stored value.Value into the pipeline (Rgb/Rgbw have no
// ExtractorValue representation and lift to None).
func FromValue(v value.Value) ExtractorValue {
	switch v.Kind() {
	case value.KindU8:
		u, _ := v.U8()
		return U8(u)
	case value.KindU16:
		u, _ := v.U16()
		return U16(u)
	case value.KindU32:
		u, _ := v.U32()
		return U32(u)
	case value.KindBool:
		b, _ := v.Bool()
		return Bool(b)
	default:
		return None
	}
}

// Kind reports the active variant.
func (v ExtractorValue) Kind() Kind { return v.kind }

// U8 returns the held integer and whether the Kind matched.
func (v ExtractorValue) U8() (uint8, bool) {
	if v.kind != KindU8 {
		return 0, false
	}
	return uint8(v.u32), true
}

// U16 returns the held integer and whether the Kind matched.
func (v ExtractorValue) U16() (uint16, bool) {
	if v.kind != KindU16 {
		return 0, false
	}
	return uint16(v.u32), true
}

// U32 returns the held integer and whether the Kind matched.
func (v ExtractorValue) U32() (uint32, bool) {
	if v.kind != KindU32 {
		return 0, false
	}
	return v.u32, true
}

// Bool returns the held boolean and whether the Kind matched.
func (v ExtractorValue) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Packet returns the borrowed Packet and whether the Kind matched.
func (v ExtractorValue) Packet() (*packet.Packet, bool) {
	if v.kind != KindPacket {
		return nil, false
	}
	return v.pkt, true
}

// AsValue converts a U8/U16/U32/Bool ExtractorValue into the equivalent
// stored value.Value. None and Packet have no equivalent and return
// ok=false.
func (v ExtractorValue) AsValue() (value.Value, bool) {
	switch v.kind {
	case KindU8:
		u, _ := v.U8()
		return value.U8(u), true
	case KindU16:
		u, _ := v.U16()
		return value.U16(u), true
	case KindU32:
		u, _ := v.U32()
		return value.U32(u), true
	case KindBool:
		b, _ := v.Bool()
		return value.Bool(b), true
	default:
		return value.Value{}, false
	}
}
