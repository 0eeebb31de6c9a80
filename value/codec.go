package value

import (
	"fmt"

	"github.com/linasdev/ross-config/codecutil"
)

// Wire tags for the Value union, fixed by the binary configuration format.
const (
	TagU8   byte = 0x00
	TagU16  byte = 0x01
	TagU32  byte = 0x02
	TagBool byte = 0x03
	TagRgb  byte = 0x04
	TagRgbw byte = 0x05
)

// Size returns the on-wire payload length for v's Kind, not counting the
// leading tag byte.
func (v Value) Size() int {
	switch v.kind {
	case KindU8, KindBool:
		return 1
	case KindU16:
		return 2
	case KindU32:
		return 4
	case KindRgb:
		return 3
	case KindRgbw:
		return 4
	default:
		return 0
	}
}

// Encode appends the tag byte followed by the big-endian payload to dst and
// returns the result.
func (v Value) Encode(dst []byte) []byte {
	switch v.kind {
	case KindU8:
		u, _ := v.U8()
		return append(dst, TagU8, u)
	case KindU16:
		u, _ := v.U16()
		return append(dst, TagU16, byte(u>>8), byte(u))
	case KindU32:
		u, _ := v.U32()
		return append(dst, TagU32, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	case KindBool:
		b, _ := v.Bool()
		var bb byte
		if b {
			bb = 1
		}
		return append(dst, TagBool, bb)
	case KindRgb:
		r, g, bl, _ := v.Rgb()
		return append(dst, TagRgb, r, g, bl)
	case KindRgbw:
		r, g, bl, w, _ := v.Rgbw()
		return append(dst, TagRgbw, r, g, bl, w)
	default:
		return dst
	}
}

// Decode reads a single tagged Value from the front of b, returning the
// value and the number of bytes consumed (tag + payload).
func Decode(b []byte) (Value, int, error) {
	if len(b) < 1 {
		return Value{}, 0, codecutil.ErrWrongSize
	}
	tag := b[0]
	body := b[1:]
	switch tag {
	case TagU8:
		if len(body) < 1 {
			return Value{}, 0, codecutil.ErrWrongSize
		}
		return U8(body[0]), 2, nil
	case TagU16:
		if len(body) < 2 {
			return Value{}, 0, codecutil.ErrWrongSize
		}
		return U16(codecutil.BE16(body)), 3, nil
	case TagU32:
		if len(body) < 4 {
			return Value{}, 0, codecutil.ErrWrongSize
		}
		return U32(codecutil.BE32(body)), 5, nil
	case TagBool:
		if len(body) < 1 {
			return Value{}, 0, codecutil.ErrWrongSize
		}
		return Bool(body[0] != 0), 2, nil
	case TagRgb:
		if len(body) < 3 {
			return Value{}, 0, codecutil.ErrWrongSize
		}
		return Rgb(body[0], body[1], body[2]), 4, nil
	case TagRgbw:
		if len(body) < 4 {
			return Value{}, 0, codecutil.ErrWrongSize
		}
		return Rgbw(body[0], body[1], body[2], body[3]), 5, nil
	default:
		return Value{}, 0, fmt.Errorf("%w: value tag 0x%02x", codecutil.ErrUnknownEnumVariant, tag)
	}
}
