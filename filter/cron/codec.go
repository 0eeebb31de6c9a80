package cron

import (
	"fmt"

	"github.com/linasdev/ross-config/codecutil"
)

func getU8(b []byte) uint64          { return uint64(b[0]) }
func getU16(b []byte) uint64         { return uint64(codecutil.BE16(b)) }
func putU8(dst []byte, v uint64) []byte  { return append(dst, byte(v)) }
func putU16(dst []byte, v uint64) []byte { return codecutil.PutBE16(dst, uint16(v)) }

// EncodeU8 serializes an 8-bit Field to its wire form (tag + payload, no
// outer length prefix — the caller wraps each field in a u8 length byte).
func EncodeU8(f Field[uint8], dst []byte) []byte {
	return encode(dst, f.tag, f.set, uint64(f.step), uint64(f.from), uint64(f.to), putU8)
}

// EncodeU16 serializes the 16-bit year Field.
func EncodeU16(f Field[uint16], dst []byte) []byte {
	return encode(dst, f.tag, f.set, uint64(f.step), uint64(f.from), uint64(f.to), putU16)
}

func encode[T Unsigned](dst []byte, tag Tag, set []T, step, from, to uint64, put func([]byte, uint64) []byte) []byte {
	dst = append(dst, byte(tag))
	switch tag {
	case TagIncluding, TagExcluding:
		dst = append(dst, byte(len(set)))
		for _, v := range set {
			dst = put(dst, uint64(v))
		}
	case TagEveryFromTo:
		dst = put(dst, step)
		dst = put(dst, from)
		dst = put(dst, to)
	case TagAny:
	}
	return dst
}

// DecodeU8 parses an 8-bit Field from the front of b (after the tag byte
// has already been consumed is NOT the contract — b starts at the tag
// byte). Returns the field and bytes consumed.
func DecodeU8(b []byte) (Field[uint8], int, error) {
	return decode[uint8](b, 1, getU8)
}

// DecodeU16 parses the 16-bit year Field.
func DecodeU16(b []byte) (Field[uint16], int, error) {
	return decode[uint16](b, 2, getU16)
}

func decode[T Unsigned](b []byte, elemWidth int, get func([]byte) uint64) (Field[T], int, error) {
	if err := codecutil.CheckLen(b, 1); err != nil {
		return Field[T]{}, 0, err
	}
	tag := Tag(b[0])
	off := 1
	switch tag {
	case TagIncluding, TagExcluding:
		if err := codecutil.CheckLen(b[off:], 1); err != nil {
			return Field[T]{}, 0, err
		}
		count := int(b[off])
		off++
		if err := codecutil.CheckLen(b[off:], count*elemWidth); err != nil {
			return Field[T]{}, 0, err
		}
		set := make([]T, count)
		for i := 0; i < count; i++ {
			set[i] = T(get(b[off : off+elemWidth]))
			off += elemWidth
		}
		return Field[T]{tag: tag, set: sortedCopy(set)}, off, nil
	case TagEveryFromTo:
		if err := codecutil.CheckLen(b[off:], 3*elemWidth); err != nil {
			return Field[T]{}, 0, err
		}
		step := T(get(b[off : off+elemWidth]))
		off += elemWidth
		from := T(get(b[off : off+elemWidth]))
		off += elemWidth
		to := T(get(b[off : off+elemWidth]))
		off += elemWidth
		return Field[T]{tag: tag, step: step, from: from, to: to}, off, nil
	case TagAny:
		return Field[T]{tag: tag}, off, nil
	default:
		return Field[T]{}, 0, fmt.Errorf("%w: cron field tag 0x%02x", codecutil.ErrUnknownEnumVariant, tag)
	}
}
