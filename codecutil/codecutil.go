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

// Package codecutil holds the small set of big-endian read/write helpers
// and the codec error sentinels shared by every package that implements a
// piece of the binary configuration format (spec §6.1). CheckLen and the
// ReadLenPrefixed helpers return ErrWrongSize instead of running off the
// end of a buffer; BE16 and BE32 do no bounds check of their own, so
// callers bounds-check with CheckLen before calling them.
package codecutil

import "errors"

// Codec error taxonomy (spec §7 CodecError).
var (
	// ErrWrongSize means the input was truncated, or a length prefix
	// claims more bytes than remain in the buffer.
	ErrWrongSize = errors.New("codec: wrong size")
	// ErrUnknownEnumVariant means a tag byte did not match any known
	// variant of a closed sum type (Value, Matcher, CronField, ...).
	ErrUnknownEnumVariant = errors.New("codec: unknown enum variant")
	// ErrUnknownExtractor means a u16 extractor type code had no match.
	ErrUnknownExtractor = errors.New("codec: unknown extractor code")
	// ErrUnknownFilter means a u16 filter type code had no match.
	ErrUnknownFilter = errors.New("codec: unknown filter code")
	// ErrUnknownProducer means a u16 producer type code had no match.
	ErrUnknownProducer = errors.New("codec: unknown producer code")
)

// BE16 reads a big-endian uint16 from the first 2 bytes of b. Callers must
// ensure len(b) >= 2.
func BE16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// BE32 reads a big-endian uint32 from the first 4 bytes of b. Callers must
// ensure len(b) >= 4.
func BE32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// PutBE16 appends the big-endian encoding of v to dst.
func PutBE16(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

// PutBE32 appends the big-endian encoding of v to dst.
func PutBE32(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// CheckLen reports ErrWrongSize if b is shorter than n bytes.
func CheckLen(b []byte, n int) error {
	if len(b) < n {
		return ErrWrongSize
	}
	return nil
}

// ReadLenPrefixed8 reads a u8-length-prefixed byte slice from the front of
// b: one length byte followed by that many payload bytes. It returns the
// payload and the total number of bytes consumed (1 + length).
func ReadLenPrefixed8(b []byte) (payload []byte, consumed int, err error) {
	if err := CheckLen(b, 1); err != nil {
		return nil, 0, err
	}
	n := int(b[0])
	if err := CheckLen(b[1:], n); err != nil {
		return nil, 0, err
	}
	return b[1 : 1+n], 1 + n, nil
}

// ReadLenPrefixed32 reads a u32-length-prefixed byte slice from the front
// of b: a 4-byte big-endian length followed by that many payload bytes.
func ReadLenPrefixed32(b []byte) (payload []byte, consumed int, err error) {
	if err := CheckLen(b, 4); err != nil {
		return nil, 0, err
	}
	n := int(BE32(b))
	if err := CheckLen(b[4:], n); err != nil {
		return nil, 0, err
	}
	return b[4 : 4+n], 4 + n, nil
}

// PutLenPrefixed8 appends a u8 length prefix followed by payload to dst.
// It is the caller's responsibility to ensure len(payload) <= 255.
func PutLenPrefixed8(dst []byte, payload []byte) []byte {
	dst = append(dst, byte(len(payload)))
	return append(dst, payload...)
}

// PutLenPrefixed32 appends a u32 length prefix followed by payload to dst.
func PutLenPrefixed32(dst []byte, payload []byte) []byte {
	dst = PutBE32(dst, uint32(len(payload)))
	return append(dst, payload...)
}
