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

// Package matcher implements the boolean combinator tree of spec §3/§4.5:
// Single leaves over (Extractor, Filter) composed with Not/And/Or,
// evaluated depth-first with left-to-right short circuit. An error from
// any leaf aborts evaluation of the whole tree with that error — it is
// never folded into a false result.
package matcher

import (
	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/state"
)

// Wire tags, fixed by spec §6.1.
const (
	TagSingle uint8 = 0x00
	TagNot    uint8 = 0x01
	TagOr     uint8 = 0x02
	TagAnd    uint8 = 0x03
)

// Matcher evaluates a packet (and, for leaves, the state store) to a
// boolean.
type Matcher interface {
	// Tag returns the matcher node's stable wire tag.
	Tag() uint8
	// Evaluate runs the matcher against p, possibly mutating s through a
	// leaf's filter.
	Evaluate(p *packet.Packet, s *state.Manager) (bool, error)
	// Encode appends the node's full wire form (tag plus framed body) to
	// dst.
	Encode(dst []byte) []byte
}

// Single extracts a value from p and applies Filter to it.
type Single struct {
	Extractor extractor.Extractor
	Filter    filter.Filter
}

func (Single) Tag() uint8 { return TagSingle }

func (m Single) Evaluate(p *packet.Packet, s *state.Manager) (bool, error) {
	v, err := m.Extractor.Extract(p)
	if err != nil {
		return false, extractorErr(err)
	}
	ok, err := m.Filter.Apply(v, s)
	if err != nil {
		return false, filterErr(err)
	}
	return ok, nil
}

func (m Single) Encode(dst []byte) []byte {
	dst = append(dst, TagSingle)
	dst = extractor.Encode(m.Extractor, dst)
	return filter.Encode(m.Filter, dst)
}

// Not inverts the result of Inner.
type Not struct{ Inner Matcher }

func (Not) Tag() uint8 { return TagNot }

func (m Not) Evaluate(p *packet.Packet, s *state.Manager) (bool, error) {
	ok, err := m.Inner.Evaluate(p, s)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (m Not) Encode(dst []byte) []byte {
	dst = append(dst, TagNot)
	return codecutil.PutLenPrefixed32(dst, m.Inner.Encode(nil))
}

// Or evaluates A; if true, short-circuits without evaluating B.
type Or struct{ A, B Matcher }

func (Or) Tag() uint8 { return TagOr }

func (m Or) Evaluate(p *packet.Packet, s *state.Manager) (bool, error) {
	a, err := m.A.Evaluate(p, s)
	if err != nil {
		return false, err
	}
	if a {
		return true, nil
	}
	return m.B.Evaluate(p, s)
}

func (m Or) Encode(dst []byte) []byte {
	dst = append(dst, TagOr)
	dst = codecutil.PutLenPrefixed32(dst, m.A.Encode(nil))
	return codecutil.PutLenPrefixed32(dst, m.B.Encode(nil))
}

// And evaluates A; if false, short-circuits without evaluating B.
type And struct{ A, B Matcher }

func (And) Tag() uint8 { return TagAnd }

func (m And) Evaluate(p *packet.Packet, s *state.Manager) (bool, error) {
	a, err := m.A.Evaluate(p, s)
	if err != nil {
		return false, err
	}
	if !a {
		return false, nil
	}
	return m.B.Evaluate(p, s)
}

func (m And) Encode(dst []byte) []byte {
	dst = append(dst, TagAnd)
	dst = codecutil.PutLenPrefixed32(dst, m.A.Encode(nil))
	return codecutil.PutLenPrefixed32(dst, m.B.Encode(nil))
}

// Decode reads one tagged Matcher node from the front of b, returning it
// and the number of bytes consumed. Children of Not/Or/And are framed
// with a u32 length prefix (spec §6.1); Decode recurses into each framed
// slice exactly.
func Decode(b []byte) (Matcher, int, error) {
	if err := codecutil.CheckLen(b, 1); err != nil {
		return nil, 0, err
	}
	tag := b[0]
	rest := b[1:]
	switch tag {
	case TagSingle:
		ext, n1, err := extractor.Decode(rest)
		if err != nil {
			return nil, 0, err
		}
		f, n2, err := filter.Decode(rest[n1:])
		if err != nil {
			return nil, 0, err
		}
		return Single{Extractor: ext, Filter: f}, 1 + n1 + n2, nil
	case TagNot:
		inner, n, err := decodeFramed(rest)
		if err != nil {
			return nil, 0, err
		}
		return Not{Inner: inner}, 1 + n, nil
	case TagOr:
		a, na, b2, nb, err := decodePair(rest)
		if err != nil {
			return nil, 0, err
		}
		return Or{A: a, B: b2}, 1 + na + nb, nil
	case TagAnd:
		a, na, b2, nb, err := decodePair(rest)
		if err != nil {
			return nil, 0, err
		}
		return And{A: a, B: b2}, 1 + na + nb, nil
	default:
		return nil, 0, codecutil.ErrUnknownEnumVariant
	}
}

func decodeFramed(b []byte) (Matcher, int, error) {
	payload, consumed, err := codecutil.ReadLenPrefixed32(b)
	if err != nil {
		return nil, 0, err
	}
	m, _, err := Decode(payload)
	if err != nil {
		return nil, 0, err
	}
	return m, consumed, nil
}

func decodePair(b []byte) (a Matcher, aConsumed int, b2 Matcher, bConsumed int, err error) {
	a, aConsumed, err = decodeFramed(b)
	if err != nil {
		return nil, 0, nil, 0, err
	}
	b2, bConsumed, err = decodeFramed(b[aConsumed:])
	if err != nil {
		return nil, 0, nil, 0, err
	}
	return a, aConsumed, b2, bConsumed, nil
}
