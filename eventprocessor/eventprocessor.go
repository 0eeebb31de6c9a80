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

// Package eventprocessor implements spec §3/§4.7's EventProcessor: a
// top-level matcher gate over a declared-order list of creators.
package eventprocessor

import (
	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/creator"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/state"
)

// EventProcessor gates a list of creators behind a single top-level
// matcher.
type EventProcessor struct {
	Matcher  matcher.Matcher
	Creators []creator.Creator
}

// Run evaluates Matcher once; on false it yields no packets and no
// error. On true, every creator runs in declared order: a creator that
// errors has its error appended to errs and the remaining creators still
// run (collect-and-continue). An error from Matcher itself is returned as
// gateErr and no creator runs.
func Run(ep EventProcessor, p *packet.Packet, s *state.Manager, deviceAddr uint16) (outputs []*packet.Packet, errs []error, gateErr error) {
	ok, err := ep.Matcher.Evaluate(p, s)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, nil
	}
	for _, c := range ep.Creators {
		out, err := c.Run(p, s, deviceAddr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if out != nil {
			outputs = append(outputs, out)
		}
	}
	return outputs, errs, nil
}

// Encode appends ep's wire form per spec §6.1: framed top-level matcher,
// u32 creator count, then each creator in order.
func Encode(ep EventProcessor, dst []byte) []byte {
	dst = codecutil.PutLenPrefixed32(dst, ep.Matcher.Encode(nil))
	dst = codecutil.PutBE32(dst, uint32(len(ep.Creators)))
	for _, c := range ep.Creators {
		dst = creator.Encode(c, dst)
	}
	return dst
}

// Decode reads one EventProcessor from the front of b, returning it and
// the number of bytes consumed.
func Decode(b []byte) (EventProcessor, int, error) {
	matcherBytes, n1, err := codecutil.ReadLenPrefixed32(b)
	if err != nil {
		return EventProcessor{}, 0, err
	}
	m, _, err := matcher.Decode(matcherBytes)
	if err != nil {
		return EventProcessor{}, 0, err
	}
	rest := b[n1:]
	if err := codecutil.CheckLen(rest, 4); err != nil {
		return EventProcessor{}, 0, err
	}
	count := codecutil.BE32(rest)
	rest = rest[4:]
	consumed := n1 + 4
	creators := make([]creator.Creator, 0, count)
	for i := uint32(0); i < count; i++ {
		c, n, err := creator.Decode(rest)
		if err != nil {
			return EventProcessor{}, 0, err
		}
		creators = append(creators, c)
		rest = rest[n:]
		consumed += n
	}
	return EventProcessor{Matcher: m, Creators: creators}, consumed, nil
}
