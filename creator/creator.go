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

// Package creator implements spec §3/§4.6's Creator: an
// extractor/producer pair gated by an optional matcher.
package creator

import (
	"fmt"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/producer"
	"github.com/linasdev/ross-config/state"
)

// Error wraps a failure from the creator's matcher, extractor, or
// producer, per spec §7's CreatorError{Extractor(e), Producer(e),
// Matcher(e)}.
type Error struct {
	Stage string // "matcher", "extractor", or "producer"
	Cause error
}

func (e *Error) Error() string  { return fmt.Sprintf("creator: %s: %v", e.Stage, e.Cause) }
func (e *Error) Unwrap() error  { return e.Cause }
func matcherErr(c error) error  { return &Error{Stage: "matcher", Cause: c} }
func extractorErr(c error) error { return &Error{Stage: "extractor", Cause: c} }
func producerErr(c error) error { return &Error{Stage: "producer", Cause: c} }

// Creator pairs an extractor and a producer, optionally gated by a
// matcher local to this creator (spec §4.6's three-step algorithm).
type Creator struct {
	Extractor extractor.Extractor
	Producer  producer.Producer
	Matcher   matcher.Matcher // nil if absent
}

// Run executes the three-step algorithm: if Matcher is present and
// evaluates false, or errors, the creator yields nothing (a false
// matcher is not itself an error). Otherwise the extractor runs on p and
// its value is handed to the producer.
func (c Creator) Run(p *packet.Packet, s *state.Manager, deviceAddr uint16) (*packet.Packet, error) {
	if c.Matcher != nil {
		ok, err := c.Matcher.Evaluate(p, s)
		if err != nil {
			return nil, matcherErr(err)
		}
		if !ok {
			return nil, nil
		}
	}
	v, err := c.Extractor.Extract(p)
	if err != nil {
		return nil, extractorErr(err)
	}
	out, err := c.Producer.Produce(v, s, deviceAddr)
	if err != nil {
		return nil, producerErr(err)
	}
	return out, nil
}

// Encode appends the creator's wire form per spec §6.1's Creator
// grammar: framed extractor, framed producer, then an optional-matcher
// flag plus framed matcher.
func Encode(c Creator, dst []byte) []byte {
	dst = extractor.Encode(c.Extractor, dst)
	dst = producer.Encode(c.Producer, dst)
	if c.Matcher == nil {
		return append(dst, 0)
	}
	dst = append(dst, 1)
	return codecutil.PutLenPrefixed32(dst, c.Matcher.Encode(nil))
}

// Decode reads one Creator from the front of b, returning it and the
// number of bytes consumed.
func Decode(b []byte) (Creator, int, error) {
	ext, n1, err := extractor.Decode(b)
	if err != nil {
		return Creator{}, 0, err
	}
	rest := b[n1:]
	prod, n2, err := producer.Decode(rest)
	if err != nil {
		return Creator{}, 0, err
	}
	rest = rest[n2:]
	if err := codecutil.CheckLen(rest, 1); err != nil {
		return Creator{}, 0, err
	}
	present := rest[0]
	rest = rest[1:]
	consumed := n1 + n2 + 1
	if present == 0 {
		return Creator{Extractor: ext, Producer: prod}, consumed, nil
	}
	payload, n3, err := codecutil.ReadLenPrefixed32(rest)
	if err != nil {
		return Creator{}, 0, err
	}
	m, _, err := matcher.Decode(payload)
	if err != nil {
		return Creator{}, 0, err
	}
	return Creator{Extractor: ext, Producer: prod, Matcher: m}, consumed + n3, nil
}
