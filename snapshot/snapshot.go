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

// Package snapshot dumps and restores a state.Manager's contents for
// debugging and warm-restart tooling. It never touches flash or EEPROM
// itself — that I/O is an external collaborator per spec §1 — it only
// produces and consumes an in-memory compressed byte slice.
package snapshot

import (
	"github.com/golang/snappy"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

// Encode renders s's entries (key, value pairs only — not the clock,
// which is owned by the wall-clock source) to a snappy-compressed byte
// slice.
func Encode(s *state.Manager) []byte {
	keys := s.Keys()
	raw := codecutil.PutBE32(nil, uint32(len(keys)))
	for _, k := range keys {
		v, _ := s.Get(k)
		raw = codecutil.PutBE32(raw, k)
		raw = codecutil.PutLenPrefixed8(raw, v.Encode(nil))
	}
	return snappy.Encode(nil, raw)
}

// Decode restores a state.Manager from a snapshot produced by Encode.
// The clock is left at Decode's caller-visible default (Unix epoch);
// callers that need the clock restored should call SetTime separately.
func Decode(compressed []byte) (*state.Manager, error) {
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, err
	}
	if err := codecutil.CheckLen(raw, 4); err != nil {
		return nil, err
	}
	count := codecutil.BE32(raw)
	raw = raw[4:]

	s := state.New()
	for i := uint32(0); i < count; i++ {
		if err := codecutil.CheckLen(raw, 4); err != nil {
			return nil, err
		}
		key := codecutil.BE32(raw)
		raw = raw[4:]
		payload, consumed, err := codecutil.ReadLenPrefixed8(raw)
		if err != nil {
			return nil, err
		}
		v, _, err := value.Decode(payload)
		if err != nil {
			return nil, err
		}
		s.Set(key, v)
		raw = raw[consumed:]
	}
	return s, nil
}
