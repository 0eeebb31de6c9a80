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

// Package config implements spec §3/§6.1's Config: the bit-exact,
// big-endian binary format a host tool produces and the engine loads
// once at boot. Serialize/Deserialize round-trip byte-for-byte; every
// truncated or malformed prefix fails closed with a CodecError rather
// than panicking (spec §8's truncation-safety property).
package config

import (
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/eventprocessor"
	"github.com/linasdev/ross-config/value"
)

// Config is the engine's complete boot-time configuration: the initial
// contents of the state store and the ordered list of event processors.
type Config struct {
	InitialState   map[uint32]value.Value
	EventProcessors []eventprocessor.EventProcessor
}

// Serialize renders c to its bit-exact wire form.
//
// initial_state entries are written in ascending key order so that two
// Configs holding the same logical state always serialize identically
// regardless of map iteration order — required for the codec round-trip
// and determinism properties of spec §8.
func Serialize(c Config) []byte {
	keys := make([]uint32, 0, len(c.InitialState))
	for k := range c.InitialState {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	dst := codecutil.PutBE32(nil, uint32(len(keys)))
	for _, k := range keys {
		dst = codecutil.PutBE32(dst, k)
		dst = codecutil.PutLenPrefixed8(dst, c.InitialState[k].Encode(nil))
	}

	dst = codecutil.PutBE32(dst, uint32(len(c.EventProcessors)))
	for _, ep := range c.EventProcessors {
		dst = eventprocessor.Encode(ep, dst)
	}
	return dst
}

// Deserialize parses a Config from b. It never succeeds on a truncated or
// malformed input; every failure is a CodecError from codecutil.
func Deserialize(b []byte) (Config, error) {
	if err := codecutil.CheckLen(b, 4); err != nil {
		return Config{}, err
	}
	stateCount := codecutil.BE32(b)
	b = b[4:]

	initial := make(map[uint32]value.Value, stateCount)
	for i := uint32(0); i < stateCount; i++ {
		if err := codecutil.CheckLen(b, 4); err != nil {
			return Config{}, err
		}
		key := codecutil.BE32(b)
		b = b[4:]
		payload, consumed, err := codecutil.ReadLenPrefixed8(b)
		if err != nil {
			return Config{}, err
		}
		v, _, err := value.Decode(payload)
		if err != nil {
			return Config{}, err
		}
		initial[key] = v
		b = b[consumed:]
	}

	if err := codecutil.CheckLen(b, 4); err != nil {
		return Config{}, err
	}
	epCount := codecutil.BE32(b)
	b = b[4:]

	eps := make([]eventprocessor.EventProcessor, 0, epCount)
	for i := uint32(0); i < epCount; i++ {
		ep, consumed, err := eventprocessor.Decode(b)
		if err != nil {
			return Config{}, err
		}
		eps = append(eps, ep)
		b = b[consumed:]
	}

	return Config{InitialState: initial, EventProcessors: eps}, nil
}

// Digest returns the Keccak-256 content fingerprint of c's serialized
// form, letting a host tool verify a blob hasn't drifted from the
// Config it was generated from without keeping the whole byte slice
// around. Grounded on the teacher's crypto.Keccak256 helper, which
// wraps the same legacy-Keccak construction rather than standard SHA-3.
func Digest(c Config) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(Serialize(c))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
