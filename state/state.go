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

// Package state holds the engine's persistent key/value store and wall
// clock snapshot (spec §4.1). It never enforces a per-key schema — that is
// the caller's (filter's) job, which is why Get returns the raw Value and
// leaves variant checking to the caller.
package state

import (
	"sort"
	"time"

	"github.com/linasdev/ross-config/value"
)

// Manager is a keyed mutable store of value.Value plus a single clock
// field. There is no delete operation: once a key is set it stays present
// for the lifetime of the Manager (spec §3 state-monotonicity invariant).
type Manager struct {
	values map[uint32]value.Value
	clock  time.Time
}

// New returns an empty Manager with the clock defaulted to the Unix epoch,
// per spec §4.1.
func New() *Manager {
	return &Manager{
		values: make(map[uint32]value.Value),
		clock:  time.Unix(0, 0).UTC(),
	}
}

// Get returns the Value stored at k, if any.
func (m *Manager) Get(k uint32) (value.Value, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Set inserts or overwrites the Value stored at k. A subsequent Get(k)
// within the same evaluation step always returns exactly v.
func (m *Manager) Set(k uint32, v value.Value) {
	m.values[k] = v
}

// Time returns the current clock snapshot.
func (m *Manager) Time() time.Time { return m.clock }

// SetTime overwrites the clock snapshot.
func (m *Manager) SetTime(t time.Time) { m.clock = t }

// Len reports the number of distinct keys currently stored.
func (m *Manager) Len() int { return len(m.values) }

// Keys returns the currently stored keys in ascending order, for
// deterministic iteration (dumping, snapshotting, equality checks).
func (m *Manager) Keys() []uint32 {
	keys := make([]uint32, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns a copy whose entries can be changed without affecting m.
func (m *Manager) Clone() *Manager {
	cpy := &Manager{
		values: make(map[uint32]value.Value, len(m.values)),
		clock:  m.clock,
	}
	for k, v := range m.values {
		cpy.values[k] = v
	}
	return cpy
}
