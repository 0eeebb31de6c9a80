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

// Package cron implements the calendar predicate consumed by the
// TimeMatchesCronExpression filter (spec §3, §6.1): a seven-field
// expression, each field independently Including/Excluding a set,
// stepping EveryFromTo, or matching Any value.
//
// Per spec §9's open question, Including and Excluding are both
// implemented as plain set membership: the original source's match
// function tests S.contains(x) for both tags even though they serialize
// to distinct wire bytes. That is preserved here literally rather than
// "fixed", since the config-authoring tool on the other end of this wire
// format may depend on the existing (if surprising) behavior.
package cron

import "sort"

// Tag selects a Field's variant.
type Tag uint8

const (
	TagIncluding Tag = 0x00
	TagExcluding Tag = 0x01
	TagEveryFromTo Tag = 0x02
	TagAny Tag = 0x03
)

// Unsigned is the set of integer widths a cron Field can hold: u8 for
// every field but year, u16 for year.
type Unsigned interface {
	~uint8 | ~uint16
}

// Field is one component of a CronExpression.
type Field[T Unsigned] struct {
	tag    Tag
	set    []T // Including/Excluding, kept sorted
	step   T
	from   T
	to     T
}

// Including builds a Field that matches values in set (see package doc for
// why Excluding behaves the same way).
func Including[T Unsigned](set ...T) Field[T] {
	return Field[T]{tag: TagIncluding, set: sortedCopy(set)}
}

// Excluding builds a Field with the Excluding wire tag. Its match
// semantics are identical to Including; see the package doc.
func Excluding[T Unsigned](set ...T) Field[T] {
	return Field[T]{tag: TagExcluding, set: sortedCopy(set)}
}

// EveryFromTo builds a Field that matches from, from+step, from+2*step,
// ... up to and including to.
func EveryFromTo[T Unsigned](step, from, to T) Field[T] {
	return Field[T]{tag: TagEveryFromTo, step: step, from: from, to: to}
}

// Any builds a Field that matches every value.
func Any[T Unsigned]() Field[T] {
	return Field[T]{tag: TagAny}
}

// Tag reports the field's wire variant.
func (f Field[T]) Tag() Tag { return f.tag }

// Match reports whether x satisfies the field.
func (f Field[T]) Match(x T) bool {
	switch f.tag {
	case TagIncluding, TagExcluding:
		i := sort.Search(len(f.set), func(i int) bool { return f.set[i] >= x })
		return i < len(f.set) && f.set[i] == x
	case TagEveryFromTo:
		if x < f.from || x > f.to {
			return false
		}
		if f.step == 0 {
			return x == f.from
		}
		return (x-f.from)%f.step == 0
	case TagAny:
		return true
	default:
		return false
	}
}

func sortedCopy[T Unsigned](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
