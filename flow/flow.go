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

// Package flow offers constructor helpers for the counter and flip-flop
// matcher shapes the original source expressed as dedicated filter
// types. Neither needs a new wire variant: both are plain compositions
// of the existing Matcher/Filter catalog, so they live here rather than
// in package filter, which cannot import matcher without a cycle.
package flow

import (
	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/value"
)

// Count builds a matcher that increments state[counterKey] by step every
// time it is evaluated, then reports whether the counter now equals
// target — and if so, resets state[counterKey] back to zero, mirroring
// the original source's CountFilter (count_filter.rs's filter() resets
// self.state to 0 on a match before returning true). This is what makes
// the resulting matcher cyclical: it fires every target/step
// evaluations, not once in the matcher's lifetime.
func Count(counterKey uint32, step, target value.Value) matcher.Matcher {
	return matcher.And{
		A: matcher.Single{
			Extractor: extractor.None{},
			Filter:    filter.IncrementStateByConst{Key: counterKey, Delta: step},
		},
		B: matcher.And{
			A: matcher.Single{
				Extractor: extractor.None{},
				Filter:    filter.StateEqualToConst{Key: counterKey, Required: target},
			},
			B: matcher.Single{
				Extractor: extractor.None{},
				Filter:    filter.SetStateToConst{Key: counterKey, Literal: zeroOf(target)},
			},
		},
	}
}

// zeroOf returns the zero-valued Value matching v's Kind, used to reset
// a counter after it reaches its target.
func zeroOf(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindU8:
		return value.U8(0)
	case value.KindU16:
		return value.U16(0)
	case value.KindU32:
		return value.U32(0)
	case value.KindBool:
		return value.Bool(false)
	case value.KindRgb:
		return value.Rgb(0, 0, 0)
	case value.KindRgbw:
		return value.Rgbw(0, 0, 0, 0)
	default:
		return v
	}
}

// FlipFlop builds a matcher that negates state[key] (which must hold a
// Bool) every time it is evaluated and always reports true, mirroring
// the original source's FlipFlopFilter.
func FlipFlop(key uint32) matcher.Matcher {
	return matcher.Single{
		Extractor: extractor.None{},
		Filter:    filter.FlipState{Key: key},
	}
}
