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

package extractor

import (
	"errors"
	"fmt"
)

// Sentinel errors making up spec §7's ExtractorError taxonomy. Callers
// should match with errors.Is rather than comparing Error values directly.
var (
	ErrPacketTooShort = errors.New("extractor: packet too short")
	ErrConvertPacket  = errors.New("extractor: convert packet error")
	ErrConvertValue   = errors.New("extractor: convert value error")
)

// Error wraps one of the sentinels above together with, where available,
// the underlying cause returned by a ConvertPacket round-trip.
type Error struct {
	Sentinel error
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Sentinel, e.Cause)
	}
	return e.Sentinel.Error()
}

// Unwrap lets errors.Is match both the taxonomy sentinel and the
// underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Sentinel, e.Cause}
	}
	return []error{e.Sentinel}
}

func tooShort(cause error) *Error { return &Error{Sentinel: ErrPacketTooShort, Cause: cause} }
func convertPacket(cause error) *Error { return &Error{Sentinel: ErrConvertPacket, Cause: cause} }
