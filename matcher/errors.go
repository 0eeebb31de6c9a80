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

package matcher

import "fmt"

// Error wraps a leaf failure (from an Extractor or a Filter) with the
// context of which kind of leaf produced it, per spec §7's
// MatcherError{Extractor(e), Filter(e)}.
type Error struct {
	FromFilter bool
	Cause      error
}

func (e *Error) Error() string {
	if e.FromFilter {
		return fmt.Sprintf("matcher: filter: %v", e.Cause)
	}
	return fmt.Sprintf("matcher: extractor: %v", e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func extractorErr(cause error) error { return &Error{FromFilter: false, Cause: cause} }
func filterErr(cause error) error    { return &Error{FromFilter: true, Cause: cause} }
