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

package engine

import "fmt"

// ProcessorError is one event processor's failure: either its own
// top-level matcher errored, or one or more of its creators did.
type ProcessorError struct {
	ProcessorIndex int
	Errs           []error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("event processor %d: %d error(s): %v", e.ProcessorIndex, len(e.Errs), e.Errs)
}

func (e *ProcessorError) Unwrap() []error { return e.Errs }

// EvalError collects every ProcessorError observed while processing one
// packet. It is returned alongside whatever packets were successfully
// produced — ProcessPacket never drops an error silently (spec §7/§4.7).
type EvalError struct {
	Processors []*ProcessorError
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("engine: %d event processor(s) with errors: %v", len(e.Processors), e.Processors)
}

func (e *EvalError) Unwrap() []error {
	errs := make([]error, len(e.Processors))
	for i, p := range e.Processors {
		errs[i] = p
	}
	return errs
}
