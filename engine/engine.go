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

// Package engine implements spec §6.2's runtime API: loading a Config
// once at boot and driving packets through it one at a time. The driver
// is single-threaded and deterministic (spec §5) — there is no
// concurrency to wire into packet evaluation, by design.
package engine

import (
	"github.com/google/uuid"

	"github.com/linasdev/ross-config/config"
	"github.com/linasdev/ross-config/eventprocessor"
	"github.com/linasdev/ross-config/internal/rosslog"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/state"
)

// Engine holds one loaded Config's event processors and the live state
// store they operate on.
type Engine struct {
	deviceAddr uint16
	processors []eventprocessor.EventProcessor
	state      *state.Manager
	log        rosslog.Logger
	trace      bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTracing attaches a per-call correlation ID to the engine's debug
// log output. It never affects evaluation order, state mutation, or
// emitted packets — purely a debugging aid.
func WithTracing() Option {
	return func(e *Engine) { e.trace = true }
}

// LoadConfig deserializes bytes into a Config and builds an Engine ready
// to process packets, per spec §6.2's load_config. deviceAddr is this
// engine's own bus address, used as the transmitter/device_addr operand
// producers receive.
func LoadConfig(bytes []byte, deviceAddr uint16, opts ...Option) (*Engine, error) {
	cfg, err := config.Deserialize(bytes)
	if err != nil {
		return nil, err
	}

	s := state.New()
	for k, v := range cfg.InitialState {
		s.Set(k, v)
	}

	e := &Engine{
		deviceAddr: deviceAddr,
		processors: cfg.EventProcessors,
		state:      s,
		log:        rosslog.New("device", deviceAddr),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// State returns the live state store for read access.
func (e *Engine) State() *state.Manager { return e.state }

// StateMut returns the live state store for mutation (e.g. to advance
// the clock between packets).
func (e *Engine) StateMut() *state.Manager { return e.state }

// ProcessPacket walks every event processor in declared order (spec
// §4.7): the top-level matcher gates the processor; on true, every
// creator runs in order. A creator error is recorded in the returned
// EvalError and evaluation continues to the next creator and the next
// processor — the "collect-and-continue" policy spec §4.7 leaves as an
// implementation choice, chosen here so that one misconfigured creator
// never starves its siblings of a chance to fire.
func (e *Engine) ProcessPacket(p *packet.Packet) ([]*packet.Packet, error) {
	var trace string
	if e.trace {
		trace = uuid.NewString()
		e.log.Debug("processing packet", "trace", trace, "device_address", p.DeviceAddress)
	}

	var outputs []*packet.Packet
	var evalErr *EvalError
	for i, ep := range e.processors {
		outs, errs, gateErr := eventprocessor.Run(ep, p, e.state, e.deviceAddr)
		if gateErr != nil {
			errs = append(errs, gateErr)
		}
		outputs = append(outputs, outs...)
		if len(errs) > 0 {
			if evalErr == nil {
				evalErr = &EvalError{}
			}
			evalErr.Processors = append(evalErr.Processors, &ProcessorError{ProcessorIndex: i, Errs: errs})
		}
	}

	if e.trace && evalErr != nil {
		e.log.Debug("packet produced errors", "trace", trace, "processors", len(evalErr.Processors))
	}
	if evalErr != nil {
		return outputs, evalErr
	}
	return outputs, nil
}
