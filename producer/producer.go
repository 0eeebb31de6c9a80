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

// Package producer implements the polymorphic Producer catalog of spec
// §3/§4.4: pure-with-respect-to-state functions
// (ExtractorValue, *state.Manager, device_addr) -> optional Packet, each
// with a stable 16-bit wire type code (spec §6.1). State-driven producers
// read a state key at most once and never write; literal-value producers
// never touch state at all.
package producer

import (
	"fmt"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/pipeline"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

// Wire type codes. Eight are fixed by spec §6.1; the three relay
// producers that close out the catalog table in spec §3 but have no
// listed code are assigned the next free slots, 0x0008-0x000a (see
// DESIGN.md).
const (
	CodeNone                      uint16 = 0x0000
	CodePacket                    uint16 = 0x0001
	CodeMessage                   uint16 = 0x0002
	CodeBcmChangeBrightness       uint16 = 0x0003
	CodeBcmChangeBrightnessState  uint16 = 0x0004
	CodeBcmAnimateBrightness      uint16 = 0x0005
	CodeBcmAnimateBrightnessState uint16 = 0x0006
	CodeRelaySetValue             uint16 = 0x0007
	CodeRelaySetState             uint16 = 0x0008
	CodeRelaySetStateState        uint16 = 0x0009
	CodeRelayFlipState            uint16 = 0x000a
)

// Producer turns an evaluated value and the current state into at most
// one outbound Packet.
type Producer interface {
	// TypeCode returns the producer's stable wire type code.
	TypeCode() uint16
	// Produce computes the outbound packet, if any, addressed from
	// deviceAddr.
	Produce(v pipeline.ExtractorValue, s *state.Manager, deviceAddr uint16) (*packet.Packet, error)
	// Body returns the producer's wire payload, not counting the type
	// code or length prefix.
	Body() []byte
}

func wrongValueType() error { return ErrWrongValueType }
func wrongStateType() error { return ErrWrongStateType }

// None never emits a packet.
type None struct{}

func (None) TypeCode() uint16 { return CodeNone }
func (None) Produce(pipeline.ExtractorValue, *state.Manager, uint16) (*packet.Packet, error) {
	return nil, nil
}
func (None) Body() []byte { return nil }

// ByPacket clones the inbound ExtractorValue::Packet, rewriting its
// device address to Receiver. It is the only producer whose output
// preserves the inbound payload bytes verbatim.
type ByPacket struct{ Receiver uint16 }

func (ByPacket) TypeCode() uint16 { return CodePacket }
func (p ByPacket) Produce(v pipeline.ExtractorValue, _ *state.Manager, _ uint16) (*packet.Packet, error) {
	pk, ok := v.Packet()
	if !ok {
		return nil, wrongValueType()
	}
	out := pk.Clone()
	out.DeviceAddress = p.Receiver
	return out, nil
}
func (p ByPacket) Body() []byte { return codecutil.PutBE16(nil, p.Receiver) }

// Message emits a MessageEvent to Receiver with transmitter = deviceAddr.
type Message struct {
	Receiver uint16
	Code     uint16
	Val      value.Value
}

func (Message) TypeCode() uint16 { return CodeMessage }
func (p Message) Produce(_ pipeline.ExtractorValue, _ *state.Manager, deviceAddr uint16) (*packet.Packet, error) {
	ev := packet.MessageEvent{Transmitter: deviceAddr, Code: p.Code, Value: p.Val}
	return ev.ToPacket(p.Receiver), nil
}
func (p Message) Body() []byte {
	dst := codecutil.PutBE16(nil, p.Receiver)
	dst = codecutil.PutBE16(dst, p.Code)
	return p.Val.Encode(dst)
}

// BcmChangeBrightness emits a literal BcmChangeEvent to BcmAddr.
type BcmChangeBrightness struct {
	BcmAddr uint16
	Index   uint8
	Val     packet.BcmValue
}

func (BcmChangeBrightness) TypeCode() uint16 { return CodeBcmChangeBrightness }
func (p BcmChangeBrightness) Produce(pipeline.ExtractorValue, *state.Manager, uint16) (*packet.Packet, error) {
	ev := packet.BcmChangeEvent{Index: p.Index, Value: p.Val}
	return ev.ToPacket(p.BcmAddr), nil
}
func (p BcmChangeBrightness) Body() []byte {
	dst := codecutil.PutBE16(nil, p.BcmAddr)
	dst = append(dst, p.Index)
	return p.Val.Encode(dst)
}

// BcmChangeBrightnessState reads state[StateKey] and emits a
// BcmChangeEvent built from it: U8->Single, Rgb->Rgb, Rgbw->Rgbw; any
// other Kind is WrongStateType.
type BcmChangeBrightnessState struct {
	BcmAddr  uint16
	Index    uint8
	StateKey uint32
}

func (BcmChangeBrightnessState) TypeCode() uint16 { return CodeBcmChangeBrightnessState }
func (p BcmChangeBrightnessState) Produce(_ pipeline.ExtractorValue, s *state.Manager, _ uint16) (*packet.Packet, error) {
	bv, err := bcmValueFromState(s, p.StateKey)
	if err != nil {
		return nil, err
	}
	ev := packet.BcmChangeEvent{Index: p.Index, Value: bv}
	return ev.ToPacket(p.BcmAddr), nil
}
func (p BcmChangeBrightnessState) Body() []byte {
	dst := codecutil.PutBE16(nil, p.BcmAddr)
	dst = append(dst, p.Index)
	return codecutil.PutBE32(dst, p.StateKey)
}

// BcmAnimateBrightness emits a literal BcmAnimateEvent to BcmAddr.
type BcmAnimateBrightness struct {
	BcmAddr    uint16
	Index      uint8
	DurationMs uint16
	Val        packet.BcmValue
}

func (BcmAnimateBrightness) TypeCode() uint16 { return CodeBcmAnimateBrightness }
func (p BcmAnimateBrightness) Produce(pipeline.ExtractorValue, *state.Manager, uint16) (*packet.Packet, error) {
	ev := packet.BcmAnimateEvent{Index: p.Index, DurationMs: p.DurationMs, Value: p.Val}
	return ev.ToPacket(p.BcmAddr), nil
}
func (p BcmAnimateBrightness) Body() []byte {
	dst := codecutil.PutBE16(nil, p.BcmAddr)
	dst = append(dst, p.Index)
	dst = codecutil.PutBE16(dst, p.DurationMs)
	return p.Val.Encode(dst)
}

// BcmAnimateBrightnessState reads state[StateKey] and emits a
// BcmAnimateEvent built from it, under the same Kind mapping as
// BcmChangeBrightnessState.
type BcmAnimateBrightnessState struct {
	BcmAddr    uint16
	Index      uint8
	DurationMs uint16
	StateKey   uint32
}

func (BcmAnimateBrightnessState) TypeCode() uint16 { return CodeBcmAnimateBrightnessState }
func (p BcmAnimateBrightnessState) Produce(_ pipeline.ExtractorValue, s *state.Manager, _ uint16) (*packet.Packet, error) {
	bv, err := bcmValueFromState(s, p.StateKey)
	if err != nil {
		return nil, err
	}
	ev := packet.BcmAnimateEvent{Index: p.Index, DurationMs: p.DurationMs, Value: bv}
	return ev.ToPacket(p.BcmAddr), nil
}
func (p BcmAnimateBrightnessState) Body() []byte {
	dst := codecutil.PutBE16(nil, p.BcmAddr)
	dst = append(dst, p.Index)
	dst = codecutil.PutBE16(dst, p.DurationMs)
	return codecutil.PutBE32(dst, p.StateKey)
}

func bcmValueFromState(s *state.Manager, key uint32) (packet.BcmValue, error) {
	sv, ok := s.Get(key)
	if !ok {
		return packet.BcmValue{}, wrongStateType()
	}
	switch sv.Kind() {
	case value.KindU8:
		v, _ := sv.U8()
		return packet.BcmSingleValue(v), nil
	case value.KindRgb:
		r, g, b, _ := sv.Rgb()
		return packet.BcmRgbValue(r, g, b), nil
	case value.KindRgbw:
		r, g, b, w, _ := sv.Rgbw()
		return packet.BcmRgbwValue(r, g, b, w), nil
	default:
		return packet.BcmValue{}, wrongStateType()
	}
}

// RelaySetValue emits a literal RelaySetEvent to RelayAddr.
type RelaySetValue struct {
	RelayAddr uint16
	Index     uint8
	Val       packet.RelayValue
}

func (RelaySetValue) TypeCode() uint16 { return CodeRelaySetValue }
func (p RelaySetValue) Produce(pipeline.ExtractorValue, *state.Manager, uint16) (*packet.Packet, error) {
	ev := packet.RelaySetEvent{Index: p.Index, Value: p.Val}
	return ev.ToPacket(p.RelayAddr), nil
}
func (p RelaySetValue) Body() []byte {
	dst := codecutil.PutBE16(nil, p.RelayAddr)
	dst = append(dst, p.Index)
	return p.Val.Encode(dst)
}

// RelaySetState emits a literal single-channel RelaySetEvent, never
// touching state.
type RelaySetState struct {
	RelayAddr uint16
	Index     uint8
	On        bool
}

func (RelaySetState) TypeCode() uint16 { return CodeRelaySetState }
func (p RelaySetState) Produce(pipeline.ExtractorValue, *state.Manager, uint16) (*packet.Packet, error) {
	ev := packet.RelaySetEvent{Index: p.Index, Value: packet.RelaySingleValue(p.On)}
	return ev.ToPacket(p.RelayAddr), nil
}
func (p RelaySetState) Body() []byte {
	dst := codecutil.PutBE16(nil, p.RelayAddr)
	dst = append(dst, p.Index)
	var b byte
	if p.On {
		b = 1
	}
	return append(dst, b)
}

// RelaySetStateState reads state[StateKey] as Bool and emits a
// single-channel RelaySetEvent built from it; any other Kind is
// WrongStateType.
type RelaySetStateState struct {
	RelayAddr uint16
	Index     uint8
	StateKey  uint32
}

func (RelaySetStateState) TypeCode() uint16 { return CodeRelaySetStateState }
func (p RelaySetStateState) Produce(_ pipeline.ExtractorValue, s *state.Manager, _ uint16) (*packet.Packet, error) {
	sv, ok := s.Get(p.StateKey)
	if !ok {
		return nil, wrongStateType()
	}
	on, ok := sv.Bool()
	if !ok {
		return nil, wrongStateType()
	}
	ev := packet.RelaySetEvent{Index: p.Index, Value: packet.RelaySingleValue(on)}
	return ev.ToPacket(p.RelayAddr), nil
}
func (p RelaySetStateState) Body() []byte {
	dst := codecutil.PutBE16(nil, p.RelayAddr)
	dst = append(dst, p.Index)
	return codecutil.PutBE32(dst, p.StateKey)
}

// RelayFlipState emits a RelayFlipEvent; it carries no value payload and
// never touches state itself (the relay module flips its own value on
// receipt).
type RelayFlipState struct {
	RelayAddr uint16
	Index     uint8
}

func (RelayFlipState) TypeCode() uint16 { return CodeRelayFlipState }
func (p RelayFlipState) Produce(pipeline.ExtractorValue, *state.Manager, uint16) (*packet.Packet, error) {
	ev := packet.RelayFlipEvent{Index: p.Index}
	return ev.ToPacket(p.RelayAddr), nil
}
func (p RelayFlipState) Body() []byte {
	dst := codecutil.PutBE16(nil, p.RelayAddr)
	return append(dst, p.Index)
}

// Encode appends p's full wire form — type code, u8 body length, body —
// to dst.
func Encode(p Producer, dst []byte) []byte {
	dst = codecutil.PutBE16(dst, p.TypeCode())
	return codecutil.PutLenPrefixed8(dst, p.Body())
}

// Decode reads one type-code-framed Producer from the front of b,
// returning it and the number of bytes consumed.
func Decode(b []byte) (Producer, int, error) {
	if err := codecutil.CheckLen(b, 2); err != nil {
		return nil, 0, err
	}
	code := codecutil.BE16(b)
	body, consumed, err := codecutil.ReadLenPrefixed8(b[2:])
	if err != nil {
		return nil, 0, err
	}
	p, err := decodeBody(code, body)
	if err != nil {
		// BCM/relay value bodies are parsed by package packet; report its
		// failures as the codec's own error kinds.
		switch err {
		case packet.ErrPacketTooShort:
			err = codecutil.ErrWrongSize
		case packet.ErrConvertPacket:
			err = codecutil.ErrUnknownEnumVariant
		}
		return nil, 0, err
	}
	return p, 2 + consumed, nil
}

func decodeBody(code uint16, body []byte) (Producer, error) {
	switch code {
	case CodeNone:
		return None{}, nil
	case CodePacket:
		receiver, err := readU16(body)
		if err != nil {
			return nil, err
		}
		return ByPacket{Receiver: receiver}, nil
	case CodeMessage:
		if err := codecutil.CheckLen(body, 4); err != nil {
			return nil, err
		}
		receiver := codecutil.BE16(body)
		msgCode := codecutil.BE16(body[2:])
		v, _, err := value.Decode(body[4:])
		if err != nil {
			return nil, err
		}
		return Message{Receiver: receiver, Code: msgCode, Val: v}, nil
	case CodeBcmChangeBrightness:
		if err := codecutil.CheckLen(body, 3); err != nil {
			return nil, err
		}
		bcmAddr := codecutil.BE16(body)
		index := body[2]
		bv, _, err := packet.DecodeBcmValue(body[3:])
		if err != nil {
			return nil, err
		}
		return BcmChangeBrightness{BcmAddr: bcmAddr, Index: index, Val: bv}, nil
	case CodeBcmChangeBrightnessState:
		bcmAddr, index, key, err := readAddrIndexKey(body)
		if err != nil {
			return nil, err
		}
		return BcmChangeBrightnessState{BcmAddr: bcmAddr, Index: index, StateKey: key}, nil
	case CodeBcmAnimateBrightness:
		if err := codecutil.CheckLen(body, 5); err != nil {
			return nil, err
		}
		bcmAddr := codecutil.BE16(body)
		index := body[2]
		duration := codecutil.BE16(body[3:])
		bv, _, err := packet.DecodeBcmValue(body[5:])
		if err != nil {
			return nil, err
		}
		return BcmAnimateBrightness{BcmAddr: bcmAddr, Index: index, DurationMs: duration, Val: bv}, nil
	case CodeBcmAnimateBrightnessState:
		if err := codecutil.CheckLen(body, 9); err != nil {
			return nil, err
		}
		bcmAddr := codecutil.BE16(body)
		index := body[2]
		duration := codecutil.BE16(body[3:])
		key := codecutil.BE32(body[5:])
		return BcmAnimateBrightnessState{BcmAddr: bcmAddr, Index: index, DurationMs: duration, StateKey: key}, nil
	case CodeRelaySetValue:
		if err := codecutil.CheckLen(body, 3); err != nil {
			return nil, err
		}
		relayAddr := codecutil.BE16(body)
		index := body[2]
		rv, _, err := packet.DecodeRelayValue(body[3:])
		if err != nil {
			return nil, err
		}
		return RelaySetValue{RelayAddr: relayAddr, Index: index, Val: rv}, nil
	case CodeRelaySetState:
		if err := codecutil.CheckLen(body, 4); err != nil {
			return nil, err
		}
		relayAddr := codecutil.BE16(body)
		index := body[2]
		on := body[3] != 0
		return RelaySetState{RelayAddr: relayAddr, Index: index, On: on}, nil
	case CodeRelaySetStateState:
		relayAddr, index, key, err := readAddrIndexKey(body)
		if err != nil {
			return nil, err
		}
		return RelaySetStateState{RelayAddr: relayAddr, Index: index, StateKey: key}, nil
	case CodeRelayFlipState:
		if err := codecutil.CheckLen(body, 3); err != nil {
			return nil, err
		}
		relayAddr := codecutil.BE16(body)
		index := body[2]
		return RelayFlipState{RelayAddr: relayAddr, Index: index}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%04x", codecutil.ErrUnknownProducer, code)
	}
}

func readU16(body []byte) (uint16, error) {
	if err := codecutil.CheckLen(body, 2); err != nil {
		return 0, err
	}
	return codecutil.BE16(body), nil
}

func readAddrIndexKey(body []byte) (addr uint16, index uint8, key uint32, err error) {
	if err = codecutil.CheckLen(body, 7); err != nil {
		return 0, 0, 0, err
	}
	return codecutil.BE16(body), body[2], codecutil.BE32(body[3:]), nil
}
