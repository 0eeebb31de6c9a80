// Package extractor implements the polymorphic Extractor catalog of
// spec §3/§4.2: pure functions Packet -> ExtractorValue, each exposing a
// stable 16-bit wire type code (spec §6.1).
package extractor

import (
	"fmt"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/pipeline"
)

// Wire type codes, fixed by spec §6.1.
const (
	CodeNone                 uint16 = 0x0000
	CodePacket               uint16 = 0x0001
	CodeEventCode            uint16 = 0x0002
	CodeEventProducerAddress uint16 = 0x0003
	CodeMessageCode          uint16 = 0x0004
	CodeMessageValue         uint16 = 0x0005
	CodeButtonIndex          uint16 = 0x0006
)

// Extractor is a pure, stateless function from a Packet to an
// ExtractorValue.
type Extractor interface {
	// TypeCode returns the extractor's stable wire type code.
	TypeCode() uint16
	// Extract computes the pipeline value for p.
	Extract(p *packet.Packet) (pipeline.ExtractorValue, error)
	// Body returns the extractor's wire payload, not counting the type
	// code or length prefix (spec §6.1's Creator/Matcher framing adds
	// those uniformly).
	Body() []byte
}

// None always yields ExtractorValue::None.
type None struct{}

func (None) TypeCode() uint16 { return CodeNone }
func (None) Extract(*packet.Packet) (pipeline.ExtractorValue, error) { return pipeline.None, nil }
func (None) Body() []byte { return nil }

// ByPacket yields the borrowed inbound Packet.
type ByPacket struct{}

func (ByPacket) TypeCode() uint16 { return CodePacket }
func (ByPacket) Extract(p *packet.Packet) (pipeline.ExtractorValue, error) {
	return pipeline.FromPacket(p), nil
}
func (ByPacket) Body() []byte { return nil }

// EventCode reads the u16 event code from Data[0:2).
type EventCode struct{}

func (EventCode) TypeCode() uint16 { return CodeEventCode }
func (EventCode) Extract(p *packet.Packet) (pipeline.ExtractorValue, error) {
	code, err := p.EventCode()
	if err != nil {
		return pipeline.None, tooShort(err)
	}
	return pipeline.U16(code), nil
}
func (EventCode) Body() []byte { return nil }

// EventProducerAddress reads the u16 producer address from Data[2:4).
type EventProducerAddress struct{}

func (EventProducerAddress) TypeCode() uint16 { return CodeEventProducerAddress }
func (EventProducerAddress) Extract(p *packet.Packet) (pipeline.ExtractorValue, error) {
	addr, err := p.EventProducerAddress()
	if err != nil {
		return pipeline.None, tooShort(err)
	}
	return pipeline.U16(addr), nil
}
func (EventProducerAddress) Body() []byte { return nil }

// MessageCode decodes a MessageEvent and returns its code.
type MessageCode struct{}

func (MessageCode) TypeCode() uint16 { return CodeMessageCode }
func (MessageCode) Extract(p *packet.Packet) (pipeline.ExtractorValue, error) {
	ev, err := packet.TryMessageFromPacket(p)
	if err != nil {
		return pipeline.None, convertPacket(err)
	}
	return pipeline.U16(ev.Code), nil
}
func (MessageCode) Body() []byte { return nil }

// MessageValue decodes a MessageEvent and returns its value, lifted into
// the matching ExtractorValue variant.
type MessageValue struct{}

func (MessageValue) TypeCode() uint16 { return CodeMessageValue }
func (MessageValue) Extract(p *packet.Packet) (pipeline.ExtractorValue, error) {
	ev, err := packet.TryMessageFromPacket(p)
	if err != nil {
		return pipeline.None, convertPacket(err)
	}
	return pipeline.FromValue(ev.Value), nil
}
func (MessageValue) Body() []byte { return nil }

// ButtonIndex accepts either a ButtonPressed or ButtonReleased event and
// returns the button index. ButtonPressed is tried first; ButtonReleased
// is only attempted if that fails, per spec §4.2.
type ButtonIndex struct{}

func (ButtonIndex) TypeCode() uint16 { return CodeButtonIndex }
func (ButtonIndex) Extract(p *packet.Packet) (pipeline.ExtractorValue, error) {
	if ev, err := packet.TryButtonPressedFromPacket(p); err == nil {
		return pipeline.U8(ev.Index), nil
	}
	ev, err := packet.TryButtonReleasedFromPacket(p)
	if err != nil {
		return pipeline.None, convertPacket(err)
	}
	return pipeline.U8(ev.Index), nil
}
func (ButtonIndex) Body() []byte { return nil }

// Encode appends e's full wire form — type code, u8 body length, body —
// to dst, per spec §6.1's Creator/Matcher Single framing.
func Encode(e Extractor, dst []byte) []byte {
	dst = codecutil.PutBE16(dst, e.TypeCode())
	return codecutil.PutLenPrefixed8(dst, e.Body())
}

// Decode reads one type-code-framed Extractor from the front of b,
// returning it and the number of bytes consumed.
func Decode(b []byte) (Extractor, int, error) {
	if err := codecutil.CheckLen(b, 2); err != nil {
		return nil, 0, err
	}
	code := codecutil.BE16(b)
	body, consumed, err := codecutil.ReadLenPrefixed8(b[2:])
	if err != nil {
		return nil, 0, err
	}
	e, err := decodeBody(code, body)
	if err != nil {
		return nil, 0, err
	}
	return e, 2 + consumed, nil
}

func decodeBody(code uint16, body []byte) (Extractor, error) {
	switch code {
	case CodeNone:
		return None{}, nil
	case CodePacket:
		return ByPacket{}, nil
	case CodeEventCode:
		return EventCode{}, nil
	case CodeEventProducerAddress:
		return EventProducerAddress{}, nil
	case CodeMessageCode:
		return MessageCode{}, nil
	case CodeMessageValue:
		return MessageValue{}, nil
	case CodeButtonIndex:
		return ButtonIndex{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%04x", codecutil.ErrUnknownExtractor, code)
	}
}
