package packet

import "github.com/linasdev/ross-config/value"

// EventMessage is the frame-level marker for a message event (Data[0:2)).
const EventMessage uint16 = 0x0010

// MessageEvent is a module-to-module message: a small application-defined
// code plus a scalar payload, relayed between devices on the bus.
type MessageEvent struct {
	Transmitter uint16
	Code        uint16
	Value       value.Value
}

// TryMessageFromPacket decodes p as a MessageEvent.
func TryMessageFromPacket(p *Packet) (MessageEvent, error) {
	if len(p.Data) < 6 {
		return MessageEvent{}, ErrPacketTooShort
	}
	code := uint16(p.Data[0])<<8 | uint16(p.Data[1])
	if code != EventMessage {
		return MessageEvent{}, ErrConvertPacket
	}
	msgCode := uint16(p.Data[2])<<8 | uint16(p.Data[3])
	transmitter := uint16(p.Data[4])<<8 | uint16(p.Data[5])
	v, _, err := value.Decode(p.Data[6:])
	if err != nil {
		return MessageEvent{}, ErrConvertPacket
	}
	return MessageEvent{Transmitter: transmitter, Code: msgCode, Value: v}, nil
}

// ToPacket encodes the event as an outbound frame addressed to receiver.
func (e MessageEvent) ToPacket(receiver uint16) *Packet {
	data := []byte{
		byte(EventMessage >> 8), byte(EventMessage),
		byte(e.Code >> 8), byte(e.Code),
		byte(e.Transmitter >> 8), byte(e.Transmitter),
	}
	data = e.Value.Encode(data)
	return &Packet{DeviceAddress: receiver, Data: data}
}
