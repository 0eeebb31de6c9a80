package packet

// Event codes carried in Data[0:2) of a button frame.
const (
	EventButtonPressed  uint16 = 0x0001
	EventButtonReleased uint16 = 0x0002
)

// ButtonPressedCode is the EventCode extractor's view of a button-pressed
// frame; spec.md's double-tap-toggle scenario names it BUTTON_PRESSED_CODE.
const ButtonPressedCode = EventButtonPressed

// ButtonEvent is a button-pressed or button-released notification.
type ButtonEvent struct {
	ProducerAddress uint16
	Index           uint8
	Pressed         bool
}

// TryButtonPressedFromPacket decodes p as a ButtonPressed event.
func TryButtonPressedFromPacket(p *Packet) (ButtonEvent, error) {
	return decodeButton(p, EventButtonPressed, true)
}

// TryButtonReleasedFromPacket decodes p as a ButtonReleased event.
func TryButtonReleasedFromPacket(p *Packet) (ButtonEvent, error) {
	return decodeButton(p, EventButtonReleased, false)
}

func decodeButton(p *Packet, want uint16, pressed bool) (ButtonEvent, error) {
	if len(p.Data) < 5 {
		return ButtonEvent{}, ErrPacketTooShort
	}
	code := uint16(p.Data[0])<<8 | uint16(p.Data[1])
	if code != want {
		return ButtonEvent{}, ErrConvertPacket
	}
	addr := uint16(p.Data[2])<<8 | uint16(p.Data[3])
	return ButtonEvent{ProducerAddress: addr, Index: p.Data[4], Pressed: pressed}, nil
}

// ToPacket encodes the event as an outbound frame from deviceAddr.
func (e ButtonEvent) ToPacket(deviceAddr uint16) *Packet {
	code := EventButtonReleased
	if e.Pressed {
		code = EventButtonPressed
	}
	data := []byte{
		byte(code >> 8), byte(code),
		byte(e.ProducerAddress >> 8), byte(e.ProducerAddress),
		e.Index,
	}
	return &Packet{DeviceAddress: deviceAddr, Data: data}
}
