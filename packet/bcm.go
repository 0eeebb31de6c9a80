package packet

// Event codes for the brightness-control-module family.
const (
	EventBcmChangeBrightness  uint16 = 0x0020
	EventBcmAnimateBrightness uint16 = 0x0021
)

// BcmValueKind tags the channel shape of a BcmValue.
type BcmValueKind uint8

const (
	BcmSingle BcmValueKind = iota
	BcmRgb
	BcmRgbw
)

// BcmValue is the brightness payload of a BCM event: a single channel, or
// an RGB/RGBW tuple.
type BcmValue struct {
	Kind       BcmValueKind
	Channels   [4]uint8 // Single uses [0:1), Rgb [0:3), Rgbw [0:4)
}

// BcmSingleValue constructs a single-channel BcmValue.
func BcmSingleValue(v uint8) BcmValue { return BcmValue{Kind: BcmSingle, Channels: [4]uint8{v}} }

// BcmRgbValue constructs an RGB BcmValue.
func BcmRgbValue(r, g, b uint8) BcmValue {
	return BcmValue{Kind: BcmRgb, Channels: [4]uint8{r, g, b}}
}

// BcmRgbwValue constructs an RGBW BcmValue.
func BcmRgbwValue(r, g, b, w uint8) BcmValue {
	return BcmValue{Kind: BcmRgbw, Channels: [4]uint8{r, g, b, w}}
}

func (v BcmValue) encode(dst []byte) []byte {
	switch v.Kind {
	case BcmSingle:
		return append(dst, byte(v.Kind), v.Channels[0])
	case BcmRgb:
		return append(dst, byte(v.Kind), v.Channels[0], v.Channels[1], v.Channels[2])
	case BcmRgbw:
		return append(dst, byte(v.Kind), v.Channels[0], v.Channels[1], v.Channels[2], v.Channels[3])
	default:
		return dst
	}
}

// Encode appends the wire form of v (kind tag + channels) to dst. Used by
// the BcmChangeBrightness/BcmAnimateBrightness producer codec.
func (v BcmValue) Encode(dst []byte) []byte { return v.encode(dst) }

// DecodeBcmValue reads a tagged BcmValue from the front of b, returning it
// and the number of bytes consumed.
func DecodeBcmValue(b []byte) (BcmValue, int, error) {
	if len(b) < 1 {
		return BcmValue{}, 0, ErrPacketTooShort
	}
	switch BcmValueKind(b[0]) {
	case BcmSingle:
		if len(b) < 2 {
			return BcmValue{}, 0, ErrPacketTooShort
		}
		return BcmSingleValue(b[1]), 2, nil
	case BcmRgb:
		if len(b) < 4 {
			return BcmValue{}, 0, ErrPacketTooShort
		}
		return BcmRgbValue(b[1], b[2], b[3]), 4, nil
	case BcmRgbw:
		if len(b) < 5 {
			return BcmValue{}, 0, ErrPacketTooShort
		}
		return BcmRgbwValue(b[1], b[2], b[3], b[4]), 5, nil
	default:
		return BcmValue{}, 0, ErrConvertPacket
	}
}

// BcmChangeEvent sets a BCM channel's brightness immediately.
type BcmChangeEvent struct {
	Index uint8
	Value BcmValue
}

// ToPacket encodes the event addressed to bcmAddr.
func (e BcmChangeEvent) ToPacket(bcmAddr uint16) *Packet {
	data := []byte{byte(EventBcmChangeBrightness >> 8), byte(EventBcmChangeBrightness), e.Index}
	data = e.Value.encode(data)
	return &Packet{DeviceAddress: bcmAddr, Data: data}
}

// BcmAnimateEvent animates a BCM channel to a brightness over a duration.
type BcmAnimateEvent struct {
	Index      uint8
	DurationMs uint16
	Value      BcmValue
}

// ToPacket encodes the event addressed to bcmAddr.
func (e BcmAnimateEvent) ToPacket(bcmAddr uint16) *Packet {
	data := []byte{
		byte(EventBcmAnimateBrightness >> 8), byte(EventBcmAnimateBrightness),
		e.Index,
		byte(e.DurationMs >> 8), byte(e.DurationMs),
	}
	data = e.Value.encode(data)
	return &Packet{DeviceAddress: bcmAddr, Data: data}
}
