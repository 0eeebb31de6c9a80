package packet

import "errors"

// ErrPacketTooShort means Data was shorter than an extractor or event
// decoder needed to read its fixed-offset fields.
var ErrPacketTooShort = errors.New("packet: too short")

// ErrConvertPacket means Data had the right length but did not encode the
// event shape a decoder was asked to parse (wrong event code, unknown
// value tag, ...).
var ErrConvertPacket = errors.New("packet: convert error")
