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

// Package packet defines the bus frame the engine is driven with and the
// family of domain-event codecs (button, message, BCM, relay) that
// extractors and producers convert to and from. On a real device both the
// frame and the event codecs are owned by the bus driver and the
// per-module firmware; this package supplies a reference implementation
// of the same wire contract (ConvertPacket, spec §9) so the engine can be
// built, tested, and driven standalone.
package packet

// Packet is one frame observed on (or emitted to) the bus.
type Packet struct {
	DeviceAddress uint16
	IsError       bool
	Data          []byte
}

// Clone returns a deep copy so producers that rewrite a packet never alias
// the caller's buffer.
func (p *Packet) Clone() *Packet {
	if p == nil {
		return nil
	}
	data := make([]byte, len(p.Data))
	copy(data, p.Data)
	return &Packet{DeviceAddress: p.DeviceAddress, IsError: p.IsError, Data: data}
}

// EventCode reads the generic big-endian event code carried in bytes
// [0:2) of the payload, used by the EventCode extractor and by every event
// family below as the first two bytes of Data.
func (p *Packet) EventCode() (uint16, error) {
	if len(p.Data) < 2 {
		return 0, ErrPacketTooShort
	}
	return uint16(p.Data[0])<<8 | uint16(p.Data[1]), nil
}

// EventProducerAddress reads the big-endian producer address carried in
// bytes [2:4) of the payload.
func (p *Packet) EventProducerAddress() (uint16, error) {
	if len(p.Data) < 4 {
		return 0, ErrPacketTooShort
	}
	return uint16(p.Data[2])<<8 | uint16(p.Data[3]), nil
}
