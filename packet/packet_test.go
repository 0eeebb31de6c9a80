package packet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/value"
)

func TestCloneIsDeep(t *testing.T) {
	p := &packet.Packet{DeviceAddress: 1, Data: []byte{1, 2, 3}}
	c := p.Clone()
	c.Data[0] = 0xff
	require.Equal(t, byte(1), p.Data[0])
}

func TestEventCodeTooShort(t *testing.T) {
	p := &packet.Packet{Data: []byte{1}}
	_, err := p.EventCode()
	require.ErrorIs(t, err, packet.ErrPacketTooShort)
}

func TestButtonPressedReleasedRoundTrip(t *testing.T) {
	pressed := packet.ButtonEvent{ProducerAddress: 0xABAB, Index: 3, Pressed: true}
	pk := pressed.ToPacket(0x0001)
	got, err := packet.TryButtonPressedFromPacket(pk)
	require.NoError(t, err)
	require.Equal(t, pressed, got)

	_, err = packet.TryButtonReleasedFromPacket(pk)
	require.ErrorIs(t, err, packet.ErrConvertPacket)
}

func TestMessageRoundTrip(t *testing.T) {
	ev := packet.MessageEvent{Transmitter: 0x1234, Code: 7, Value: value.U16(999)}
	pk := ev.ToPacket(0xABCD)
	got, err := packet.TryMessageFromPacket(pk)
	require.NoError(t, err)
	require.Equal(t, ev.Transmitter, got.Transmitter)
	require.Equal(t, ev.Code, got.Code)
	require.True(t, ev.Value.Equal(got.Value))
}

func TestBcmValueRoundTrip(t *testing.T) {
	cases := []packet.BcmValue{
		packet.BcmSingleValue(5),
		packet.BcmRgbValue(1, 2, 3),
		packet.BcmRgbwValue(1, 2, 3, 4),
	}
	for _, v := range cases {
		enc := v.Encode(nil)
		got, n, err := packet.DecodeBcmValue(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}

func TestRelayValueRoundTrip(t *testing.T) {
	cases := []packet.RelayValue{
		packet.RelaySingleValue(true),
		packet.RelaySingleValue(false),
		packet.RelayDoubleExclusiveValue(1),
	}
	for _, v := range cases {
		enc := v.Encode(nil)
		got, n, err := packet.DecodeRelayValue(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}
