package creator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/creator"
	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/producer"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

func TestFalseMatcherYieldsNothingNotError(t *testing.T) {
	s := state.New()
	s.Set(0, value.U8(0))
	c := creator.Creator{
		Extractor: extractor.None{},
		Producer:  producer.None{},
		Matcher:   matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 0, Required: value.U8(9)}},
	}
	out, err := c.Run(&packet.Packet{}, s, 0)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestPacketForwardingScenario(t *testing.T) {
	c := creator.Creator{
		Extractor: extractor.ByPacket{},
		Producer:  producer.ByPacket{Receiver: 0x00FF},
	}
	in := &packet.Packet{DeviceAddress: 0xABAB, Data: []byte{1, 2, 3, 4}}
	out, err := c.Run(in, state.New(), 0)
	require.NoError(t, err)
	require.Equal(t, uint16(0x00FF), out.DeviceAddress)
	require.Equal(t, in.Data, out.Data)
}

func TestMatcherErrorPropagates(t *testing.T) {
	c := creator.Creator{
		Extractor: extractor.None{},
		Producer:  producer.None{},
		Matcher:   matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 0, Required: value.U8(1)}},
	}
	_, err := c.Run(&packet.Packet{}, state.New(), 0) // key 0 absent
	require.Error(t, err)
}

func TestCodecRoundTripWithAndWithoutMatcher(t *testing.T) {
	bare := creator.Creator{Extractor: extractor.None{}, Producer: producer.None{}}
	enc := creator.Encode(bare, nil)
	got, n, err := creator.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, bare, got)

	gated := creator.Creator{
		Extractor: extractor.EventCode{},
		Producer:  producer.None{},
		Matcher:   matcher.Single{Extractor: extractor.None{}, Filter: filter.FlipState{Key: 1}},
	}
	enc = creator.Encode(gated, nil)
	got, n, err = creator.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, gated, got)
}
