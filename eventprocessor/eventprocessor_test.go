package eventprocessor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/creator"
	"github.com/linasdev/ross-config/eventprocessor"
	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/producer"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

func TestTopMatcherGatesCreators(t *testing.T) {
	s := state.New()
	s.Set(0, value.U8(0))

	ep := eventprocessor.EventProcessor{
		Matcher: matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 0, Required: value.U8(9)}},
		Creators: []creator.Creator{
			{Extractor: extractor.None{}, Producer: producer.RelaySetState{RelayAddr: 1, Index: 0, On: true}},
		},
	}
	outs, errs, gateErr := eventprocessor.Run(ep, &packet.Packet{}, s, 0)
	require.NoError(t, gateErr)
	require.Empty(t, errs)
	require.Empty(t, outs)
}

func TestCreatorsRunInOrderAndCollectErrors(t *testing.T) {
	s := state.New()
	s.Set(0, value.U8(0))

	passMatcher := matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 0, Required: value.U8(0)}}
	failingCreator := creator.Creator{
		Extractor: extractor.None{},
		Producer:  producer.None{},
		Matcher:   matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 99, Required: value.U8(0)}},
	}
	okCreator := creator.Creator{Extractor: extractor.None{}, Producer: producer.RelaySetState{RelayAddr: 1, Index: 0, On: true}}

	ep := eventprocessor.EventProcessor{Matcher: passMatcher, Creators: []creator.Creator{failingCreator, okCreator}}
	outs, errs, gateErr := eventprocessor.Run(ep, &packet.Packet{}, s, 0)
	require.NoError(t, gateErr)
	require.Len(t, errs, 1)
	require.Len(t, outs, 1)
	require.Equal(t, uint16(1), outs[0].DeviceAddress)
}

func TestCodecRoundTrip(t *testing.T) {
	ep := eventprocessor.EventProcessor{
		Matcher: matcher.Single{Extractor: extractor.EventCode{}, Filter: filter.ValueEqualToConst{Required: value.U16(1)}},
		Creators: []creator.Creator{
			{Extractor: extractor.None{}, Producer: producer.None{}},
			{Extractor: extractor.ByPacket{}, Producer: producer.ByPacket{Receiver: 1}, Matcher: matcher.Single{Extractor: extractor.None{}, Filter: filter.FlipState{Key: 1}}},
		},
	}
	enc := eventprocessor.Encode(ep, nil)
	got, n, err := eventprocessor.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, ep, got)
}
