package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/config"
	"github.com/linasdev/ross-config/creator"
	"github.com/linasdev/ross-config/engine"
	"github.com/linasdev/ross-config/eventprocessor"
	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/producer"
	"github.com/linasdev/ross-config/value"
)

// TestCounterRollover is spec §8 scenario 1: initial_state {0: U32(0xFFFFFFFE)},
// one processor with matcher Single(None, IncrementStateByConst(0, U32(1))),
// no creators. Feed two packets; final state is {0: U32(0)}.
func TestCounterRollover(t *testing.T) {
	cfg := config.Config{
		InitialState: map[uint32]value.Value{0: value.U32(0xFFFFFFFE)},
		EventProcessors: []eventprocessor.EventProcessor{
			{
				Matcher:  matcher.Single{Extractor: extractor.None{}, Filter: filter.IncrementStateByConst{Key: 0, Delta: value.U32(1)}},
				Creators: nil,
			},
		},
	}
	e, err := engine.LoadConfig(config.Serialize(cfg), 0x0001)
	require.NoError(t, err)

	_, err = e.ProcessPacket(&packet.Packet{DeviceAddress: 0x0001})
	require.NoError(t, err)
	_, err = e.ProcessPacket(&packet.Packet{DeviceAddress: 0x0001})
	require.NoError(t, err)

	got, ok := e.State().Get(0)
	require.True(t, ok)
	require.True(t, got.Equal(value.U32(0)))
}

// TestDoubleTapToggle is spec §8 scenario 2: a button-pressed event
// increments a tap counter; on the second consecutive press within the
// same evaluation window the relay flips and the counter resets.
func TestDoubleTapToggle(t *testing.T) {
	pressedMatcher := matcher.Single{
		Extractor: extractor.EventCode{},
		Filter:    filter.ValueEqualToConst{Required: value.U16(packet.ButtonPressedCode)},
	}

	incrementCreator := creator.Creator{
		Extractor: extractor.None{},
		Producer:  producer.None{},
		Matcher:   matcher.Single{Extractor: extractor.None{}, Filter: filter.IncrementStateByConst{Key: 0, Delta: value.U8(1)}},
	}
	flipCreator := creator.Creator{
		Extractor: extractor.None{},
		Producer:  producer.RelayFlipState{RelayAddr: 0xABAB, Index: 0},
		Matcher:   matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 0, Required: value.U8(2)}},
	}
	resetCreator := creator.Creator{
		Extractor: extractor.None{},
		Producer:  producer.None{},
		Matcher: matcher.And{
			A: matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 0, Required: value.U8(2)}},
			B: matcher.Single{Extractor: extractor.None{}, Filter: filter.SetStateToConst{Key: 0, Literal: value.U8(0)}},
		},
	}

	cfg := config.Config{
		InitialState: map[uint32]value.Value{0: value.U8(0), 1: value.Bool(false)},
		EventProcessors: []eventprocessor.EventProcessor{
			{Matcher: pressedMatcher, Creators: []creator.Creator{incrementCreator, flipCreator, resetCreator}},
		},
	}
	e, err := engine.LoadConfig(config.Serialize(cfg), 0x0001)
	require.NoError(t, err)

	pressed := packet.ButtonEvent{ProducerAddress: 0x0002, Index: 0, Pressed: true}.ToPacket(0x0002)

	var flips int
	for i := 0; i < 2; i++ {
		outs, err := e.ProcessPacket(pressed)
		require.NoError(t, err)
		for _, o := range outs {
			if o.DeviceAddress == 0xABAB {
				flips++
			}
		}
	}
	require.Equal(t, 1, flips)

	got, ok := e.State().Get(0)
	require.True(t, ok)
	require.True(t, got.Equal(value.U8(0)))
}

func TestProcessPacketCollectsCreatorErrorsAndContinues(t *testing.T) {
	ok := matcher.Single{Extractor: extractor.None{}, Filter: filter.FlipState{Key: 99}} // key absent -> error
	cfg := config.Config{
		InitialState: map[uint32]value.Value{1: value.Bool(false)},
		EventProcessors: []eventprocessor.EventProcessor{
			{
				Matcher: matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 1, Required: value.Bool(false)}},
				Creators: []creator.Creator{
					{Extractor: extractor.None{}, Producer: producer.None{}, Matcher: ok},
					{Extractor: extractor.None{}, Producer: producer.RelaySetState{RelayAddr: 1, Index: 0, On: true}},
				},
			},
		},
	}
	e, err := engine.LoadConfig(config.Serialize(cfg), 0)
	require.NoError(t, err)

	outs, err := e.ProcessPacket(&packet.Packet{Data: []byte{0, 0}})
	require.Error(t, err)
	require.Len(t, outs, 1, "the second, unrelated creator should still fire")
}

func TestLoadConfigRejectsTruncatedBlob(t *testing.T) {
	_, err := engine.LoadConfig([]byte{0x00, 0x00}, 0)
	require.Error(t, err)
}
