package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/flow"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

func TestCountFiresCyclicallyAndResetsOnMatch(t *testing.T) {
	s := state.New()
	s.Set(0, value.U8(0))
	m := flow.Count(0, value.U8(1), value.U8(2))

	// Fires every 2nd evaluation, resetting the counter back to 0 each
	// time rather than running past the target forever.
	want := []bool{false, true, false, true, false, true}
	for i, w := range want {
		ok, err := m.Evaluate(&packet.Packet{}, s)
		require.NoError(t, err)
		require.Equal(t, w, ok, "evaluation %d", i)
	}

	got, _ := s.Get(0)
	require.True(t, got.Equal(value.U8(0)), "the 6th evaluation hits the target again and resets the counter")
}

func TestFlipFlopAlwaysMatchesAndTogglesState(t *testing.T) {
	s := state.New()
	s.Set(0, value.Bool(false))
	m := flow.FlipFlop(0)

	for i := 0; i < 3; i++ {
		ok, err := m.Evaluate(&packet.Packet{}, s)
		require.NoError(t, err)
		require.True(t, ok)
	}

	got, _ := s.Get(0)
	require.True(t, got.Equal(value.Bool(true)), "three flips from false lands on true")
}
