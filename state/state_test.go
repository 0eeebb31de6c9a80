package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

func TestGetSetRoundTrip(t *testing.T) {
	m := state.New()
	_, ok := m.Get(1)
	require.False(t, ok)

	m.Set(1, value.U8(5))
	got, ok := m.Get(1)
	require.True(t, ok)
	require.True(t, got.Equal(value.U8(5)))
}

func TestKeysSortedAscending(t *testing.T) {
	m := state.New()
	m.Set(3, value.U8(0))
	m.Set(1, value.U8(0))
	m.Set(2, value.U8(0))
	require.Equal(t, []uint32{1, 2, 3}, m.Keys())
}

func TestCloneDoesNotAlias(t *testing.T) {
	m := state.New()
	m.Set(1, value.U8(1))
	c := m.Clone()
	c.Set(1, value.U8(2))

	got, _ := m.Get(1)
	require.True(t, got.Equal(value.U8(1)))
}

func TestClockDefaultsToEpoch(t *testing.T) {
	m := state.New()
	require.True(t, m.Time().Equal(time.Unix(0, 0).UTC()))
}
