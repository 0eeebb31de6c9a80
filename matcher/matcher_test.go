package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/extractor"
	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/matcher"
	"github.com/linasdev/ross-config/packet"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

func newStateWithGuard(key uint32, guard value.Value) *state.Manager {
	s := state.New()
	s.Set(key, guard)
	return s
}

func TestAndShortCircuits(t *testing.T) {
	s := newStateWithGuard(1, value.U8(5))
	s.Set(0, value.U8(0))

	falseLeaf := matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 1, Required: value.U8(9)}}
	sideEffect := matcher.Single{Extractor: extractor.None{}, Filter: filter.IncrementStateByConst{Key: 0, Delta: value.U8(1)}}

	ok, err := (matcher.And{A: falseLeaf, B: sideEffect}).Evaluate(&packet.Packet{}, s)
	require.NoError(t, err)
	require.False(t, ok)

	got, _ := s.Get(0)
	require.True(t, got.Equal(value.U8(0)), "B must not run once A is false")
}

func TestOrShortCircuits(t *testing.T) {
	s := newStateWithGuard(1, value.U8(5))
	s.Set(0, value.U8(0))

	trueLeaf := matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 1, Required: value.U8(5)}}
	sideEffect := matcher.Single{Extractor: extractor.None{}, Filter: filter.IncrementStateByConst{Key: 0, Delta: value.U8(1)}}

	ok, err := (matcher.Or{A: trueLeaf, B: sideEffect}).Evaluate(&packet.Packet{}, s)
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := s.Get(0)
	require.True(t, got.Equal(value.U8(0)), "B must not run once A is true")
}

func TestNotInverts(t *testing.T) {
	s := newStateWithGuard(1, value.U8(5))
	leaf := matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 1, Required: value.U8(5)}}
	ok, err := (matcher.Not{Inner: leaf}).Evaluate(&packet.Packet{}, s)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLeafErrorAbortsWithoutFoldingIntoFalse(t *testing.T) {
	s := state.New() // key 1 absent -> WrongStateType
	leaf := matcher.Single{Extractor: extractor.None{}, Filter: filter.StateEqualToConst{Key: 1, Required: value.U8(5)}}
	_, err := (matcher.And{A: leaf, B: leaf}).Evaluate(&packet.Packet{}, s)
	require.Error(t, err)
}

func TestCodecRoundTrip(t *testing.T) {
	leaf := matcher.Single{Extractor: extractor.EventCode{}, Filter: filter.ValueEqualToConst{Required: value.U16(1)}}
	tree := matcher.And{
		A: matcher.Not{Inner: leaf},
		B: matcher.Or{A: leaf, B: leaf},
	}
	enc := tree.Encode(nil)
	got, n, err := matcher.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, tree, got)
}
