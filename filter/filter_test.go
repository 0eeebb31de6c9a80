package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/pipeline"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

func TestValueEqualToConstMismatchedKindIsFalseNotError(t *testing.T) {
	f := filter.ValueEqualToConst{Required: value.U16(5)}
	ok, err := f.Apply(pipeline.U8(5), state.New())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValueEqualToConstNoneIsWrongValueType(t *testing.T) {
	f := filter.ValueEqualToConst{Required: value.U8(5)}
	_, err := f.Apply(pipeline.None, state.New())
	require.ErrorIs(t, err, filter.ErrWrongValueType)
}

func TestStateEqualToConstMissingKeyIsWrongStateType(t *testing.T) {
	f := filter.StateEqualToConst{Key: 1, Required: value.U8(5)}
	_, err := f.Apply(pipeline.None, state.New())
	require.ErrorIs(t, err, filter.ErrWrongStateType)
}

func TestIncrementStateByConstWraps(t *testing.T) {
	s := state.New()
	s.Set(0, value.U32(0xFFFFFFFE))
	f := filter.IncrementStateByConst{Key: 0, Delta: value.U32(1)}

	ok, err := f.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ := s.Get(0)
	require.True(t, got.Equal(value.U32(0xFFFFFFFF)))

	_, err = f.Apply(pipeline.None, s)
	require.NoError(t, err)
	got, _ = s.Get(0)
	require.True(t, got.Equal(value.U32(0)))
}

func TestFlipStateRequiresBool(t *testing.T) {
	s := state.New()
	s.Set(0, value.U8(1))
	_, err := filter.FlipState{Key: 0}.Apply(pipeline.None, s)
	require.ErrorIs(t, err, filter.ErrWrongStateType)

	s.Set(0, value.Bool(false))
	ok, err := filter.FlipState{Key: 0}.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ := s.Get(0)
	b, _ := got.Bool()
	require.True(t, b)
}

func TestStateMoreThanConstKindMismatchErrors(t *testing.T) {
	s := state.New()
	s.Set(0, value.U16(5))
	_, err := filter.StateMoreThanConst{Key: 0, Literal: value.U8(1)}.Apply(pipeline.None, s)
	require.ErrorIs(t, err, filter.ErrWrongStateType)
}

func TestStateMoreLessThanConst(t *testing.T) {
	s := state.New()
	s.Set(0, value.U8(5))

	ok, err := filter.StateMoreThanConst{Key: 0, Literal: value.U8(3)}.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = filter.StateLessThanConst{Key: 0, Literal: value.U8(3)}.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetStateToStateAndStateEqualToState(t *testing.T) {
	s := state.New()
	s.Set(1, value.U8(9))
	_, err := filter.SetStateToState{Dst: 2, Src: 1}.Apply(pipeline.None, s)
	require.NoError(t, err)

	ok, err := filter.StateEqualToState{Key1: 1, Key2: 2}.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCodecRoundTrip(t *testing.T) {
	all := []filter.Filter{
		filter.ValueEqualToConst{Required: value.U8(1)},
		filter.StateEqualToConst{Key: 1, Required: value.Bool(true)},
		filter.StateEqualToValue{Key: 2},
		filter.StateEqualToState{Key1: 1, Key2: 2},
		filter.IncrementStateByConst{Key: 1, Delta: value.U32(1)},
		filter.IncrementStateByValue{Key: 1},
		filter.DecrementStateByConst{Key: 1, Delta: value.U16(9)},
		filter.DecrementStateByValue{Key: 1},
		filter.SetStateToConst{Key: 1, Literal: value.Rgb(1, 2, 3)},
		filter.SetStateToValue{Key: 1},
		filter.SetStateToState{Dst: 1, Src: 2},
		filter.FlipState{Key: 1},
		filter.StateMoreThanConst{Key: 1, Literal: value.U8(5)},
		filter.StateLessThanConst{Key: 1, Literal: value.U8(5)},
	}
	for _, f := range all {
		enc := filter.Encode(f, nil)
		got, n, err := filter.Decode(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, f, got)
	}
}
