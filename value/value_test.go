package value_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/value"
)

func TestEqualCrossKindNeverEqual(t *testing.T) {
	require.False(t, value.U8(5).Equal(value.U16(5)))
	require.True(t, value.U8(5).Equal(value.U8(5)))
}

func TestLessMismatchedKind(t *testing.T) {
	_, err := value.U8(1).Less(value.U16(1))
	require.ErrorIs(t, err, value.ErrKindMismatch)
}

func TestLessMoreRgbLexicographic(t *testing.T) {
	lt, err := value.Rgb(1, 0, 0).Less(value.Rgb(2, 0, 0))
	require.NoError(t, err)
	require.True(t, lt)

	gt, err := value.Rgb(1, 5, 0).More(value.Rgb(1, 2, 9))
	require.NoError(t, err)
	require.True(t, gt)
}

func TestAddWrapsU8(t *testing.T) {
	sum, err := value.U8(0xff).Add(value.U8(1))
	require.NoError(t, err)
	got, ok := sum.U8()
	require.True(t, ok)
	require.Equal(t, uint8(0), got)
}

func TestAddWrapsU32(t *testing.T) {
	sum, err := value.U32(0xFFFFFFFE).Add(value.U32(2))
	require.NoError(t, err)
	got, ok := sum.U32()
	require.True(t, ok)
	require.Equal(t, uint32(0), got)
}

func TestAddNotArithmetic(t *testing.T) {
	_, err := value.Bool(true).Add(value.Bool(false))
	require.True(t, errors.Is(err, value.ErrNotArithmetic))

	_, err = value.Rgb(1, 2, 3).Sub(value.Rgb(1, 1, 1))
	require.True(t, errors.Is(err, value.ErrNotArithmetic))
}

func TestCodecRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.U8(7),
		value.U16(1000),
		value.U32(0xdeadbeef),
		value.Bool(true),
		value.Bool(false),
		value.Rgb(1, 2, 3),
		value.Rgbw(4, 5, 6, 7),
	}
	for _, v := range cases {
		enc := v.Encode(nil)
		got, n, err := value.Decode(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.True(t, v.Equal(got))
	}
}

func TestDecodeTruncated(t *testing.T) {
	full := value.U32(42).Encode(nil)
	for k := 0; k < len(full); k++ {
		_, _, err := value.Decode(full[:k])
		require.Error(t, err)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, _, err := value.Decode([]byte{0xff, 0x00})
	require.ErrorIs(t, err, codecutil.ErrUnknownEnumVariant)
}
