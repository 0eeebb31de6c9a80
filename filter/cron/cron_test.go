package cron_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/filter/cron"
)

func TestIncludingAndExcludingAreBothMembership(t *testing.T) {
	inc := cron.Including[uint8](1, 3, 5)
	exc := cron.Excluding[uint8](1, 3, 5)

	require.True(t, inc.Match(3))
	require.False(t, inc.Match(2))
	// Excluding preserves the original source's literal membership test
	// rather than inverting it (spec §9 open question).
	require.True(t, exc.Match(3))
	require.False(t, exc.Match(2))
}

func TestEveryFromTo(t *testing.T) {
	f := cron.EveryFromTo[uint8](15, 0, 45)
	require.True(t, f.Match(0))
	require.True(t, f.Match(15))
	require.True(t, f.Match(45))
	require.False(t, f.Match(46))
	require.False(t, f.Match(7))
}

func TestAnyAlwaysMatches(t *testing.T) {
	f := cron.Any[uint16]()
	require.True(t, f.Match(0))
	require.True(t, f.Match(65535))
}

func TestExpressionMatchesConvertsWeekdayAndIsZeroBased(t *testing.T) {
	// 2026-07-30 is a Thursday -> mondayZero index 3.
	ts := time.Date(2026, time.July, 30, 10, 15, 0, 0, time.UTC)
	e := cron.Expression{
		Second:     cron.Any[uint8](),
		Minute:     cron.Including[uint8](15),
		Hour:       cron.Including[uint8](10),
		DayOfMonth: cron.Including[uint8](29), // 0-based: day 30 -> 29
		Month:      cron.Including[uint8](6),  // 0-based: July -> 6
		DayOfWeek:  cron.Including[uint8](3),
		Year:       cron.Any[uint16](),
	}
	require.True(t, e.Matches(ts))

	e.DayOfWeek = cron.Including[uint8](0)
	require.False(t, e.Matches(ts))
}

func TestExpressionCodecRoundTrip(t *testing.T) {
	e := cron.Expression{
		Second:     cron.Including[uint8](0, 30),
		Minute:     cron.Excluding[uint8](5),
		Hour:       cron.EveryFromTo[uint8](2, 0, 22),
		DayOfMonth: cron.Any[uint8](),
		Month:      cron.Including[uint8](0, 6),
		DayOfWeek:  cron.Any[uint8](),
		Year:       cron.Including[uint16](2026, 2027),
	}
	enc := e.Encode(nil)
	got, n, err := cron.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, e, got)
}

func TestDecodeTruncatedNeverPanics(t *testing.T) {
	e := cron.Expression{
		Second: cron.Any[uint8](), Minute: cron.Any[uint8](), Hour: cron.Any[uint8](),
		DayOfMonth: cron.Any[uint8](), Month: cron.Any[uint8](), DayOfWeek: cron.Any[uint8](),
		Year: cron.Any[uint16](),
	}
	full := e.Encode(nil)
	for k := 0; k < len(full); k++ {
		require.NotPanics(t, func() {
			_, _, _ = cron.Decode(full[:k])
		})
	}
}
