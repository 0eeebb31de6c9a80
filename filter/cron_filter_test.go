package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linasdev/ross-config/filter"
	"github.com/linasdev/ross-config/filter/cron"
	"github.com/linasdev/ross-config/pipeline"
	"github.com/linasdev/ross-config/state"
)

func TestTimeMatchesCronExpressionReadsClockSnapshot(t *testing.T) {
	s := state.New()
	s.SetTime(time.Date(2026, time.July, 30, 8, 0, 0, 0, time.UTC))

	f := filter.TimeMatchesCronExpression{Expr: cron.Expression{
		Second: cron.Any[uint8](), Minute: cron.Any[uint8](),
		Hour:       cron.Including[uint8](8),
		DayOfMonth: cron.Any[uint8](), Month: cron.Any[uint8](), DayOfWeek: cron.Any[uint8](),
		Year: cron.Any[uint16](),
	}}

	ok, err := f.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.True(t, ok)

	s.SetTime(s.Time().Add(time.Hour))
	ok, err = f.Apply(pipeline.None, s)
	require.NoError(t, err)
	require.False(t, ok)
}
