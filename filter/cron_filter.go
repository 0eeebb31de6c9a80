package filter

import (
	"github.com/linasdev/ross-config/filter/cron"
	"github.com/linasdev/ross-config/pipeline"
	"github.com/linasdev/ross-config/state"
)

// TimeMatchesCronExpression reads the state manager's clock snapshot at
// the moment of evaluation and reports whether Expr matches it. It never
// advances time and never mutates state.
type TimeMatchesCronExpression struct{ Expr cron.Expression }

func (TimeMatchesCronExpression) TypeCode() uint16 { return CodeTimeMatchesCronExpr }

func (f TimeMatchesCronExpression) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	return f.Expr.Matches(s.Time()), nil
}

func (f TimeMatchesCronExpression) Body() []byte { return f.Expr.Encode(nil) }
