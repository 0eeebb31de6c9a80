package filter

import (
	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/pipeline"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

// StateMoreThanConst and StateLessThanConst share the same shape — a
// strict comparison between state[Key] and a literal — so both are built
// on compareState rather than duplicating the switch twice (mirrors the
// original source's single generic state-comparison helper per
// SPEC_FULL.md).

// StateMoreThanConst returns state[Key] > Literal (same Kind only).
type StateMoreThanConst struct {
	Key     uint32
	Literal value.Value
}

func (StateMoreThanConst) TypeCode() uint16 { return CodeStateMoreThanConst }
func (f StateMoreThanConst) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	return compareState(s, f.Key, f.Literal, value.Value.More)
}
func (f StateMoreThanConst) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key)
	return f.Literal.Encode(dst)
}

// StateLessThanConst returns state[Key] < Literal (same Kind only).
type StateLessThanConst struct {
	Key     uint32
	Literal value.Value
}

func (StateLessThanConst) TypeCode() uint16 { return CodeStateLessThanConst }
func (f StateLessThanConst) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	return compareState(s, f.Key, f.Literal, value.Value.Less)
}
func (f StateLessThanConst) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key)
	return f.Literal.Encode(dst)
}

func compareState(s *state.Manager, key uint32, literal value.Value, cmp func(value.Value, value.Value) (bool, error)) (bool, error) {
	sv, ok := s.Get(key)
	if !ok {
		return false, wrongStateType()
	}
	result, err := cmp(sv, literal)
	if err != nil {
		return false, wrongStateType()
	}
	return result, nil
}
