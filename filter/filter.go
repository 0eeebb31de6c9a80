// Package filter implements the polymorphic Filter catalog of spec
// §3/§4.3: predicates and predicate-and-mutation steps over
// (ExtractorValue, *state.Manager), each with a stable 16-bit wire type
// code (spec §6.1). Every stateful filter reads a state key at most once
// and writes at most once per invocation; none of them panic — a type
// mismatch is always a returned error, never a crash.
package filter

import (
	"fmt"

	"github.com/linasdev/ross-config/codecutil"
	"github.com/linasdev/ross-config/filter/cron"
	"github.com/linasdev/ross-config/pipeline"
	"github.com/linasdev/ross-config/state"
	"github.com/linasdev/ross-config/value"
)

// Wire type codes. Fourteen are fixed by spec §6.1; StateEqualToState has
// no code listed there and is assigned the next free slot, 0x000e (see
// DESIGN.md).
const (
	CodeValueEqualToConst        uint16 = 0x0000
	CodeStateEqualToConst        uint16 = 0x0001
	CodeStateEqualToValue        uint16 = 0x0002
	CodeIncrementStateByConst    uint16 = 0x0003
	CodeIncrementStateByValue    uint16 = 0x0004
	CodeDecrementStateByConst    uint16 = 0x0005
	CodeDecrementStateByValue    uint16 = 0x0006
	CodeSetStateToConst          uint16 = 0x0007
	CodeSetStateToValue          uint16 = 0x0008
	CodeFlipState                uint16 = 0x0009
	CodeTimeMatchesCronExpr      uint16 = 0x000a
	CodeStateMoreThanConst       uint16 = 0x000b
	CodeStateLessThanConst       uint16 = 0x000c
	CodeSetStateToState          uint16 = 0x000d
	CodeStateEqualToState        uint16 = 0x000e
)

// Filter is a predicate, or predicate-and-mutation step, over an
// ExtractorValue and the state store.
type Filter interface {
	// TypeCode returns the filter's stable wire type code.
	TypeCode() uint16
	// Apply evaluates (and possibly mutates) state, returning the
	// filter's boolean result.
	Apply(v pipeline.ExtractorValue, s *state.Manager) (bool, error)
	// Body returns the filter's wire payload, not counting the type code
	// or length prefix.
	Body() []byte
}

func wrongValueType() error { return ErrWrongValueType }
func wrongStateType() error { return ErrWrongStateType }

// ValueEqualToConst returns value == Required. An ExtractorValue with no
// stored-Value representation (None, Packet) cannot be compared at all and
// is WrongValueType; one with a representation of a different Kind simply
// compares unequal.
type ValueEqualToConst struct{ Required value.Value }

func (ValueEqualToConst) TypeCode() uint16 { return CodeValueEqualToConst }
func (f ValueEqualToConst) Apply(v pipeline.ExtractorValue, _ *state.Manager) (bool, error) {
	sv, ok := v.AsValue()
	if !ok {
		return false, wrongValueType()
	}
	return sv.Equal(f.Required), nil
}
func (f ValueEqualToConst) Body() []byte { return f.Required.Encode(nil) }

// StateEqualToConst returns state[Key] == Required. A missing key cannot
// be compared and is WrongStateType.
type StateEqualToConst struct {
	Key      uint32
	Required value.Value
}

func (StateEqualToConst) TypeCode() uint16 { return CodeStateEqualToConst }
func (f StateEqualToConst) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	sv, ok := s.Get(f.Key)
	if !ok {
		return false, wrongStateType()
	}
	return sv.Equal(f.Required), nil
}
func (f StateEqualToConst) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key)
	return f.Required.Encode(dst)
}

// StateEqualToValue returns state[Key] == value.
type StateEqualToValue struct{ Key uint32 }

func (StateEqualToValue) TypeCode() uint16 { return CodeStateEqualToValue }
func (f StateEqualToValue) Apply(v pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	sv, ok := s.Get(f.Key)
	if !ok {
		return false, wrongStateType()
	}
	rv, ok := v.AsValue()
	if !ok {
		return false, wrongValueType()
	}
	return sv.Equal(rv), nil
}
func (f StateEqualToValue) Body() []byte { return codecutil.PutBE32(nil, f.Key) }

// StateEqualToState returns state[Key1] == state[Key2].
type StateEqualToState struct{ Key1, Key2 uint32 }

func (StateEqualToState) TypeCode() uint16 { return CodeStateEqualToState }
func (f StateEqualToState) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	v1, ok := s.Get(f.Key1)
	if !ok {
		return false, wrongStateType()
	}
	v2, ok := s.Get(f.Key2)
	if !ok {
		return false, wrongStateType()
	}
	return v1.Equal(v2), nil
}
func (f StateEqualToState) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key1)
	return codecutil.PutBE32(dst, f.Key2)
}

// IncrementStateByConst wraps state[Key] += Delta in place and returns
// true.
type IncrementStateByConst struct {
	Key   uint32
	Delta value.Value
}

func (IncrementStateByConst) TypeCode() uint16 { return CodeIncrementStateByConst }
func (f IncrementStateByConst) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	return applyDelta(s, f.Key, f.Delta, value.Value.Add)
}
func (f IncrementStateByConst) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key)
	return f.Delta.Encode(dst)
}

// IncrementStateByValue wraps state[Key] += value in place.
type IncrementStateByValue struct{ Key uint32 }

func (IncrementStateByValue) TypeCode() uint16 { return CodeIncrementStateByValue }
func (f IncrementStateByValue) Apply(v pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	delta, ok := v.AsValue()
	if !ok {
		return false, wrongValueType()
	}
	return applyDelta(s, f.Key, delta, value.Value.Add)
}
func (f IncrementStateByValue) Body() []byte { return codecutil.PutBE32(nil, f.Key) }

// DecrementStateByConst wraps state[Key] -= Delta in place.
type DecrementStateByConst struct {
	Key   uint32
	Delta value.Value
}

func (DecrementStateByConst) TypeCode() uint16 { return CodeDecrementStateByConst }
func (f DecrementStateByConst) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	return applyDelta(s, f.Key, f.Delta, value.Value.Sub)
}
func (f DecrementStateByConst) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key)
	return f.Delta.Encode(dst)
}

// DecrementStateByValue wraps state[Key] -= value in place.
type DecrementStateByValue struct{ Key uint32 }

func (DecrementStateByValue) TypeCode() uint16 { return CodeDecrementStateByValue }
func (f DecrementStateByValue) Apply(v pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	delta, ok := v.AsValue()
	if !ok {
		return false, wrongValueType()
	}
	return applyDelta(s, f.Key, delta, value.Value.Sub)
}
func (f DecrementStateByValue) Body() []byte { return codecutil.PutBE32(nil, f.Key) }

func applyDelta(s *state.Manager, key uint32, delta value.Value, op func(value.Value, value.Value) (value.Value, error)) (bool, error) {
	sv, ok := s.Get(key)
	if !ok {
		return false, wrongStateType()
	}
	res, err := op(sv, delta)
	if err != nil {
		return false, wrongStateType()
	}
	s.Set(key, res)
	return true, nil
}

// SetStateToConst sets state[Key] = Literal unconditionally.
type SetStateToConst struct {
	Key     uint32
	Literal value.Value
}

func (SetStateToConst) TypeCode() uint16 { return CodeSetStateToConst }
func (f SetStateToConst) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	s.Set(f.Key, f.Literal)
	return true, nil
}
func (f SetStateToConst) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Key)
	return f.Literal.Encode(dst)
}

// SetStateToValue sets state[Key] = value.
type SetStateToValue struct{ Key uint32 }

func (SetStateToValue) TypeCode() uint16 { return CodeSetStateToValue }
func (f SetStateToValue) Apply(v pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	sv, ok := v.AsValue()
	if !ok {
		return false, wrongValueType()
	}
	s.Set(f.Key, sv)
	return true, nil
}
func (f SetStateToValue) Body() []byte { return codecutil.PutBE32(nil, f.Key) }

// SetStateToState sets state[Dst] = state[Src].
type SetStateToState struct{ Dst, Src uint32 }

func (SetStateToState) TypeCode() uint16 { return CodeSetStateToState }
func (f SetStateToState) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	sv, ok := s.Get(f.Src)
	if !ok {
		return false, wrongStateType()
	}
	s.Set(f.Dst, sv)
	return true, nil
}
func (f SetStateToState) Body() []byte {
	dst := codecutil.PutBE32(nil, f.Dst)
	return codecutil.PutBE32(dst, f.Src)
}

// FlipState requires state[Key] to be Bool and negates it in place.
type FlipState struct{ Key uint32 }

func (FlipState) TypeCode() uint16 { return CodeFlipState }
func (f FlipState) Apply(_ pipeline.ExtractorValue, s *state.Manager) (bool, error) {
	sv, ok := s.Get(f.Key)
	if !ok {
		return false, wrongStateType()
	}
	b, ok := sv.Bool()
	if !ok {
		return false, wrongStateType()
	}
	s.Set(f.Key, value.Bool(!b))
	return true, nil
}
func (f FlipState) Body() []byte { return codecutil.PutBE32(nil, f.Key) }

// StateMoreThanConst and StateLessThanConst share a comparator; see
// compare.go.

// TimeMatchesCronExpression returns true iff the state manager's clock
// snapshot matches Expr; see cron_filter.go.

// Encode appends f's full wire form — type code, u8 body length, body —
// to dst.
func Encode(f Filter, dst []byte) []byte {
	dst = codecutil.PutBE16(dst, f.TypeCode())
	return codecutil.PutLenPrefixed8(dst, f.Body())
}

// Decode reads one type-code-framed Filter from the front of b, returning
// it and the number of bytes consumed.
func Decode(b []byte) (Filter, int, error) {
	if err := codecutil.CheckLen(b, 2); err != nil {
		return nil, 0, err
	}
	code := codecutil.BE16(b)
	body, consumed, err := codecutil.ReadLenPrefixed8(b[2:])
	if err != nil {
		return nil, 0, err
	}
	f, err := decodeBody(code, body)
	if err != nil {
		return nil, 0, err
	}
	return f, 2 + consumed, nil
}

func decodeBody(code uint16, body []byte) (Filter, error) {
	switch code {
	case CodeValueEqualToConst:
		v, _, err := value.Decode(body)
		if err != nil {
			return nil, err
		}
		return ValueEqualToConst{Required: v}, nil
	case CodeStateEqualToConst:
		if err := codecutil.CheckLen(body, 4); err != nil {
			return nil, err
		}
		key := codecutil.BE32(body)
		v, _, err := value.Decode(body[4:])
		if err != nil {
			return nil, err
		}
		return StateEqualToConst{Key: key, Required: v}, nil
	case CodeStateEqualToValue:
		key, err := readKey(body)
		if err != nil {
			return nil, err
		}
		return StateEqualToValue{Key: key}, nil
	case CodeStateEqualToState:
		k1, k2, err := readTwoKeys(body)
		if err != nil {
			return nil, err
		}
		return StateEqualToState{Key1: k1, Key2: k2}, nil
	case CodeIncrementStateByConst:
		key, v, err := readKeyValue(body)
		if err != nil {
			return nil, err
		}
		return IncrementStateByConst{Key: key, Delta: v}, nil
	case CodeIncrementStateByValue:
		key, err := readKey(body)
		if err != nil {
			return nil, err
		}
		return IncrementStateByValue{Key: key}, nil
	case CodeDecrementStateByConst:
		key, v, err := readKeyValue(body)
		if err != nil {
			return nil, err
		}
		return DecrementStateByConst{Key: key, Delta: v}, nil
	case CodeDecrementStateByValue:
		key, err := readKey(body)
		if err != nil {
			return nil, err
		}
		return DecrementStateByValue{Key: key}, nil
	case CodeSetStateToConst:
		key, v, err := readKeyValue(body)
		if err != nil {
			return nil, err
		}
		return SetStateToConst{Key: key, Literal: v}, nil
	case CodeSetStateToValue:
		key, err := readKey(body)
		if err != nil {
			return nil, err
		}
		return SetStateToValue{Key: key}, nil
	case CodeSetStateToState:
		dstKey, srcKey, err := readTwoKeys(body)
		if err != nil {
			return nil, err
		}
		return SetStateToState{Dst: dstKey, Src: srcKey}, nil
	case CodeFlipState:
		key, err := readKey(body)
		if err != nil {
			return nil, err
		}
		return FlipState{Key: key}, nil
	case CodeStateMoreThanConst:
		key, v, err := readKeyValue(body)
		if err != nil {
			return nil, err
		}
		return StateMoreThanConst{Key: key, Literal: v}, nil
	case CodeStateLessThanConst:
		key, v, err := readKeyValue(body)
		if err != nil {
			return nil, err
		}
		return StateLessThanConst{Key: key, Literal: v}, nil
	case CodeTimeMatchesCronExpr:
		expr, _, err := cron.Decode(body)
		if err != nil {
			return nil, err
		}
		return TimeMatchesCronExpression{Expr: expr}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%04x", codecutil.ErrUnknownFilter, code)
	}
}

func readKey(body []byte) (uint32, error) {
	if err := codecutil.CheckLen(body, 4); err != nil {
		return 0, err
	}
	return codecutil.BE32(body), nil
}

func readTwoKeys(body []byte) (uint32, uint32, error) {
	if err := codecutil.CheckLen(body, 8); err != nil {
		return 0, 0, err
	}
	return codecutil.BE32(body), codecutil.BE32(body[4:]), nil
}

func readKeyValue(body []byte) (uint32, value.Value, error) {
	if err := codecutil.CheckLen(body, 4); err != nil {
		return 0, value.Value{}, err
	}
	v, _, err := value.Decode(body[4:])
	if err != nil {
		return 0, value.Value{}, err
	}
	return codecutil.BE32(body), v, nil
}
