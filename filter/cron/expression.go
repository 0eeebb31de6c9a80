package cron

import (
	"time"

	"github.com/linasdev/ross-config/codecutil"
)

// Expression is the seven-field calendar predicate of spec §3: second,
// minute, hour, day-of-month (0-based), month (0-based), day-of-week
// (0=Monday), year.
type Expression struct {
	Second     Field[uint8]
	Minute     Field[uint8]
	Hour       Field[uint8]
	DayOfMonth Field[uint8]
	Month      Field[uint8]
	DayOfWeek  Field[uint8]
	Year       Field[uint16]
}

// Matches reports whether t satisfies every field of the expression.
func (e Expression) Matches(t time.Time) bool {
	return e.Second.Match(uint8(t.Second())) &&
		e.Minute.Match(uint8(t.Minute())) &&
		e.Hour.Match(uint8(t.Hour())) &&
		e.DayOfMonth.Match(uint8(t.Day()-1)) &&
		e.Month.Match(uint8(int(t.Month())-1)) &&
		e.DayOfWeek.Match(mondayZero(t.Weekday())) &&
		e.Year.Match(uint16(t.Year()))
}

// mondayZero converts time.Weekday (Sunday=0) to the 0=Monday convention
// spec §3 uses for day_of_week.
func mondayZero(w time.Weekday) uint8 {
	return uint8((int(w) + 6) % 7)
}

// Encode appends the expression's wire form to dst: each of the seven
// fields, u8-length-prefixed, in declaration order (spec §6.1).
func (e Expression) Encode(dst []byte) []byte {
	dst = codecutil.PutLenPrefixed8(dst, EncodeU8(e.Second, nil))
	dst = codecutil.PutLenPrefixed8(dst, EncodeU8(e.Minute, nil))
	dst = codecutil.PutLenPrefixed8(dst, EncodeU8(e.Hour, nil))
	dst = codecutil.PutLenPrefixed8(dst, EncodeU8(e.DayOfMonth, nil))
	dst = codecutil.PutLenPrefixed8(dst, EncodeU8(e.Month, nil))
	dst = codecutil.PutLenPrefixed8(dst, EncodeU8(e.DayOfWeek, nil))
	dst = codecutil.PutLenPrefixed8(dst, EncodeU16(e.Year, nil))
	return dst
}

// Decode parses an Expression from the front of b, returning bytes
// consumed.
func Decode(b []byte) (Expression, int, error) {
	var e Expression
	off := 0

	readU8 := func() (Field[uint8], error) {
		payload, n, err := codecutil.ReadLenPrefixed8(b[off:])
		if err != nil {
			return Field[uint8]{}, err
		}
		f, _, err := DecodeU8(payload)
		if err != nil {
			return Field[uint8]{}, err
		}
		off += n
		return f, nil
	}

	var err error
	if e.Second, err = readU8(); err != nil {
		return Expression{}, 0, err
	}
	if e.Minute, err = readU8(); err != nil {
		return Expression{}, 0, err
	}
	if e.Hour, err = readU8(); err != nil {
		return Expression{}, 0, err
	}
	if e.DayOfMonth, err = readU8(); err != nil {
		return Expression{}, 0, err
	}
	if e.Month, err = readU8(); err != nil {
		return Expression{}, 0, err
	}
	if e.DayOfWeek, err = readU8(); err != nil {
		return Expression{}, 0, err
	}

	payload, n, err := codecutil.ReadLenPrefixed8(b[off:])
	if err != nil {
		return Expression{}, 0, err
	}
	year, _, err := DecodeU16(payload)
	if err != nil {
		return Expression{}, 0, err
	}
	e.Year = year
	off += n

	return e, off, nil
}
