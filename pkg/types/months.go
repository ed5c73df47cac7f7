package types

import (
	"encoding/json"
	"math"
)

// Months is a duration in (possibly fractional) months that may never be
// reached. It is used for every payback and break-even figure so callers
// only ever check one sentinel.
type Months struct {
	value float64
	never bool
}

// FiniteMonths returns a reached Months value.
func FiniteMonths(v float64) Months {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return NeverMonths()
	}
	return Months{value: v}
}

// NeverMonths returns the "will never happen" value.
func NeverMonths() Months {
	return Months{never: true}
}

// MonthsOrNever divides numerator by a monthly rate, returning Never when the
// rate is not positive.
func MonthsOrNever(numerator, rate float64) Months {
	if rate <= 0 {
		return NeverMonths()
	}
	return FiniteMonths(numerator / rate)
}

// Value returns the number of months and whether it is reachable.
func (m Months) Value() (float64, bool) {
	return m.value, !m.never
}

// Never reports whether the value is never reached.
func (m Months) Never() bool {
	return m.never
}

// Float64 returns the months as a float, with +Inf for Never.
func (m Months) Float64() float64 {
	if m.never {
		return math.Inf(1)
	}
	return m.value
}

// MarshalJSON encodes Never as null.
func (m Months) MarshalJSON() ([]byte, error) {
	if m.never {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON decodes null as Never.
func (m *Months) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = NeverMonths()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = FiniteMonths(v)
	return nil
}

// BreakEven is the first whole month at which cumulative profit covers the
// investment, or Never.
type BreakEven struct {
	month   int
	reached bool
}

// Reached returns a BreakEven hit at the given month.
func Reached(month int) BreakEven {
	return BreakEven{month: month, reached: true}
}

// Never returns a BreakEven that is never hit.
func Never() BreakEven {
	return BreakEven{}
}

// Month returns the break-even month and whether it is reached.
func (b BreakEven) Month() (int, bool) {
	return b.month, b.reached
}

// MarshalJSON encodes Never as null.
func (b BreakEven) MarshalJSON() ([]byte, error) {
	if !b.reached {
		return []byte("null"), nil
	}
	return json.Marshal(b.month)
}

// UnmarshalJSON decodes null as Never.
func (b *BreakEven) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Never()
		return nil
	}
	var m int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*b = Reached(m)
	return nil
}
