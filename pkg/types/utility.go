package types

import (
	"fmt"
)

// HourWindow is a half-open range of hours of the day, [Start, End). A
// window whose Start is after its End wraps past midnight. Start == End is
// empty.
type HourWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains checks if an hour of the day is within the window.
func (w HourWindow) Contains(hour int) bool {
	if w.Start <= w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

// Hours returns the number of hours in the window.
func (w HourWindow) Hours() int {
	if w.Start <= w.End {
		return w.End - w.Start
	}
	return 24 - w.Start + w.End
}

// Validate checks the bounds of the window.
func (w HourWindow) Validate() error {
	if w.Start < 0 || w.Start > 24 {
		return fmt.Errorf("start hour out of range: %d", w.Start)
	}
	if w.End < 0 || w.End > 24 {
		return fmt.Errorf("end hour out of range: %d", w.End)
	}
	return nil
}
