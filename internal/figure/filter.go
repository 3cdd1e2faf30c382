package figure

import (
	"fmt"
	"time"
)

// DateRange is a closed date interval. Both ends are compared at day
// granularity, so a row dated on End is included whatever its time of day.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls on or between Start and End.
func (r DateRange) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(day(r.Start)) && !d.After(day(r.End))
}

// Inverted reports whether Start is after End, which selects nothing.
func (r DateRange) Inverted() bool {
	return day(r.Start).After(day(r.End))
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Range selector steps.
const (
	StepDay   = "day"
	StepMonth = "month"
	StepYear  = "year"
	StepAll   = "all"
)

// Range selector step modes.
const (
	StepBackward = "backward"
	StepToDate   = "todate"
)

// RangeButton is a preset of a range selector, e.g. "6m" = six months back
// from the latest date.
type RangeButton struct {
	Label    string `json:"label"`
	Count    int    `json:"count,omitempty"`
	Step     string `json:"step"`
	StepMode string `json:"stepmode,omitempty"`
}

// Resolve turns the button into a concrete range over data spanning
// [first, last]. Ranges are anchored at last and never start before first.
func (b RangeButton) Resolve(first, last time.Time) (DateRange, error) {
	full := DateRange{Start: first, End: last}
	if b.Step == StepAll {
		return full, nil
	}
	if b.Count <= 0 {
		return DateRange{}, fmt.Errorf("range button %q: count must be positive", b.Label)
	}

	var start time.Time
	switch b.StepMode {
	case StepBackward, "":
		switch b.Step {
		case StepDay:
			start = last.AddDate(0, 0, -b.Count)
		case StepMonth:
			start = last.AddDate(0, -b.Count, 0)
		case StepYear:
			start = last.AddDate(-b.Count, 0, 0)
		default:
			return DateRange{}, fmt.Errorf("range button %q: unknown step %q", b.Label, b.Step)
		}
	case StepToDate:
		y, m, d := last.UTC().Date()
		switch b.Step {
		case StepDay:
			start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1-b.Count)
		case StepMonth:
			start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1-b.Count, 0)
		case StepYear:
			start = time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(1-b.Count, 0, 0)
		default:
			return DateRange{}, fmt.Errorf("range button %q: unknown step %q", b.Label, b.Step)
		}
	default:
		return DateRange{}, fmt.Errorf("range button %q: unknown step mode %q", b.Label, b.StepMode)
	}

	if start.Before(first) {
		start = first
	}
	return DateRange{Start: start, End: last}, nil
}
