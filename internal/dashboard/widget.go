package dashboard

import (
	"strconv"
	"time"

	"github.com/davetashner/dashkit/internal/figure"
)

// WidgetKind names the kind of input control.
type WidgetKind string

// Widget kinds.
const (
	DatePickerRange WidgetKind = "date-picker-range"
	YearSlider      WidgetKind = "year-slider"
	RangeSelector   WidgetKind = "range-selector"
)

// Widget property names.
const (
	PropStartDate = "start_date"
	PropEndDate   = "end_date"
	PropYear      = "year"
	PropRange     = "range"
)

// Widget describes the one input control on a page. Only the fields for its
// Kind are set.
type Widget struct {
	ID   string
	Kind WidgetKind

	// Date-range picker: allowed bounds and initial selection.
	MinDate   time.Time
	MaxDate   time.Time
	StartDate time.Time
	EndDate   time.Time

	// Year slider: the distinct years present in the data, ascending, and
	// the initial position.
	Years []int
	Year  int

	// Range selector: the preset buttons and the initially active label.
	Buttons  []figure.RangeButton
	Selected string
}

// Defaults returns the widget's initial property values.
func (w Widget) Defaults() Values {
	v := Values{}
	switch w.Kind {
	case DatePickerRange:
		v[PropStartDate] = w.StartDate.Format(time.DateOnly)
		v[PropEndDate] = w.EndDate.Format(time.DateOnly)
	case YearSlider:
		v[PropYear] = strconv.Itoa(w.Year)
	case RangeSelector:
		v[PropRange] = w.Selected
	}
	return v
}

// Button returns the range-selector button with the given label.
func (w Widget) Button(label string) (figure.RangeButton, bool) {
	for _, b := range w.Buttons {
		if b.Label == label {
			return b, true
		}
	}
	return figure.RangeButton{}, false
}
