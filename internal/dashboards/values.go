package dashboards

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/dataset"
	"github.com/davetashner/dashkit/internal/figure"
)

// dateRangeFrom reads start_date and end_date from v. An empty value stands
// for the corresponding data bound.
func dateRangeFrom(v dashboard.Values, first, last time.Time) (figure.DateRange, error) {
	start, err := dateValue(v, dashboard.PropStartDate, first)
	if err != nil {
		return figure.DateRange{}, err
	}
	end, err := dateValue(v, dashboard.PropEndDate, last)
	if err != nil {
		return figure.DateRange{}, err
	}
	return figure.DateRange{Start: start, End: end}, nil
}

func dateValue(v dashboard.Values, prop string, fallback time.Time) (time.Time, error) {
	s := strings.TrimSpace(v[prop])
	if s == "" {
		return fallback, nil
	}
	d, err := dataset.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %v: %w", prop, err, dashboard.ErrBadInput)
	}
	return d, nil
}

func yearValue(v dashboard.Values) (int, error) {
	s := strings.TrimSpace(v[dashboard.PropYear])
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: not a year %q: %w", dashboard.PropYear, s, dashboard.ErrBadInput)
	}
	return y, nil
}
