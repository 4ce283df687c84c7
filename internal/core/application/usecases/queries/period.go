package queries

import (
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
)

// earliestDay is the lower bound used when only the end of a range is given.
var earliestDay = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Period is a half-open range of whole UTC calendar days: [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Label renders the period the way the dashboard shows it, for example
// "Jan 5 - Jan 31, 2026", "Mar 3, 2026" or "Dec 30, 2025 - Jan 2, 2026".
func (p Period) Label() string {
	first := p.Start
	last := p.End.AddDate(0, 0, -1)

	switch {
	case first.Equal(last):
		return first.Format("Jan 2, 2006")
	case first.Year() == last.Year():
		return first.Format("Jan 2") + " - " + last.Format("Jan 2, 2006")
	default:
		return first.Format("Jan 2, 2006") + " - " + last.Format("Jan 2, 2006")
	}
}

// dayRange holds the optional calendar days of a query filter.
type dayRange struct {
	from *time.Time
	to   *time.Time
}

func newDayRange(from, to *time.Time) (dayRange, error) {
	r := dayRange{from: truncateDay(from), to: truncateDay(to)}
	if r.from != nil && r.to != nil && r.from.After(*r.to) {
		return dayRange{}, errs.NewValueIsInvalidErrorWithCause(
			"from",
			fmt.Errorf("%s is after %s", r.from.Format(time.DateOnly), r.to.Format(time.DateOnly)),
		)
	}
	return r, nil
}

// resolve applies the defaults: a missing end is today, a missing start is
// 2000-01-01. It returns nil when neither bound is set.
func (r dayRange) resolve(now time.Time) *Period {
	if r.from == nil && r.to == nil {
		return nil
	}

	start := earliestDay
	if r.from != nil {
		start = *r.from
	}

	end := *truncateDay(&now)
	if r.to != nil {
		end = *r.to
	}

	return &Period{Start: start, End: end.AddDate(0, 0, 1)}
}

// closed returns the period only when both bounds are set.
func (r dayRange) closed() *Period {
	if r.from == nil || r.to == nil {
		return nil
	}
	return &Period{Start: *r.from, End: r.to.AddDate(0, 0, 1)}
}

func truncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}
