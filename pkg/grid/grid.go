// Package grid holds the contribution calendar data model: days grouped into
// Sunday-first weeks, oldest week first.
package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in tooltips.
const DateLayout = "2006-01-02"

// DaysPerWeek is the fixed length of every Week.
const DaysPerWeek = 7

// ErrShape is returned by Validate when a Grid does not have the expected shape.
var ErrShape = errors.New("malformed grid")

// Day is the contribution count of a single calendar date (UTC midnight).
type Day struct {
	Date  time.Time
	Count int
	// Padding marks a day added by FromDays to complete a partial week. Such
	// days are outside the reported period, trailing ones lie in the future.
	Padding bool
}

// Week holds seven days, index 0 is Sunday.
type Week []Day

// Grid is an ordered list of weeks, oldest first.
type Grid []Week

type rawDay struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Padding bool   `json:"padding,omitempty"`
}

// MarshalJSON encodes the day as {"date":"YYYY-MM-DD","count":N}, with
// "padding":true added for padding days.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawDay{Date: d.Date.Format(DateLayout), Count: d.Count, Padding: d.Padding})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (d *Day) UnmarshalJSON(b []byte) error {
	var r rawDay
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	t, err := ParseDate(r.Date)
	if err != nil {
		return err
	}
	d.Date = t
	d.Count = r.Count
	d.Padding = r.Padding
	return nil
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Label is the tooltip text of the day.
func (d Day) Label() string {
	return fmt.Sprintf("%s: %d contributions", d.Date.Format(DateLayout), d.Count)
}

// Days returns every day of the grid in order.
func (g Grid) Days() []Day {
	days := make([]Day, 0, len(g)*DaysPerWeek)
	for _, w := range g {
		days = append(days, w...)
	}
	return days
}

// Validate checks that every week has seven days, that day i of a week is
// weekday i, that the dates form one consecutive run and that no count is
// negative. The returned error wraps ErrShape.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: grid has no weeks", ErrShape)
	}

	var prev time.Time
	for x, w := range g {
		if len(w) != DaysPerWeek {
			return fmt.Errorf("%w: week %d has %d days, want %d", ErrShape, x, len(w), DaysPerWeek)
		}
		for y, d := range w {
			if d.Date.IsZero() {
				return fmt.Errorf("%w: week %d day %d has no date", ErrShape, x, y)
			}
			if d.Count < 0 {
				return fmt.Errorf("%w: %s has negative count %d", ErrShape, d.Date.Format(DateLayout), d.Count)
			}
			if int(d.Date.Weekday()) != y {
				return fmt.Errorf("%w: %s is a %s but sits in row %d", ErrShape, d.Date.Format(DateLayout), d.Date.Weekday(), y)
			}
			if !prev.IsZero() && !d.Date.Equal(prev.AddDate(0, 0, 1)) {
				return fmt.Errorf("%w: %s does not follow %s", ErrShape, d.Date.Format(DateLayout), prev.Format(DateLayout))
			}
			prev = d.Date
		}
	}

	return nil
}

// Recorded returns the days reported by the source, leaving out padding.
func (g Grid) Recorded() []Day {
	days := make([]Day, 0, len(g)*DaysPerWeek)
	for _, w := range g {
		for _, d := range w {
			if !d.Padding {
				days = append(days, d)
			}
		}
	}
	return days
}

// Span returns the first and last recorded date of the grid. A grid made of
// padding only spans all of its days.
func (g Grid) Span() (from, to time.Time) {
	days := g.Recorded()
	if len(days) == 0 {
		days = g.Days()
	}
	if len(days) == 0 {
		return
	}
	return days[0].Date, days[len(days)-1].Date
}
