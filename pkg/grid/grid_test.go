package grid

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("failed to parse date: %v", err)
	}
	return d
}

func consecutive(start time.Time, counts ...int) []Day {
	days := make([]Day, len(counts))
	for i, c := range counts {
		days[i] = Day{Date: start.AddDate(0, 0, i), Count: c}
	}
	return days
}

func TestValidate(t *testing.T) {
	// 2024-01-07 is a Sunday.
	sunday := date(t, "2024-01-07")

	tests := []struct {
		name    string
		grid    Grid
		wantErr bool
	}{
		{
			name: "two full weeks",
			grid: FromDays(consecutive(sunday, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)),
		},
		{
			name:    "empty",
			grid:    nil,
			wantErr: true,
		},
		{
			name:    "short week",
			grid:    Grid{Week(consecutive(sunday, 1, 2, 3))},
			wantErr: true,
		},
		{
			name:    "starts on monday",
			grid:    Grid{Week(consecutive(sunday.AddDate(0, 0, 1), 0, 0, 0, 0, 0, 0, 0))},
			wantErr: true,
		},
		{
			name:    "negative count",
			grid:    Grid{Week(consecutive(sunday, 0, 0, -1, 0, 0, 0, 0))},
			wantErr: true,
		},
		{
			name: "gap between weeks",
			grid: Grid{
				Week(consecutive(sunday, 0, 0, 0, 0, 0, 0, 0)),
				Week(consecutive(sunday.AddDate(0, 0, 14), 0, 0, 0, 0, 0, 0, 0)),
			},
			wantErr: true,
		},
		{
			name:    "missing date",
			grid:    Grid{Week{{}, {}, {}, {}, {}, {}, {}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrShape) {
				t.Fatalf("expected error to wrap ErrShape, got %v", err)
			}
		})
	}
}

func TestFromDaysPadsPartialWeeks(t *testing.T) {
	// Wednesday 2024-01-10 through Monday 2024-01-22.
	days := consecutive(date(t, "2024-01-10"), 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)

	g := FromDays(days)
	if len(g) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(g))
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("padded grid should be valid: %v", err)
	}

	if got := g[0][0].Date.Format(DateLayout); got != "2024-01-07" {
		t.Fatalf("expected grid to start on 2024-01-07, got %s", got)
	}
	if got := g[2][6].Date.Format(DateLayout); got != "2024-01-27" {
		t.Fatalf("expected grid to end on 2024-01-27, got %s", got)
	}

	// Sun..Tue before and Tue..Sat after the recorded days.
	padding := 0
	for _, d := range g.Days() {
		if d.Padding {
			padding++
		}
	}
	if padding != 8 {
		t.Fatalf("expected 8 padding days, got %d", padding)
	}
	if n := len(g.Recorded()); n != len(days) {
		t.Fatalf("expected %d recorded days, got %d", len(days), n)
	}

	from, to := g.Span()
	if got := from.Format(DateLayout); got != "2024-01-10" {
		t.Fatalf("expected span to start on 2024-01-10, got %s", got)
	}
	if got := to.Format(DateLayout); got != "2024-01-22" {
		t.Fatalf("expected span to end on 2024-01-22, got %s", got)
	}

	total := 0
	for _, d := range g.Days() {
		total += d.Count
	}
	if total != len(days) {
		t.Fatalf("padding changed the total: got %d, want %d", total, len(days))
	}
}

func TestFromDaysEmpty(t *testing.T) {
	if g := FromDays(nil); g != nil {
		t.Fatalf("expected nil grid, got %v", g)
	}
}

func TestDayJSON(t *testing.T) {
	d := Day{Date: date(t, "2024-02-29"), Count: 4}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("failed to marshal day: %v", err)
	}
	if string(b) != `{"date":"2024-02-29","count":4}` {
		t.Fatalf("unexpected encoding: %s", b)
	}

	var back Day
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("failed to unmarshal day: %v", err)
	}
	if !back.Date.Equal(d.Date) || back.Count != d.Count {
		t.Fatalf("got %+v, want %+v", back, d)
	}

	pad := Day{Date: date(t, "2024-03-02"), Padding: true}
	b, err = json.Marshal(pad)
	if err != nil {
		t.Fatalf("failed to marshal day: %v", err)
	}
	if string(b) != `{"date":"2024-03-02","count":0,"padding":true}` {
		t.Fatalf("unexpected encoding: %s", b)
	}
	if err := json.Unmarshal(b, &back); err != nil || !back.Padding {
		t.Fatalf("padding flag lost: %+v, %v", back, err)
	}

	if err := json.Unmarshal([]byte(`{"date":"29/02/2024","count":1}`), &back); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestDayLabel(t *testing.T) {
	d := Day{Date: date(t, "2024-03-01"), Count: 0}
	if got := d.Label(); got != "2024-03-01: 0 contributions" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestSummarize(t *testing.T) {
	sunday := date(t, "2024-01-07")

	tests := []struct {
		name   string
		counts []int
		want   Summary
	}{
		{
			name:   "all zero",
			counts: []int{0, 0, 0, 0, 0, 0, 0},
			want:   Summary{},
		},
		{
			name:   "streak ending today",
			counts: []int{1, 0, 2, 5, 0, 3, 4},
			want: Summary{
				Total: 15, ActiveDays: 5, BusiestDay: sunday.AddDate(0, 0, 3), BusiestCount: 5,
				LongestStreak: 2, CurrentStreak: 2,
			},
		},
		{
			name:   "today not started",
			counts: []int{0, 0, 0, 1, 1, 1, 0},
			want: Summary{
				Total: 3, ActiveDays: 3, BusiestDay: sunday.AddDate(0, 0, 3), BusiestCount: 1,
				LongestStreak: 3, CurrentStreak: 3,
			},
		},
		{
			name:   "broken streak",
			counts: []int{2, 2, 2, 2, 0, 0, 1},
			want: Summary{
				Total: 9, ActiveDays: 5, BusiestDay: sunday, BusiestCount: 2,
				LongestStreak: 4, CurrentStreak: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(FromDays(consecutive(sunday, tt.counts...)))
			if !got.BusiestDay.Equal(tt.want.BusiestDay) {
				t.Fatalf("BusiestDay = %v, want %v", got.BusiestDay, tt.want.BusiestDay)
			}
			got.BusiestDay, tt.want.BusiestDay = time.Time{}, time.Time{}
			if got != tt.want {
				t.Fatalf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarizePartialWeeks(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		counts   []int
		from, to string
		current  int
		longest  int
		total    int
	}{
		{
			// Sun..Wed, today is Wednesday.
			name:    "streak ending mid-week",
			start:   "2024-01-07",
			counts:  []int{1, 1, 1, 1},
			from:    "2024-01-07",
			to:      "2024-01-10",
			current: 4,
			longest: 4,
			total:   4,
		},
		{
			name:    "today not started mid-week",
			start:   "2024-01-07",
			counts:  []int{0, 2, 3, 0},
			from:    "2024-01-07",
			to:      "2024-01-10",
			current: 2,
			longest: 2,
			total:   5,
		},
		{
			// Thursday 2024-01-04 to Monday 2024-01-15.
			name:    "partial first and last week",
			start:   "2024-01-04",
			counts:  []int{1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			from:    "2024-01-04",
			to:      "2024-01-15",
			current: 9,
			longest: 9,
			total:   11,
		},
		{
			name:    "streak broken yesterday",
			start:   "2024-01-09",
			counts:  []int{5, 5, 0, 0},
			from:    "2024-01-09",
			to:      "2024-01-12",
			current: 0,
			longest: 2,
			total:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromDays(consecutive(date(t, tt.start), tt.counts...))
			if err := g.Validate(); err != nil {
				t.Fatalf("padded grid should be valid: %v", err)
			}

			from, to := g.Span()
			if got := from.Format(DateLayout); got != tt.from {
				t.Fatalf("span starts on %s, want %s", got, tt.from)
			}
			if got := to.Format(DateLayout); got != tt.to {
				t.Fatalf("span ends on %s, want %s", got, tt.to)
			}

			s := Summarize(g)
			if s.CurrentStreak != tt.current {
				t.Fatalf("CurrentStreak = %d, want %d", s.CurrentStreak, tt.current)
			}
			if s.LongestStreak != tt.longest {
				t.Fatalf("LongestStreak = %d, want %d", s.LongestStreak, tt.longest)
			}
			if s.Total != tt.total {
				t.Fatalf("Total = %d, want %d", s.Total, tt.total)
			}
		})
	}
}
