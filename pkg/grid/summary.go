package grid

import "time"

// Summary holds aggregate figures over a grid.
type Summary struct {
	Total         int       `json:"total"`
	ActiveDays    int       `json:"activeDays"`
	BusiestDay    time.Time `json:"busiestDay"`
	BusiestCount  int       `json:"busiestCount"`
	LongestStreak int       `json:"longestStreak"`
	CurrentStreak int       `json:"currentStreak"`
}

// Summarize computes totals and streaks over the recorded days. A streak is a
// run of consecutive days with at least one contribution. The current streak
// ends on the last recorded day (the platform's today), or on the day before
// it when that day has no contributions yet.
func Summarize(g Grid) Summary {
	var s Summary

	days := g.Recorded()
	run := 0
	for _, d := range days {
		s.Total += d.Count
		if d.Count > s.BusiestCount {
			s.BusiestCount = d.Count
			s.BusiestDay = d.Date
		}
		if d.Count == 0 {
			run = 0
			continue
		}
		s.ActiveDays++
		run++
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
	}

	end := len(days) - 1
	if end >= 0 && days[end].Count == 0 {
		end--
	}
	for i := end; i >= 0 && days[i].Count > 0; i-- {
		s.CurrentStreak++
	}

	return s
}
