package grid

// FromDays groups consecutive days into Sunday-first weeks. The platform
// returns a partial first and last week; missing leading and trailing days are
// filled with zero-count padding days so every week holds seven days. Gaps in
// the middle are not repaired here, Validate reports them.
func FromDays(days []Day) Grid {
	if len(days) == 0 {
		return nil
	}

	first := days[0].Date
	last := days[len(days)-1].Date

	padded := make([]Day, 0, len(days)+2*DaysPerWeek)
	for i := int(first.Weekday()); i > 0; i-- {
		padded = append(padded, Day{Date: first.AddDate(0, 0, -i), Padding: true})
	}
	padded = append(padded, days...)
	for i := 1; i < DaysPerWeek-int(last.Weekday()); i++ {
		padded = append(padded, Day{Date: last.AddDate(0, 0, i), Padding: true})
	}

	g := make(Grid, 0, (len(padded)+DaysPerWeek-1)/DaysPerWeek)
	for len(padded) > 0 {
		n := DaysPerWeek
		if len(padded) < n {
			n = len(padded)
		}
		g = append(g, Week(padded[:n:n]))
		padded = padded[n:]
	}

	return g
}
