package render

import (
	"sort"
	"time"

	"github.com/contribgrid/contribgrid/pkg/grid"
)

type monthLabel struct {
	Column int
	Year   int
	Month  time.Month
}

func (l monthLabel) key() int {
	return l.Year*12 + int(l.Month) - 1
}

// monthLabels places a label at the first column where each calendar month
// appears. Labels left of skipBefore are dropped, then the rest are accepted
// left to right only when they are at least minSpacing columns away from the
// last accepted one.
func monthLabels(g grid.Grid, minSpacing, skipBefore int) []monthLabel {
	first := make(map[int]monthLabel)
	for x, w := range g {
		for _, d := range w {
			l := monthLabel{Column: x, Year: d.Date.Year(), Month: d.Date.Month()}
			if _, ok := first[l.key()]; !ok {
				first[l.key()] = l
			}
		}
	}

	candidates := make([]monthLabel, 0, len(first))
	for _, l := range first {
		candidates = append(candidates, l)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Column != candidates[j].Column {
			return candidates[i].Column < candidates[j].Column
		}
		return candidates[i].key() < candidates[j].key()
	})

	accepted := make([]monthLabel, 0, len(candidates))
	last := -1
	for _, l := range candidates {
		if l.Column < skipBefore {
			continue
		}
		if last >= 0 && l.Column-last < minSpacing {
			continue
		}
		accepted = append(accepted, l)
		last = l.Column
	}

	return accepted
}
