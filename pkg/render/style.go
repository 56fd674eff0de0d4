package render

import (
	"errors"
	"fmt"
)

// ErrInvalidStyle is returned when a Style cannot be used for layout.
var ErrInvalidStyle = errors.New("invalid style")

// LevelStep maps every count >= Min (up to the next step) to Level.
type LevelStep struct {
	Min   int `json:"min"`
	Level int `json:"level"`
}

// LevelTable is an ordered step function from contribution count to level.
type LevelTable []LevelStep

// DefaultLevels reproduces the platform's quartile-like buckets:
// 0, 1-2, 3-6, 7-12, 13+.
var DefaultLevels = LevelTable{
	{Min: 0, Level: 0},
	{Min: 1, Level: 1},
	{Min: 3, Level: 2},
	{Min: 7, Level: 3},
	{Min: 13, Level: 4},
}

// DefaultColors is the purple ramp, index is the level.
var DefaultColors = []string{"#161b22", "#2d1655", "#4c1d95", "#6d28d9", "#8b5cf6"}

// Level returns the level of count. Counts below the first step map to 0.
func (t LevelTable) Level(count int) int {
	level := 0
	for _, s := range t {
		if count < s.Min {
			break
		}
		level = s.Level
	}
	return level
}

// MaxLevel is the level of the last step.
func (t LevelTable) MaxLevel() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Level
}

// Validate requires a table starting at 0 with strictly increasing Min and
// non-decreasing Level.
func (t LevelTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: level table is empty", ErrInvalidStyle)
	}
	if t[0].Min != 0 {
		return fmt.Errorf("%w: first level step must start at 0, got %d", ErrInvalidStyle, t[0].Min)
	}
	for i, s := range t {
		if s.Level < 0 {
			return fmt.Errorf("%w: level step %d has negative level %d", ErrInvalidStyle, i, s.Level)
		}
		if i == 0 {
			continue
		}
		if s.Min <= t[i-1].Min {
			return fmt.Errorf("%w: level step %d threshold %d is not above %d", ErrInvalidStyle, i, s.Min, t[i-1].Min)
		}
		if s.Level < t[i-1].Level {
			return fmt.Errorf("%w: level step %d lowers the level from %d to %d", ErrInvalidStyle, i, t[i-1].Level, s.Level)
		}
	}
	return nil
}

// Style parameterizes a single renderer. All sizes are in pixels.
type Style struct {
	Background      bool   `json:"background"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	TextColor       string `json:"textColor"`
	Title           string `json:"title"`
	Legend          bool   `json:"legend"`

	// DayLabelRows lists the weekday rows (0 = Sunday) that get a label.
	DayLabelRows []int `json:"dayLabelRows"`
	// MinMonthLabelSpacing is the minimum column distance between month labels.
	MinMonthLabelSpacing int `json:"minMonthLabelSpacing"`
	// SkipFirstLabelBeforeCol drops month labels that first appear left of
	// this column, the month is truncated by the start of the grid.
	SkipFirstLabelBeforeCol int `json:"skipFirstLabelBeforeCol"`

	Cell             int    `json:"cell"`
	Gap              int    `json:"gap"`
	Padding          int    `json:"padding"`
	LabelWidth       int    `json:"labelWidth"`
	MonthLabelHeight int    `json:"monthLabelHeight"`
	TitleHeight      int    `json:"titleHeight"`
	LegendHeight     int    `json:"legendHeight"`
	CellRadius       int    `json:"cellRadius"`
	CornerRadius     int    `json:"cornerRadius"`
	FontFamily       string `json:"fontFamily"`
	FontSize         int    `json:"fontSize"`

	Levels LevelTable `json:"levels"`
	Colors []string   `json:"colors"`
}

// DefaultStyle returns the GitHub-dark card look without background.
func DefaultStyle() Style {
	return Style{
		Background:              false,
		BackgroundColor:         "#0d1117",
		BorderColor:             "#161b22",
		TextColor:               "#c9d1d9",
		Legend:                  true,
		DayLabelRows:            []int{1, 3, 5},
		MinMonthLabelSpacing:    3,
		SkipFirstLabelBeforeCol: 2,
		Cell:                    11,
		Gap:                     3,
		Padding:                 16,
		LabelWidth:              28,
		MonthLabelHeight:        20,
		TitleHeight:             24,
		LegendHeight:            24,
		CellRadius:              2,
		CornerRadius:            12,
		FontFamily:              "ui-sans-serif, system-ui, -apple-system, Segoe UI, Helvetica, Arial, sans-serif",
		FontSize:                10,
		Levels:                  append(LevelTable(nil), DefaultLevels...),
		Colors:                  append([]string(nil), DefaultColors...),
	}
}

// HeaderHeight is the band above the grid holding the title and month labels.
func (s Style) HeaderHeight() int {
	h := s.MonthLabelHeight
	if s.Title != "" {
		h += s.TitleHeight
	}
	return h
}

// Validate reports the first setting that would produce broken geometry.
func (s Style) Validate() error {
	if s.Cell <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidStyle, s.Cell)
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"gap", s.Gap},
		{"padding", s.Padding},
		{"labelWidth", s.LabelWidth},
		{"monthLabelHeight", s.MonthLabelHeight},
		{"titleHeight", s.TitleHeight},
		{"legendHeight", s.LegendHeight},
		{"cellRadius", s.CellRadius},
		{"cornerRadius", s.CornerRadius},
		{"fontSize", s.FontSize},
		{"minMonthLabelSpacing", s.MinMonthLabelSpacing},
		{"skipFirstLabelBeforeCol", s.SkipFirstLabelBeforeCol},
	} {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidStyle, f.name, f.v)
		}
	}
	if s.Legend && s.LegendHeight < s.Cell {
		return fmt.Errorf("%w: legend height %d is smaller than the cell size %d", ErrInvalidStyle, s.LegendHeight, s.Cell)
	}
	for _, row := range s.DayLabelRows {
		if row < 0 || row >= 7 {
			return fmt.Errorf("%w: day label row %d out of range 0-6", ErrInvalidStyle, row)
		}
	}
	if err := s.Levels.Validate(); err != nil {
		return err
	}
	if len(s.Colors) <= s.Levels.MaxLevel() {
		return fmt.Errorf("%w: %d colors cannot cover level %d", ErrInvalidStyle, len(s.Colors), s.Levels.MaxLevel())
	}
	for i, c := range s.Colors {
		if c == "" {
			return fmt.Errorf("%w: color %d is empty", ErrInvalidStyle, i)
		}
	}
	return nil
}
