package config

import (
	"github.com/contribgrid/contribgrid/pkg/render"
	"github.com/contribgrid/contribgrid/pkg/utils/ptr"
)

// RawStyle is the on-disk form of render.Style. Unset fields keep the
// renderer defaults.
type RawStyle struct {
	Background              *bool             `json:"background,omitempty"`
	BackgroundColor         *string           `json:"backgroundColor,omitempty"`
	BorderColor             *string           `json:"borderColor,omitempty"`
	TextColor               *string           `json:"textColor,omitempty"`
	Title                   *string           `json:"title,omitempty"`
	Legend                  *bool             `json:"legend,omitempty"`
	DayLabelRows            []int             `json:"dayLabelRows,omitempty"`
	MinMonthLabelSpacing    *int              `json:"minMonthLabelSpacing,omitempty"`
	SkipFirstLabelBeforeCol *int              `json:"skipFirstLabelBeforeCol,omitempty"`
	Cell                    *int              `json:"cell,omitempty"`
	Gap                     *int              `json:"gap,omitempty"`
	Padding                 *int              `json:"padding,omitempty"`
	LabelWidth              *int              `json:"labelWidth,omitempty"`
	MonthLabelHeight        *int              `json:"monthLabelHeight,omitempty"`
	TitleHeight             *int              `json:"titleHeight,omitempty"`
	LegendHeight            *int              `json:"legendHeight,omitempty"`
	CellRadius              *int              `json:"cellRadius,omitempty"`
	CornerRadius            *int              `json:"cornerRadius,omitempty"`
	FontFamily              *string           `json:"fontFamily,omitempty"`
	FontSize                *int              `json:"fontSize,omitempty"`
	Levels                  render.LevelTable `json:"levels,omitempty"`
	Colors                  []string          `json:"colors,omitempty"`
}

// NewRawStyle returns the full on-disk form of s.
func NewRawStyle(s render.Style) *RawStyle {
	return &RawStyle{
		Background:              ptr.To(s.Background),
		BackgroundColor:         ptr.To(s.BackgroundColor),
		BorderColor:             ptr.To(s.BorderColor),
		TextColor:               ptr.To(s.TextColor),
		Title:                   ptr.To(s.Title),
		Legend:                  ptr.To(s.Legend),
		DayLabelRows:            append([]int(nil), s.DayLabelRows...),
		MinMonthLabelSpacing:    ptr.To(s.MinMonthLabelSpacing),
		SkipFirstLabelBeforeCol: ptr.To(s.SkipFirstLabelBeforeCol),
		Cell:                    ptr.To(s.Cell),
		Gap:                     ptr.To(s.Gap),
		Padding:                 ptr.To(s.Padding),
		LabelWidth:              ptr.To(s.LabelWidth),
		MonthLabelHeight:        ptr.To(s.MonthLabelHeight),
		TitleHeight:             ptr.To(s.TitleHeight),
		LegendHeight:            ptr.To(s.LegendHeight),
		CellRadius:              ptr.To(s.CellRadius),
		CornerRadius:            ptr.To(s.CornerRadius),
		FontFamily:              ptr.To(s.FontFamily),
		FontSize:                ptr.To(s.FontSize),
		Levels:                  append(render.LevelTable(nil), s.Levels...),
		Colors:                  append([]string(nil), s.Colors...),
	}
}

// Apply overlays the set fields on base.
func (r *RawStyle) Apply(base render.Style) render.Style {
	if r == nil {
		return base
	}

	s := base
	s.Background = ptr.Deref(r.Background, s.Background)
	s.BackgroundColor = ptr.Deref(r.BackgroundColor, s.BackgroundColor)
	s.BorderColor = ptr.Deref(r.BorderColor, s.BorderColor)
	s.TextColor = ptr.Deref(r.TextColor, s.TextColor)
	s.Title = ptr.Deref(r.Title, s.Title)
	s.Legend = ptr.Deref(r.Legend, s.Legend)
	s.MinMonthLabelSpacing = ptr.Deref(r.MinMonthLabelSpacing, s.MinMonthLabelSpacing)
	s.SkipFirstLabelBeforeCol = ptr.Deref(r.SkipFirstLabelBeforeCol, s.SkipFirstLabelBeforeCol)
	s.Cell = ptr.Deref(r.Cell, s.Cell)
	s.Gap = ptr.Deref(r.Gap, s.Gap)
	s.Padding = ptr.Deref(r.Padding, s.Padding)
	s.LabelWidth = ptr.Deref(r.LabelWidth, s.LabelWidth)
	s.MonthLabelHeight = ptr.Deref(r.MonthLabelHeight, s.MonthLabelHeight)
	s.TitleHeight = ptr.Deref(r.TitleHeight, s.TitleHeight)
	s.LegendHeight = ptr.Deref(r.LegendHeight, s.LegendHeight)
	s.CellRadius = ptr.Deref(r.CellRadius, s.CellRadius)
	s.CornerRadius = ptr.Deref(r.CornerRadius, s.CornerRadius)
	s.FontFamily = ptr.Deref(r.FontFamily, s.FontFamily)
	s.FontSize = ptr.Deref(r.FontSize, s.FontSize)

	// An explicit empty list disables weekday labels.
	if r.DayLabelRows != nil {
		s.DayLabelRows = append([]int(nil), r.DayLabelRows...)
	}
	if len(r.Levels) > 0 {
		s.Levels = append(render.LevelTable(nil), r.Levels...)
	}
	if len(r.Colors) > 0 {
		s.Colors = append([]string(nil), r.Colors...)
	}

	return s
}
