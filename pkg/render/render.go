// Package render lays out a contribution grid as a standalone SVG document.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/contribgrid/contribgrid/pkg/grid"
)

// ErrMalformedGrid is returned when the input grid does not have the
// week-by-weekday shape the layout relies on.
var ErrMalformedGrid = grid.ErrShape

const (
	header = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
	svgTag = "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n"
	svgEnd = "</svg>\n"

	backgroundTag = "  <rect class=\"background\" x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" rx=\"%d\" fill=\"%s\" stroke=\"%s\"/>\n"

	textGroupTag = "  <g class=\"labels\" font-family=\"%s\" font-size=\"%d\" fill=\"%s\">\n"
	titleTag     = "    <text class=\"title\" x=\"%d\" y=\"%d\" font-size=\"%d\">%s</text>\n"
	monthTag     = "    <text class=\"month\" x=\"%d\" y=\"%d\">%s</text>\n"
	weekdayTag   = "    <text class=\"weekday\" x=\"%d\" y=\"%d\">%s</text>\n"
	groupEnd     = "  </g>\n"

	dayGroupTag = "  <g class=\"days\">\n"
	dayTag      = "    <rect class=\"day\" x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"%d\" fill=\"%s\" data-date=\"%s\" data-count=\"%d\" data-level=\"%d\"><title>%s</title></rect>\n"

	legendGroupTag = "  <g class=\"legend\" font-family=\"%s\" font-size=\"%d\" fill=\"%s\">\n"
	legendTextTag  = "    <text x=\"%d\" y=\"%d\" text-anchor=\"end\">%s</text>\n"
	legendCellTag  = "    <rect class=\"legend-cell\" x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"%d\" fill=\"%s\"/>\n"

	// legendTextWidth is the room reserved right of the swatches for "More".
	legendTextWidth = 30
)

// Renderer turns grids into SVG documents with a fixed Style.
type Renderer struct {
	style Style
}

// New validates the style and returns a Renderer using it.
func New(style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{style: style}, nil
}

// Render is a shorthand for New(style) followed by Render(g).
func Render(g grid.Grid, style Style) (string, error) {
	r, err := New(style)
	if err != nil {
		return "", err
	}
	return r.Render(g)
}

// Style returns the style the renderer was built with.
func (r *Renderer) Style() Style {
	return r.style
}

// Level maps a contribution count to its color index.
func (r *Renderer) Level(count int) int {
	return r.style.Levels.Level(count)
}

// Size returns the canvas width and height for a grid of the given number of
// weeks.
func (r *Renderer) Size(weeks int) (width, height int) {
	s := r.style
	step := s.Cell + s.Gap
	width = 2*s.Padding + s.LabelWidth + step*weeks - s.Gap
	height = 2*s.Padding + s.HeaderHeight() + step*grid.DaysPerWeek - s.Gap
	if s.Legend {
		height += s.LegendHeight
	}
	return width, height
}

// CellOrigin returns the top-left corner of the cell in column x and row y.
func (r *Renderer) CellOrigin(x, y int) (int, int) {
	s := r.style
	step := s.Cell + s.Gap
	return s.Padding + s.LabelWidth + x*step, s.Padding + s.HeaderHeight() + y*step
}

// Render produces the SVG document for g. The same grid always yields the same
// bytes.
func (r *Renderer) Render(g grid.Grid) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}

	s := r.style
	width, height := r.Size(len(g))

	var b bytes.Buffer
	b.WriteString(header)
	fmt.Fprintf(&b, svgTag, width, height, width, height)

	if s.Background {
		fmt.Fprintf(&b, backgroundTag, width, height, s.CornerRadius, escape(s.BackgroundColor), escape(s.BorderColor))
	}

	r.writeLabels(&b, g)
	r.writeDays(&b, g)
	if s.Legend {
		r.writeLegend(&b, width)
	}

	b.WriteString(svgEnd)
	return b.String(), nil
}

func (r *Renderer) writeLabels(b *bytes.Buffer, g grid.Grid) {
	s := r.style

	fmt.Fprintf(b, textGroupTag, escape(s.FontFamily), s.FontSize, escape(s.TextColor))

	top := s.Padding
	if s.Title != "" {
		top += s.TitleHeight
		fmt.Fprintf(b, titleTag, s.Padding, top-s.TitleHeight/3, s.FontSize+4, escape(s.Title))
	}

	for _, l := range monthLabels(g, s.MinMonthLabelSpacing, s.SkipFirstLabelBeforeCol) {
		x, _ := r.CellOrigin(l.Column, 0)
		fmt.Fprintf(b, monthTag, x, top+s.MonthLabelHeight-s.Gap-2, l.Month.String()[:3])
	}

	for _, row := range s.DayLabelRows {
		_, y := r.CellOrigin(0, row)
		fmt.Fprintf(b, weekdayTag, s.Padding, y+s.Cell-2, time.Weekday(row).String()[:3])
	}

	b.WriteString(groupEnd)
}

func (r *Renderer) writeDays(b *bytes.Buffer, g grid.Grid) {
	s := r.style

	b.WriteString(dayGroupTag)
	for x, w := range g {
		for y, d := range w {
			px, py := r.CellOrigin(x, y)
			level := r.Level(d.Count)
			fmt.Fprintf(b, dayTag, px, py, s.Cell, s.Cell, s.CellRadius, escape(s.Colors[level]),
				d.Date.Format(grid.DateLayout), d.Count, level, escape(d.Label()))
		}
	}
	b.WriteString(groupEnd)
}

// writeLegend right-aligns "Less [swatches] More" in the band below the grid.
// Grids too narrow to hold it leave the band empty.
func (r *Renderer) writeLegend(b *bytes.Buffer, width int) {
	s := r.style
	step := s.Cell + s.Gap

	_, bottom := r.CellOrigin(0, grid.DaysPerWeek)
	y := bottom - s.Gap + (s.LegendHeight-s.Cell)/2
	right := width - s.Padding
	colors := s.Colors[:s.Levels.MaxLevel()+1]
	firstX := right - legendTextWidth - len(colors)*step + s.Gap
	if firstX < s.Padding+s.LabelWidth {
		return
	}

	fmt.Fprintf(b, legendGroupTag, escape(s.FontFamily), s.FontSize, escape(s.TextColor))
	fmt.Fprintf(b, legendTextTag, firstX-2*s.Gap, y+s.Cell-1, "Less")
	for i, c := range colors {
		fmt.Fprintf(b, legendCellTag, firstX+i*step, y, s.Cell, s.Cell, s.CellRadius, escape(c))
	}
	fmt.Fprintf(b, legendTextTag, right, y+s.Cell-1, "More")
	b.WriteString(groupEnd)
}

func escape(s string) string {
	var b bytes.Buffer
	// Writes to a bytes.Buffer never fail.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
