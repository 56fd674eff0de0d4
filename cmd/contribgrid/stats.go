package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/contribgrid/contribgrid/pkg/generator"
	"github.com/contribgrid/contribgrid/pkg/grid"
	"github.com/contribgrid/contribgrid/pkg/render"
)

// previewColors maps a level to a terminal color, lightest first.
var previewColors = []*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgMagenta),
	color.New(color.FgHiMagenta),
	color.New(color.FgBlue),
	color.New(color.Bold, color.FgHiBlue),
}

type statsJSON struct {
	Login   string       `json:"login"`
	From    string       `json:"from"`
	To      string       `json:"to"`
	Weeks   int          `json:"weeks"`
	Summary grid.Summary `json:"summary"`
}

func NewStatsCommand() *cobra.Command {
	var (
		flags      sourceFlags
		jsonOutput bool
		noPreview  bool
	)

	cmd := &cobra.Command{
		Use:     "stats",
		GroupID: gBasic,
		Short:   "Print contribution statistics and a terminal preview",
		Long: `Fetch the contribution calendar and print totals, streaks and a colored preview
of the graph. Nothing is written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}

			g, err := generator.FromConfig(conf, flags.input)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()

			res, err := g.Build(ctx)
			if err != nil {
				return err
			}

			from, to := res.Grid.Span()
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statsJSON{
					Login:   res.Login,
					From:    from.Format(grid.DateLayout),
					To:      to.Format(grid.DateLayout),
					Weeks:   len(res.Grid),
					Summary: res.Summary,
				})
			}

			s := res.Summary
			cmd.Println(bold("Contributions of %s:", res.Login))
			cmd.Printf("  Period: %s to %s (%d weeks)\n", bold("%s", from.Format(grid.DateLayout)), bold("%s", to.Format(grid.DateLayout)), len(res.Grid))
			cmd.Printf("  Total: %s\n", bold("%d", s.Total))
			cmd.Printf("  Active days: %s\n", bold("%d", s.ActiveDays))
			if s.BusiestCount > 0 {
				cmd.Printf("  Busiest day: %s\n", bold("%s (%d)", s.BusiestDay.Format(grid.DateLayout), s.BusiestCount))
			}
			cmd.Printf("  Longest streak: %s\n", bold("%d days", s.LongestStreak))
			streak := bold("%d days", s.CurrentStreak)
			if s.CurrentStreak > 0 {
				streak = color.New(color.Bold, color.FgGreen).Sprintf("%d days", s.CurrentStreak)
			}
			cmd.Printf("  Current streak: %s\n", streak)

			if !noPreview {
				cmd.Println()
				cmd.Print(preview(res.Grid, g.Renderer, previewWeeks(len(res.Grid))))
			}
			return nil
		},
	}

	flags.register(cmd.Flags(), false)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print statistics as JSON")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "do not print the terminal preview")

	return cmd
}

// previewWeeks returns how many of the most recent weeks fit the terminal.
func previewWeeks(weeks int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return weeks
	}
	// 4 columns for the weekday label, 2 per week.
	return max(min(weeks, (width-4)/2), 1)
}

var previewRows = [grid.DaysPerWeek]string{"   ", "Mon", "   ", "Wed", "   ", "Fri", "   "}

// preview draws the last n weeks of g, one character cell per day.
func preview(g grid.Grid, r *render.Renderer, n int) string {
	if n < len(g) {
		g = g[len(g)-n:]
	}

	var b strings.Builder
	for row := 0; row < grid.DaysPerWeek; row++ {
		b.WriteString(previewRows[row])
		b.WriteByte(' ')
		for _, w := range g {
			level := min(r.Level(w[row].Count), len(previewColors)-1)
			b.WriteString(previewColors[level].Sprint("■ "))
		}
		b.WriteByte('\n')
	}

	b.WriteString("    Less ")
	for _, c := range previewColors {
		b.WriteString(c.Sprint("■ "))
	}
	b.WriteString("More\n")
	return b.String()
}
