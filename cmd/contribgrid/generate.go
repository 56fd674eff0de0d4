package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contribgrid/contribgrid/pkg/generator"
	"github.com/contribgrid/contribgrid/pkg/grid"
)

func NewGenerateCommand() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		GroupID: gBasic,
		Short:   "Fetch the contribution calendar and write the SVG",
		Long: `Fetch the contribution calendar of an account and write it as an SVG image.

The login is read from --login, CONTRIBGRID_LOGIN, USERNAME or the config file.
The token is read from CONTRIBGRID_TOKEN or GITHUB_TOKEN.`,
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

			res, err := g.Run(ctx)
			if err != nil {
				return err
			}

			from, to := res.Grid.Span()
			logrus.WithFields(logrus.Fields{
				"login":  res.Login,
				"from":   from.Format(grid.DateLayout),
				"to":     to.Format(grid.DateLayout),
				"total":  res.Summary.Total,
				"output": g.Output,
			}).Info("contribution graph written")
			return nil
		},
	}

	flags.register(cmd.Flags(), true)

	return cmd
}
