package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contribgrid/contribgrid/pkg/daemon"
	"github.com/contribgrid/contribgrid/pkg/version"
)

// NewServeCommand .
func NewServeCommand() *cobra.Command {
	var (
		flags    sourceFlags
		listen   string
		schedule string
	)

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: gDaemon,
		Short:   "Keep the SVG fresh on a schedule and serve it over HTTP",
		Long: `Regenerate the contribution graph on a cron schedule and serve it over HTTP.

Routes:
  GET  /contributions.svg   latest image
  GET  /contributions.json  grid and statistics
  GET  /events              server-sent refresh events
  POST /refresh             refresh now
  GET  /schedule            next scheduled refresh
  POST /schedule/skip       skip the next scheduled refresh

Send SIGHUP to reload the config file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if listen != "" {
				conf.SetListen(listen)
			}
			if schedule != "" {
				conf.SetSchedule(schedule)
			}

			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("contribgrid daemon starting")
			return daemon.Run(conf, flags.input)
		},
	}

	f := cmd.Flags()
	flags.register(f, true)
	f.StringVar(&listen, "listen", "", "HTTP listen address (default \"127.0.0.1:8080\")")
	f.StringVar(&schedule, "schedule", "", "cron expression or descriptor of the refresh (default \"@every 6h\")")

	return cmd
}
