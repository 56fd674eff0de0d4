package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/contribgrid/contribgrid/pkg/client"
	"github.com/contribgrid/contribgrid/pkg/config"
	"github.com/contribgrid/contribgrid/pkg/output"
	"github.com/contribgrid/contribgrid/pkg/render"
	"github.com/contribgrid/contribgrid/pkg/source"
)

var (
	logLevel   = "info"
	configPath = "contribgrid.json"
	daemonAddr = config.DefaultListen
)

var (
	gBasic        = "Basic:"
	gDaemon       = "Daemon:"
	commandGroups = []string{
		gBasic,
		gDaemon,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	hint := color.New(color.FgYellow).FprintlnFunc()
	red := color.New(color.Bold, color.FgRed).SprintFunc()

	switch {
	case errors.Is(err, config.ErrMissingLogin):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: no account login configured"))
		hint(os.Stderr, "  - Pass --login, or set CONTRIBGRID_LOGIN (USERNAME also works)")
		hint(os.Stderr, "  - Or add \"login\" to "+configPath)
	case errors.Is(err, config.ErrMissingToken):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: no access token configured"))
		hint(os.Stderr, "  - Set CONTRIBGRID_TOKEN or GITHUB_TOKEN to a token that can read your profile")
		hint(os.Stderr, "  - Or render from a saved response with --input")
	case errors.Is(err, config.ErrInvalid):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: invalid configuration file"))
		hint(os.Stderr, "  - Check "+configPath+", or recreate it with 'contribgrid config init --force'")
	case errors.Is(err, source.ErrDataSource):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: failed to fetch contributions"))
		hint(os.Stderr, "  - Is the login correct and is the token still valid?")
	case errors.Is(err, render.ErrMalformedGrid), errors.Is(err, render.ErrInvalidStyle):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: failed to render the contribution graph"))
		hint(os.Stderr, "  - Check the \"style\" section of "+configPath)
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: contribgrid daemon is not running"))
		hint(os.Stderr, "  - Start it with 'contribgrid serve', or point --daemon at its address")
	case errors.Is(err, output.ErrWrite):
		fmt.Fprintln(os.Stderr, "\n"+red("Error: failed to write the output file"))
		hint(os.Stderr, "  - Is the output directory writable?")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contribgrid",
		Short: "contribgrid renders a GitHub contribution calendar as an SVG image",
		Long: `contribgrid renders the contribution calendar of a GitHub account as a
standalone SVG image, suitable for embedding in a profile README.

Run 'contribgrid generate' once (for example from CI), or 'contribgrid serve'
to keep the image fresh and serve it over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&daemonAddr, "daemon", daemonAddr, "address of a running contribgrid daemon")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewGenerateCommand(),
		NewStatsCommand(),
		NewServeCommand(),
		NewRefreshCommand(),
		NewStatusCommand(),
		NewScheduleCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return cmd
}
