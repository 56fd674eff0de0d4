package main

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/contribgrid/contribgrid/pkg/config"
)

// fetchTimeout bounds a one-shot fetch and render.
const fetchTimeout = time.Minute

// sourceFlags are shared by every command that fetches a grid.
type sourceFlags struct {
	login  string
	output string
	input  string
}

func (s *sourceFlags) register(f *pflag.FlagSet, withOutput bool) {
	f.StringVar(&s.login, "login", "", "account whose contributions are rendered")
	f.StringVar(&s.input, "input", "", "read the calendar from a saved JSON file instead of the GitHub API")
	if withOutput {
		f.StringVarP(&s.output, "output", "o", "", "output SVG path (default \""+config.DefaultOutput+"\")")
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(flags sourceFlags) (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	if flags.login != "" {
		conf.SetLogin(flags.login)
	}
	if flags.output != "" {
		conf.SetOutput(flags.output)
	}
	return conf, nil
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
