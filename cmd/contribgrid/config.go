package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contribgrid/contribgrid/pkg/config"
	"github.com/contribgrid/contribgrid/pkg/utils/ptr"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		GroupID: gBasic,
		Short:   "Create or inspect the config file",
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigShowCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		force bool
		login string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		Long: `Write a config file holding every default, ready for editing.

The access token is never written, keep it in CONTRIBGRID_TOKEN or GITHUB_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", configPath)
			}

			raw := config.DefaultRawFileConfig()
			if login != "" {
				raw.Login = ptr.To(login)
			}

			if err := config.NewFileFromConfig(raw, configPath).Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			logrus.Infof("config written to %s", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&login, "login", "", "account login to store in the file")

	return cmd
}

type effectiveConfig struct {
	Login    string          `json:"login"`
	TokenSet bool            `json:"tokenSet"`
	Endpoint string          `json:"endpoint"`
	Output   string          `json:"output"`
	Schedule string          `json:"schedule"`
	Listen   string          `json:"listen"`
	Style    json.RawMessage `json:"style"`
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after applying the environment and defaults. The token is never printed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			style, err := json.Marshal(conf.Style())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(effectiveConfig{
				Login:    conf.Login(),
				TokenSet: conf.Token() != "",
				Endpoint: conf.Endpoint(),
				Output:   conf.Output(),
				Schedule: conf.Schedule(),
				Listen:   conf.Listen(),
				Style:    style,
			})
		},
	}
}
