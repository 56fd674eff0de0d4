package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/contribgrid/contribgrid/pkg/client"
)

func NewRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "refresh",
		GroupID: gDaemon,
		Short:   "Ask a running daemon to refresh the graph now",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := client.NewClient(daemonAddr).Refresh()
			if err != nil {
				return err
			}
			cmd.Printf("Refreshed: %s contributions, current streak %s\n", bold("%d", s.Total), bold("%d days", s.CurrentStreak))
			return nil
		},
	}
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gDaemon,
		Short:   "Show what a running daemon is serving",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := client.NewClient(daemonAddr)

			v, commit, err := c.GetVersion()
			if err != nil {
				return err
			}
			cmd.Printf("Daemon: %s\n", bold("%s %s", v, commit))

			sch, err := c.GetSchedule()
			if err != nil {
				return err
			}
			cmd.Printf("  Schedule: %s\n", bold("%s", sch.Schedule))
			if !sch.NextRun.IsZero() {
				cmd.Printf("  Next refresh: %s\n", bold("%s", sch.NextRun.Local().Format(time.DateTime)))
			}

			snap, err := c.GetSnapshot()
			if errors.Is(err, client.ErrNotReady) {
				cmd.Println("  No graph generated yet.")
				return nil
			}
			if err != nil {
				return err
			}
			cmd.Printf("  Graph: %s, %s to %s, %s contributions\n", bold("%s", snap.Login), snap.From, snap.To, bold("%d", snap.Summary.Total))
			cmd.Printf("  Generated: %s\n", bold("%s", snap.GeneratedAt.Local().Format(time.DateTime)))
			if snap.LastError != "" {
				cmd.Printf("  Last refresh failed: %s\n", snap.LastError)
			}
			return nil
		},
	}
}

func NewScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		GroupID: gDaemon,
		Short:   "Manage the refresh schedule of a running daemon",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "skip",
		Short: "Skip the next scheduled refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			next, err := client.NewClient(daemonAddr).SkipSchedule()
			if err != nil {
				return fmt.Errorf("failed to skip: %w", err)
			}
			cmd.Printf("Next refresh: %s\n", bold("%s", next.Local().Format(time.DateTime)))
			return nil
		},
	})

	return cmd
}
