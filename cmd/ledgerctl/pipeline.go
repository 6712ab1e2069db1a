package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerline/internal/ledger"
	"ledgerline/internal/logger"
	"ledgerline/internal/pipeline"
)

type configLoader func() (*cliConfig, error)

// validDate checks an optional YYYY-MM-DD flag before it is sent to the server.
func validDate(flag, v string) error {
	if v == "" {
		return nil
	}
	if _, err := ledger.ParseDate(v); err != nil {
		return fmt.Errorf("--%s: %w", flag, err)
	}
	return nil
}

func newRealizeCmd(load configLoader) *cobra.Command {
	var today string
	cmd := &cobra.Command{
		Use:   "realize",
		Short: "Realize due recurring templates for every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validDate("today", today); err != nil {
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			api, err := cfg.apiClient()
			if err != nil {
				return err
			}

			result, err := api.RealizeDue(cmd.Context(), today)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Realized %d transaction(s) from %d template(s) up to %s\n",
				result.Created, result.Templates, result.Today)
			return nil
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "realize up to this date (YYYY-MM-DD, default: server date)")
	return cmd
}

func newSnapshotsCmd(load configLoader) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Record a net worth snapshot for every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validDate("date", date); err != nil {
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			api, err := cfg.apiClient()
			if err != nil {
				return err
			}

			result, err := api.ComputeSnapshots(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d snapshot(s) for %s\n", result.SnapshotsRecorded, result.RecordedAt)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "snapshot date (YYYY-MM-DD, default: server date)")
	return cmd
}

func newRunCmd(load configLoader) *cobra.Command {
	var opts pipeline.Options
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Realize due templates, then record snapshots",
		Long:  "run is the job a scheduler invokes once a day: it realizes every due recurring template and then records net worth snapshots that include them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validDate("date", opts.Date); err != nil {
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			api, err := cfg.apiClient()
			if err != nil {
				return err
			}

			result, err := pipeline.NewRunner(api, logger.Named("pipeline")).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date:       %s\n", result.Date)
			fmt.Fprintf(out, "Realized:   %d transaction(s) from %d template(s)\n", result.Created, result.Templates)
			if !opts.SkipSnapshots {
				fmt.Fprintf(out, "Snapshots:  %d\n", result.SnapshotsRecorded)
			}
			fmt.Fprintf(out, "Duration:   %s\n", result.Duration)
			if result.SnapshotErr != nil {
				return fmt.Errorf("snapshots failed: %w", result.SnapshotErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Date, "date", "", "run for this date (YYYY-MM-DD, default: server date)")
	cmd.Flags().BoolVar(&opts.SkipSnapshots, "skip-snapshots", false, "only realize templates")
	return cmd
}
