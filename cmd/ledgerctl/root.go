package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate a Ledgerline server",
		Long: `ledgerctl triggers the scheduled Ledgerline jobs and previews recurrence rules.

Examples:
  ledgerctl realize --today 2024-03-15
  ledgerctl snapshots --date 2024-03-31
  ledgerctl run
  ledgerctl occurrences --frequency monthly --start 2024-01-31 --to 2024-12-31`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file")

	load := func() (*cliConfig, error) { return loadConfig(cfgFile) }

	root.AddCommand(newRealizeCmd(load))
	root.AddCommand(newSnapshotsCmd(load))
	root.AddCommand(newRunCmd(load))
	root.AddCommand(newOccurrencesCmd(load))
	return root
}
