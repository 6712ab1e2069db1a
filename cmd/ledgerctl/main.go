// Command ledgerctl drives the Ledgerline pipeline API and previews
// recurrence rules from the terminal.
package main

import (
	"fmt"
	"os"

	"ledgerline/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
