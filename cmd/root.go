package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motorcycles",
	Short: "Motorcycle dealership backend",
	Long: `Backend for a motorcycle dealership: catalogue, customers, employees
and sales with line items.

Run "serve" to start the REST API. The remaining commands talk to a running
API or help with operator setup.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
