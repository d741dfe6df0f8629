package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"motorcycles-backend/config"
	"motorcycles-backend/sales"

	"github.com/spf13/cobra"
)

var depsOnServer bool

var depsCmd = &cobra.Command{
	Use:   "deps <customer|employee|motorcycle> <id>",
	Short: "Check whether an entity can be deleted",
	Long: `Scan the sales on record for references to a customer, employee or
motorcycle and report whether it can be deleted safely.

By default the sales are fetched and scanned locally; --server asks the API
to run the check instead.`,
	Args: cobra.ExactArgs(2),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)

	depsCmd.Flags().BoolVar(&depsOnServer, "server", false, "Run the check on the API instead of locally")
}

func runDeps(cmd *cobra.Command, args []string) error {
	kind, err := sales.ParseKind(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid id %q", args[1])
	}

	s, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	api := newAPIClient(s)

	check := api.CheckDependencies
	if depsOnServer {
		check = api.ServerDependencies
	}
	report, checkErr := check(cmd.Context(), kind, uint(id))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	return checkErr
}
