package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"motorcycles-backend/client"
	"motorcycles-backend/config"

	"github.com/spf13/cobra"
)

var watchHealth bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the API is reachable",
	Long: `Ping the API health endpoint once, or with --watch keep polling it on
HEALTH_INTERVAL and print every connection status change.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().BoolVar(&watchHealth, "watch", false, "Keep polling and report status changes")
}

func runHealth(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	api := newAPIClient(s)
	out := cmd.OutOrStdout()

	if !watchHealth {
		if err := api.Ping(cmd.Context()); err != nil {
			fmt.Fprintf(out, "%s: %s\n", s.APIBaseURL, client.StatusDisconnected)
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", s.APIBaseURL, client.StatusConnected)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitor := client.NewHealthMonitor(api, s.HealthInterval, func(prev, next client.HealthState) {
		line := fmt.Sprintf("%s  %s -> %s", next.CheckedAt.Format(time.RFC3339), prev.Status, next.Status)
		if next.LastError != nil {
			line += "  (" + next.LastError.Error() + ")"
		}
		fmt.Fprintln(out, line)
	})
	if err := monitor.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	monitor.Stop()
	return nil
}

func newAPIClient(s *config.Settings) *client.Client {
	return client.New(s.APIBaseURL,
		client.WithTimeout(s.APITimeout),
		client.WithToken(s.APIToken),
	)
}

