package cmd

import (
	"fmt"
	"log/slog"

	"motorcycles-backend/config"
	"motorcycles-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var printRoutesFlag bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the REST API server. The database schema is migrated on startup
and an admin user is seeded when the users table is empty.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&printRoutesFlag, "print-routes", false, "Print the registered routes before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetupLogger(s.LogLevel)

	if err := config.ConnectDB(s); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := config.Migrate(config.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := config.SeedAdmin(config.DB, s.AdminUsername, s.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if s.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.SetupRouter(s)
	if printRoutesFlag {
		printRoutes(cmd, r)
	}

	slog.Info("server starting", "port", s.Port, "driver", s.DBDriver)
	if err := r.Run(":" + s.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func printRoutes(cmd *cobra.Command, r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", route.Method, route.Path)
	}
}
