package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"motorcycles-backend/config"
	"motorcycles-backend/utils"

	"github.com/spf13/cobra"
)

var (
	tokenUserID   uint
	tokenUsername string
	tokenExpiry   time.Duration
	newSecret     bool
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for a password",
	Long: `Print a bcrypt hash suitable for the users table. The password is read
from the argument or, when omitted, from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashPassword,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token signed with JWT_SECRET",
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().UintVar(&tokenUserID, "user-id", 1, "User id stored in the sub claim")
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "admin", "Username stored in the token")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 0, "Token lifetime (defaults to JWT_EXPIRY_HOURS)")
	tokenCmd.Flags().BoolVar(&newSecret, "new-secret", false, "Print a fresh random JWT secret instead of a token")
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	if newSecret {
		secret, err := utils.GenerateJWTSecret()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), secret)
		return nil
	}

	s, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	expiry := tokenExpiry
	if expiry == 0 {
		expiry = s.JWTExpiry
	}

	token, err := utils.GenerateToken(s.JWTSecret, expiry, tokenUserID, tokenUsername)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
