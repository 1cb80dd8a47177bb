package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/craftd/internal/config"
	"github.com/jonathan/craftd/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token for a user",
	Long:  `Sign a JWT for the given user with JWT_SECRET. The token authorizes reads of that user's career records.`,
	RunE:  runToken,
}

var tokenUser string

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User UUID (defaults to CRAFTD_USER_ID)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = tokenUser
	}
	userID, err := cfg.ParsedUserID()
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(userID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
