package main

import (
	"errors"
	"fmt"

	"convertify/internal/auth"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an HS256 access token signed with AUTH_JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("AUTH_JWT_SECRET is not set")
		}
		user, _ := cmd.Flags().GetString("user")
		accountType, _ := cmd.Flags().GetString("type")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, ttl)
		if err != nil {
			return err
		}
		token, err := issuer.Issue(user, accountType)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "user id to embed (required)")
	tokenCmd.Flags().String("type", "user", "account type claim")
	tokenCmd.Flags().Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(tokenCmd)
}
