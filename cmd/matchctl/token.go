package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"internship-backend/internal/shared/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a development access token for the applications API",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenEmail   string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "User ID to put in the token (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("sub")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	verifier, err := auth.NewVerifier(cfg.AuthJWTSecret, !cfg.IsDevLike())
	if err != nil {
		return err
	}
	claims := auth.Claims{Email: strings.TrimSpace(tokenEmail)}
	claims.Subject = strings.TrimSpace(tokenSubject)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(tokenTTL))
	signed, err := verifier.Sign(claims)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
	return err
}
