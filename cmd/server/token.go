package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ofertemutare/ofertemutare/internal/config"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/service"
	"github.com/spf13/cobra"
)

// tokenCmd mints a bearer token for local testing against the API.
func tokenCmd() *cobra.Command {
	var (
		subject string
		email   string
		role    string
		expiry  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cfg.IsDevelopment() {
				return fmt.Errorf("token command is only available with APP_ENV=development")
			}

			if subject == "" {
				subject = uuid.NewString()
			}

			token, err := service.NewAuthService(cfg.JWTSecret).GenerateJWT(&model.Caller{
				ID:    subject,
				Email: email,
				Role:  role,
			}, expiry)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "caller id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "", "caller email")
	cmd.Flags().StringVar(&role, "role", model.RoleCustomer, "customer, company or admin")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "token lifetime")

	return cmd
}
