package cmd

import (
	"context"

	"fuelprice/internal/app"
	"fuelprice/internal/model"
	"fuelprice/internal/service"

	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
	adminRole     string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a dashboard user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			user, err := a.Services.Auth.CreateUser(ctx, service.CreateUserRequest{
				Name:     adminName,
				Email:    adminEmail,
				Password: adminPassword,
				Role:     adminRole,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		})
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password, at least 8 characters")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	createAdminCmd.Flags().StringVar(&adminRole, "role", model.RoleAdmin, "admin, manager or staff")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
