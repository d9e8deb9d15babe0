package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/router"
)

var (
	adminEmail    string
	adminUsername string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin user if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireDB(); err != nil {
			return err
		}
		if err := a.migrateUp(cmd.Context()); err != nil {
			return err
		}
		opts, err := a.routerOptions()
		if err != nil {
			return err
		}

		svc := router.BuildServices(opts)
		u, created, err := svc.Users.EnsureAdmin(cmd.Context(), users.CreateInput{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !created {
			fmt.Fprintf(out, "Usuario admin ya existe: %s\n", u.Email)
			return nil
		}
		fmt.Fprintf(out, "Usuario admin creado: %s\n", u.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@example.com", "admin email")
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "admin1234", "admin password")
	rootCmd.AddCommand(createAdminCmd)
}
