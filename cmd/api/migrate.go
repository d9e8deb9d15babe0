package main

import (
	"github.com/spf13/cobra"

	pg "vet-clinic-api/internal/adapters/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Run database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireDB(); err != nil {
			return err
		}
		return pg.Migrate(cmd.Context(), a.db, args[0], a.log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
