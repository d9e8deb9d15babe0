package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"vet-clinic-api/internal/router"
	"vet-clinic-api/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample owners, pets, medical records and catalog from YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := seed.Decode(f)
		if err != nil {
			return err
		}

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
		sum, err := seed.Apply(cmd.Context(), doc, seed.Targets{
			Owners:         svc.Owners,
			Pets:           svc.Pets,
			MedicalRecords: svc.MedicalRecords,
			Categories:     svc.Categories,
			Products:       svc.Products,
		}, a.log)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed YAML file")
	rootCmd.AddCommand(seedCmd)
}
