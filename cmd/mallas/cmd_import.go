package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/dataset"
	"github.com/JairAlexey/AnalisisDeMallas/internal/store"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [dataset.json]",
		Short: "Import a curricula dataset into the database",
		Long: `Import reads a dataset JSON file (an array of records with universidad,
carrera, and malla_curricular fields) and stores the curricula in the
database, replacing existing versions of the same careers.

The file argument defaults to the configured dataset path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			path := cfg.Storage.DatasetPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no dataset file given and no dataset_path configured")
			}

			careers, err := dataset.Load(path)
			if err != nil {
				return err
			}

			s, err := store.Open(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ImportCareers(cmd.Context(), careers); err != nil {
				return fmt.Errorf("importing curricula: %w", err)
			}

			universities, total, subjects, err := s.Counts(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"imported":     len(careers),
					"universities": universities,
					"careers":      total,
					"subjects":     subjects,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %d careers. Database now holds %d universities, %d careers, %d subject entries.\n",
				len(careers), universities, total, subjects)
			return nil
		},
	}
}
