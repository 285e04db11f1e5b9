package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/analyzer"
	"github.com/JairAlexey/AnalisisDeMallas/internal/config"
	"github.com/JairAlexey/AnalisisDeMallas/internal/dataset"
	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/store"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mallas",
		Short: "Curriculum analysis across universities",
		Long: `mallas compares academic curricula across universities.

It detects equivalent subjects, clusters similar careers, and computes
per-university statistics from imported curricula datasets.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("db", "", "Curricula database path (default: from config)")
	rootCmd.PersistentFlags().String("data", "", "Analyze a dataset JSON file directly instead of the database")

	rootCmd.AddCommand(
		newVersionCmd(),
		newImportCmd(),
		newListCmd(),
		newAnalyzeCmd(),
		newEquivalencesCmd(),
		newClustersCmd(),
		newStatsCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "mallas version %s\n", version)
			}
		},
	}
}

// loadConfig loads the user configuration and applies the global flags that
// override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Storage.DBPath = db
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Storage.DatasetPath = data
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadCareers returns the careers to analyze: directly from a dataset file
// when --data is set, otherwise from the curricula database.
func loadCareers(cmd *cobra.Command, cfg *config.Config) ([]models.Career, error) {
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		careers, err := dataset.Load(data)
		if err != nil {
			return nil, err
		}
		if len(careers) == 0 {
			return nil, fmt.Errorf("%w: dataset %s contains no careers", models.ErrInvalidInput, data)
		}
		return careers, nil
	}

	s, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	careers, err := s.ListCareers(cmd.Context(), "")
	if err != nil {
		return nil, err
	}
	if len(careers) == 0 {
		return nil, fmt.Errorf("%w: no curricula stored; run 'mallas import' first", models.ErrInvalidInput)
	}
	return careers, nil
}

// analysisOptions builds analyzer options from config plus an optional
// decision logger at debug level.
func analysisOptions(cfg *config.Config) (analyzer.Options, func()) {
	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	decisions := logging.NewDecisionLogger(config.StateDir(), cfg.Logging.Level)

	opts := analyzer.Options{
		EquivalenceThreshold: cfg.Analysis.EquivalenceThreshold,
		ClusterThreshold:     cfg.Analysis.ClusterThreshold,
		NameWeight:           cfg.Analysis.NameWeight,
		Advanced:             cfg.Analysis.Advanced,
		Keywords:             cfg.Analysis.Keywords,
		ExtraStopwords:       cfg.Analysis.ExtraStopwords,
		Workers:              cfg.Analysis.Workers,
		Logger:               logger,
		Decisions:            decisions,
	}
	return opts, func() { decisions.Close() }
}
