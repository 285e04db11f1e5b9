package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/analyzer"
	"github.com/JairAlexey/AnalisisDeMallas/internal/config"
	"github.com/JairAlexey/AnalisisDeMallas/internal/export"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full curriculum analysis",
		Long: `Analyze runs subject equivalence detection, career clustering, and
per-university statistics over the stored curricula (or a dataset file
given with --data) and prints or exports the full report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyAnalysisFlags(cmd, cfg)

			careers, err := loadCareers(cmd, cfg)
			if err != nil {
				return err
			}

			opts, closeDecisions := analysisOptions(cfg)
			defer closeDecisions()

			report, err := analyzer.Analyze(careers, opts)
			if err != nil {
				return err
			}

			if output, _ := cmd.Flags().GetString("output"); output != "" {
				formatFlag, _ := cmd.Flags().GetString("format")
				format, err := parseFormatFlag(formatFlag)
				if err != nil {
					return err
				}
				if err := export.WriteFile(output, report, format); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
				return nil
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return export.Write(cmd.OutOrStdout(), report, export.FormatJSON)
			}

			printReport(cmd, report)
			return nil
		},
	}

	addAnalysisFlags(cmd)
	cmd.Flags().String("output", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("format", "", "Report format: json or yaml (default: inferred from --output extension)")
	return cmd
}

// addAnalysisFlags declares the tuning flags shared by the analysis commands.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("equivalence-threshold", 0, "Minimum similarity for subject grouping (0.1-0.8)")
	cmd.Flags().Float64("cluster-threshold", 0, "Minimum combined similarity for career clustering (0.1-0.8)")
	cmd.Flags().Float64("name-weight", 0, "Career-name share of the clustering score (0.5-1.0)")
	cmd.Flags().Bool("advanced", false, "Blend curriculum content into career clustering")
	cmd.Flags().StringSlice("keywords", nil, "Importance terms that count double in subject similarity")
}

// applyAnalysisFlags overrides configured analysis parameters with any flags
// set on the command line.
func applyAnalysisFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("equivalence-threshold") {
		cfg.Analysis.EquivalenceThreshold, _ = cmd.Flags().GetFloat64("equivalence-threshold")
	}
	if cmd.Flags().Changed("cluster-threshold") {
		cfg.Analysis.ClusterThreshold, _ = cmd.Flags().GetFloat64("cluster-threshold")
	}
	if cmd.Flags().Changed("name-weight") {
		cfg.Analysis.NameWeight, _ = cmd.Flags().GetFloat64("name-weight")
	}
	if cmd.Flags().Changed("advanced") {
		cfg.Analysis.Advanced, _ = cmd.Flags().GetBool("advanced")
	}
	if cmd.Flags().Changed("keywords") {
		cfg.Analysis.Keywords, _ = cmd.Flags().GetStringSlice("keywords")
	}
}

func parseFormatFlag(s string) (export.Format, error) {
	if s == "" {
		return "", nil
	}
	return export.ParseFormat(s)
}

// printReport renders a human-readable report summary.
func printReport(cmd *cobra.Command, report *models.AnalysisReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Analysis (equivalence threshold %.2f, cluster threshold %.2f)\n\n",
		report.EquivalenceThreshold, report.ClusterThreshold)

	fmt.Fprintf(out, "Equivalence groups: %d\n", len(report.EquivalenceGroups))
	for _, g := range report.EquivalenceGroups {
		if !g.Spans() {
			continue
		}
		fmt.Fprintf(out, "  %s  (%d subjects across %d universities)\n",
			g.Representative, len(g.Members), len(g.Universities))
	}

	fmt.Fprintf(out, "\nCareer clusters: %d\n", len(report.CareerClusters))
	for _, c := range report.CareerClusters {
		fmt.Fprintf(out, "  [%d] %d careers across %d universities\n",
			c.ID, len(c.Members), len(c.Universities))
		for _, m := range c.Members {
			fmt.Fprintf(out, "      %s / %s (%d subjects)\n", m.University, m.Career, m.TotalSubjects)
		}
	}

	fmt.Fprintf(out, "\nUniversity statistics:\n")
	for _, name := range sortedStatKeys(report.UniversityStats) {
		s := report.UniversityStats[name]
		fmt.Fprintf(out, "  %s: %d careers, %d subjects (%d shared, %d unique), %.1f subjects/semester\n",
			s.University, s.Careers, s.TotalSubjects, s.CommonSubjects, s.UniqueSubjects,
			s.AvgSubjectsPerSemester)
	}
}

func sortedStatKeys(stats map[string]models.UniversityStats) []string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
