package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/analyzer"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-university curriculum statistics",
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
			stats := report.UniversityStats

			if university, _ := cmd.Flags().GetString("university"); university != "" {
				one, ok := stats[university]
				if !ok {
					return fmt.Errorf("unknown university %q", university)
				}
				stats = map[string]models.UniversityStats{university: one}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"stats": stats,
					"count": len(stats),
				})
			}

			out := cmd.OutOrStdout()
			for _, name := range sortedStatKeys(stats) {
				s := stats[name]
				fmt.Fprintf(out, "%s\n", s.University)
				fmt.Fprintf(out, "  careers:              %d\n", s.Careers)
				fmt.Fprintf(out, "  distinct subjects:    %d\n", s.TotalSubjects)
				fmt.Fprintf(out, "  shared with others:   %d\n", s.CommonSubjects)
				fmt.Fprintf(out, "  unique:               %d\n", s.UniqueSubjects)
				fmt.Fprintf(out, "  subjects/semester:    %.1f\n", s.AvgSubjectsPerSemester)

				lengths := make([]int, 0, len(s.SemesterDistribution))
				for key := range s.SemesterDistribution {
					if n, err := strconv.Atoi(key); err == nil {
						lengths = append(lengths, n)
					}
				}
				sort.Ints(lengths)
				for _, n := range lengths {
					fmt.Fprintf(out, "  %d-semester careers:   %d\n", n, s.SemesterDistribution[strconv.Itoa(n)])
				}
			}
			return nil
		},
	}

	addAnalysisFlags(cmd)
	cmd.Flags().String("university", "", "Only show statistics for one university")
	return cmd
}
