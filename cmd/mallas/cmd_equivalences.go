package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/config"
	"github.com/JairAlexey/AnalisisDeMallas/internal/equivalence"
	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

func newEquivalencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equivalences",
		Short: "Detect equivalent subjects across universities",
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

			var subjects []equivalence.Subject
			for _, c := range careers {
				for _, name := range c.Subjects() {
					subjects = append(subjects, equivalence.Subject{
						Name:       name,
						University: c.University,
					})
				}
			}

			decisions := logging.NewDecisionLogger(config.StateDir(), cfg.Logging.Level)
			defer decisions.Close()

			groups, err := equivalence.Find(subjects, cfg.Analysis.EquivalenceThreshold, equivalence.Options{
				Normalizer: textnorm.New(textnorm.WithExtraStopwords(cfg.Analysis.ExtraStopwords)),
				Keywords:   cfg.Analysis.Keywords,
				Workers:    cfg.Analysis.Workers,
				Decisions:  decisions,
			})
			if err != nil {
				return err
			}

			if spansOnly, _ := cmd.Flags().GetBool("spans-only"); spansOnly {
				spanning := groups[:0]
				for _, g := range groups {
					if g.Spans() {
						spanning = append(spanning, g)
					}
				}
				groups = spanning
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"threshold": cfg.Analysis.EquivalenceThreshold,
					"groups":    groups,
					"count":     len(groups),
				})
			}

			printGroups(cmd, groups, cfg.Analysis.EquivalenceThreshold)
			return nil
		},
	}

	addAnalysisFlags(cmd)
	cmd.Flags().Bool("spans-only", false, "Only show groups covering two or more universities")
	return cmd
}

func printGroups(cmd *cobra.Command, groups []models.EquivalenceGroup, threshold float64) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d equivalence groups at threshold %.2f\n\n", len(groups), threshold)
	for _, g := range groups {
		fmt.Fprintf(out, "%s  [%s]\n", g.Representative, strings.Join(g.Universities, ", "))
		for _, m := range g.Members {
			fmt.Fprintf(out, "  - %s\n", m)
		}
	}
}
