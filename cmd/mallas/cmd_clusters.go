package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/clustering"
	"github.com/JairAlexey/AnalisisDeMallas/internal/config"
	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

func newClustersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Group careers into clusters of related degree programs",
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

			decisions := logging.NewDecisionLogger(config.StateDir(), cfg.Logging.Level)
			defer decisions.Close()

			clusters, err := clustering.Cluster(careers, cfg.Analysis.ClusterThreshold, clustering.Options{
				Normalizer: textnorm.New(textnorm.WithExtraStopwords(cfg.Analysis.ExtraStopwords)),
				NameWeight: cfg.Analysis.NameWeight,
				Advanced:   cfg.Analysis.Advanced,
				Workers:    cfg.Analysis.Workers,
				Decisions:  decisions,
			})
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"threshold": cfg.Analysis.ClusterThreshold,
					"advanced":  cfg.Analysis.Advanced,
					"clusters":  clusters,
					"count":     len(clusters),
				})
			}

			printClusters(cmd, clusters, cfg.Analysis.ClusterThreshold)
			return nil
		},
	}

	addAnalysisFlags(cmd)
	return cmd
}

func printClusters(cmd *cobra.Command, clusters []models.CareerCluster, threshold float64) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d career clusters at threshold %.2f\n\n", len(clusters), threshold)
	for _, c := range clusters {
		fmt.Fprintf(out, "[%d] %d careers", c.ID, len(c.Members))
		if len(c.CentroidKeywords) > 0 {
			fmt.Fprintf(out, "  (%s)", strings.Join(c.CentroidKeywords, ", "))
		}
		fmt.Fprintln(out)
		for _, m := range c.Members {
			fmt.Fprintf(out, "  %s / %s (%d subjects)\n", m.University, m.Career, m.TotalSubjects)
		}
	}
}
