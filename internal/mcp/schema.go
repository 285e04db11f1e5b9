// Package mcp provides an MCP (Model Context Protocol) server exposing the
// curriculum analysis engine to agent clients.
package mcp

import (
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

// AnalyzeInput defines the input for the mallas_analyze tool.
type AnalyzeInput struct {
	University           string   `json:"university,omitempty" jsonschema:"Restrict the analysis to one university (default: all)"`
	EquivalenceThreshold float64  `json:"equivalence_threshold,omitempty" jsonschema:"Minimum similarity for subject grouping (0.1-0.8, default from config)"`
	ClusterThreshold     float64  `json:"cluster_threshold,omitempty" jsonschema:"Minimum combined similarity for career clustering (0.1-0.8, default from config)"`
	Advanced             bool     `json:"advanced,omitempty" jsonschema:"Blend curriculum content into career clustering (default: false)"`
	Keywords             []string `json:"keywords,omitempty" jsonschema:"Importance terms that count double in subject similarity"`
}

// AnalyzeOutput defines the output for the mallas_analyze tool.
type AnalyzeOutput struct {
	Report  *models.AnalysisReport `json:"report" jsonschema:"The full analysis report"`
	Careers int                    `json:"careers" jsonschema:"Number of careers analyzed"`
}

// EquivalencesInput defines the input for the mallas_equivalences tool.
type EquivalencesInput struct {
	Threshold float64  `json:"threshold,omitempty" jsonschema:"Minimum similarity for subject grouping (0.1-0.8, default from config)"`
	Keywords  []string `json:"keywords,omitempty" jsonschema:"Importance terms that count double in subject similarity"`
	SpansOnly bool     `json:"spans_only,omitempty" jsonschema:"Only return groups covering two or more universities (default: false)"`
}

// EquivalencesOutput defines the output for the mallas_equivalences tool.
type EquivalencesOutput struct {
	Groups []models.EquivalenceGroup `json:"groups" jsonschema:"Equivalence groups ordered by descending size"`
	Count  int                       `json:"count" jsonschema:"Number of groups"`
}

// ClustersInput defines the input for the mallas_clusters tool.
type ClustersInput struct {
	Threshold  float64 `json:"threshold,omitempty" jsonschema:"Minimum combined similarity for career clustering (0.1-0.8, default from config)"`
	NameWeight float64 `json:"name_weight,omitempty" jsonschema:"Career-name share of the combined score (0.5-1.0, default: 0.7)"`
	Advanced   bool    `json:"advanced,omitempty" jsonschema:"Blend curriculum content into the score (default: false)"`
}

// ClustersOutput defines the output for the mallas_clusters tool.
type ClustersOutput struct {
	Clusters []models.CareerCluster `json:"clusters" jsonschema:"Career clusters ordered by descending size"`
	Count    int                    `json:"count" jsonschema:"Number of clusters"`
}

// StatsInput defines the input for the mallas_stats tool.
type StatsInput struct {
	University string `json:"university,omitempty" jsonschema:"Restrict statistics to one university (default: all)"`
}

// StatsOutput defines the output for the mallas_stats tool.
type StatsOutput struct {
	Stats map[string]models.UniversityStats `json:"stats" jsonschema:"Per-university curriculum statistics"`
	Count int                               `json:"count" jsonschema:"Number of universities"`
}
