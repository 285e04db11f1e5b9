package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JairAlexey/AnalisisDeMallas/internal/analyzer"
	"github.com/JairAlexey/AnalisisDeMallas/internal/clustering"
	"github.com/JairAlexey/AnalisisDeMallas/internal/equivalence"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/ratelimit"
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

const datasetSummaryURI = "mallas://dataset/summary"

// registerTools registers all analysis tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mallas_analyze",
		Description: "Run the full curriculum analysis: subject equivalences, career clusters, and per-university statistics",
	}, s.handleAnalyze)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mallas_equivalences",
		Description: "Detect groups of equivalent subjects across universities at a similarity threshold",
	}, s.handleEquivalences)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mallas_clusters",
		Description: "Group careers into clusters of the same or closely related degree programs",
	}, s.handleClusters)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "mallas_stats",
		Description: "Compute per-university curriculum statistics (career counts, subject overlap, semester load)",
	}, s.handleStats)
}

// registerResources registers MCP resources for auto-loading into context.
func (s *Server) registerResources() {
	s.server.AddResource(&sdk.Resource{
		URI:         datasetSummaryURI,
		Name:        "mallas-dataset-summary",
		Description: "Summary of the stored curricula dataset: universities, careers, and subject counts.",
		MIMEType:    "text/markdown",
	}, s.handleDatasetSummary)
}

// loadCareers fetches stored careers, optionally filtered by university.
func (s *Server) loadCareers(ctx context.Context, university string) ([]models.Career, error) {
	careers, err := s.store.ListCareers(ctx, university)
	if err != nil {
		return nil, fmt.Errorf("failed to load careers: %w", err)
	}
	if len(careers) == 0 {
		return nil, fmt.Errorf("%w: no curricula stored; import a dataset first", models.ErrInvalidInput)
	}
	return careers, nil
}

// handleAnalyze implements the mallas_analyze tool.
func (s *Server) handleAnalyze(ctx context.Context, req *sdk.CallToolRequest, args AnalyzeInput) (*sdk.CallToolResult, AnalyzeOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "mallas_analyze"); err != nil {
		return nil, AnalyzeOutput{}, err
	}

	careers, err := s.loadCareers(ctx, args.University)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	opts := analyzer.Options{
		EquivalenceThreshold: args.EquivalenceThreshold,
		ClusterThreshold:     args.ClusterThreshold,
		NameWeight:           s.analysis.NameWeight,
		Advanced:             args.Advanced || s.analysis.Advanced,
		Keywords:             args.Keywords,
		ExtraStopwords:       s.analysis.ExtraStopwords,
		Workers:              s.analysis.Workers,
		Logger:               s.logger,
	}
	if opts.EquivalenceThreshold == 0 {
		opts.EquivalenceThreshold = s.analysis.EquivalenceThreshold
	}
	if opts.ClusterThreshold == 0 {
		opts.ClusterThreshold = s.analysis.ClusterThreshold
	}
	if len(opts.Keywords) == 0 {
		opts.Keywords = s.analysis.Keywords
	}

	report, err := analyzer.Analyze(careers, opts)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	return nil, AnalyzeOutput{Report: report, Careers: len(careers)}, nil
}

// handleEquivalences implements the mallas_equivalences tool.
func (s *Server) handleEquivalences(ctx context.Context, req *sdk.CallToolRequest, args EquivalencesInput) (*sdk.CallToolResult, EquivalencesOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "mallas_equivalences"); err != nil {
		return nil, EquivalencesOutput{}, err
	}

	careers, err := s.loadCareers(ctx, "")
	if err != nil {
		return nil, EquivalencesOutput{}, err
	}

	var subjects []equivalence.Subject
	for _, c := range careers {
		for _, name := range c.Subjects() {
			subjects = append(subjects, equivalence.Subject{Name: name, University: c.University})
		}
	}

	threshold := args.Threshold
	if threshold == 0 {
		threshold = s.analysis.EquivalenceThreshold
	}
	keywords := args.Keywords
	if len(keywords) == 0 {
		keywords = s.analysis.Keywords
	}

	groups, err := equivalence.Find(subjects, threshold, equivalence.Options{
		Normalizer: textnorm.New(textnorm.WithExtraStopwords(s.analysis.ExtraStopwords)),
		Keywords:   keywords,
		Workers:    s.analysis.Workers,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, EquivalencesOutput{}, err
	}

	if args.SpansOnly {
		spanning := groups[:0]
		for _, g := range groups {
			if g.Spans() {
				spanning = append(spanning, g)
			}
		}
		groups = spanning
	}

	return nil, EquivalencesOutput{Groups: groups, Count: len(groups)}, nil
}

// handleClusters implements the mallas_clusters tool.
func (s *Server) handleClusters(ctx context.Context, req *sdk.CallToolRequest, args ClustersInput) (*sdk.CallToolResult, ClustersOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "mallas_clusters"); err != nil {
		return nil, ClustersOutput{}, err
	}

	careers, err := s.loadCareers(ctx, "")
	if err != nil {
		return nil, ClustersOutput{}, err
	}

	threshold := args.Threshold
	if threshold == 0 {
		threshold = s.analysis.ClusterThreshold
	}
	nameWeight := args.NameWeight
	if nameWeight == 0 {
		nameWeight = s.analysis.NameWeight
	}

	clusters, err := clustering.Cluster(careers, threshold, clustering.Options{
		Normalizer: textnorm.New(textnorm.WithExtraStopwords(s.analysis.ExtraStopwords)),
		NameWeight: nameWeight,
		Advanced:   args.Advanced || s.analysis.Advanced,
		Workers:    s.analysis.Workers,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, ClustersOutput{}, err
	}

	return nil, ClustersOutput{Clusters: clusters, Count: len(clusters)}, nil
}

// handleStats implements the mallas_stats tool. Statistics come from a full
// analysis at the configured thresholds so the common/unique split matches
// what mallas_analyze reports.
func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "mallas_stats"); err != nil {
		return nil, StatsOutput{}, err
	}

	careers, err := s.loadCareers(ctx, "")
	if err != nil {
		return nil, StatsOutput{}, err
	}

	report, err := analyzer.Analyze(careers, analyzer.Options{
		EquivalenceThreshold: s.analysis.EquivalenceThreshold,
		ClusterThreshold:     s.analysis.ClusterThreshold,
		NameWeight:           s.analysis.NameWeight,
		Keywords:             s.analysis.Keywords,
		ExtraStopwords:       s.analysis.ExtraStopwords,
		Workers:              s.analysis.Workers,
		Logger:               s.logger,
	})
	if err != nil {
		return nil, StatsOutput{}, err
	}

	stats := report.UniversityStats
	if args.University != "" {
		one, ok := stats[args.University]
		if !ok {
			return nil, StatsOutput{}, fmt.Errorf("%w: unknown university %q",
				models.ErrInvalidInput, args.University)
		}
		stats = map[string]models.UniversityStats{args.University: one}
	}

	return nil, StatsOutput{Stats: stats, Count: len(stats)}, nil
}

// handleDatasetSummary renders the stored dataset as a markdown summary.
func (s *Server) handleDatasetSummary(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	universities, careers, subjects, err := s.store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize dataset: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Curricula Dataset\n\n")
	if careers == 0 {
		sb.WriteString("No curricula stored yet. Import a dataset with the `import` command.\n")
	} else {
		fmt.Fprintf(&sb, "%d universities, %d careers, %d subject entries.\n\n",
			universities, careers, subjects)

		names, err := s.store.ListUniversities(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list universities: %w", err)
		}
		sb.WriteString("## Universities\n\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "- %s\n", name)
		}
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      datasetSummaryURI,
				MIMEType: "text/markdown",
				Text:     sb.String(),
			},
		},
	}, nil
}
