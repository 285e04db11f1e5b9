// Package analyzer orchestrates a full curriculum analysis run: subject
// equivalence detection, career clustering, and per-university statistics,
// assembled into a single report.
package analyzer

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/JairAlexey/AnalisisDeMallas/internal/clustering"
	"github.com/JairAlexey/AnalisisDeMallas/internal/equivalence"
	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

// Options configures one analysis run. Zero thresholds select the default.
type Options struct {
	// EquivalenceThreshold for subject grouping; 0 selects the default (0.5).
	EquivalenceThreshold float64

	// ClusterThreshold for career clustering; 0 selects the default (0.5).
	ClusterThreshold float64

	// NameWeight is passed through to clustering; 0 selects its default.
	NameWeight float64

	// Advanced enables curriculum-content scoring in career clustering.
	Advanced bool

	// Keywords are importance terms that count double in subject similarity.
	Keywords []string

	// ExtraStopwords extend the built-in stopword list for this run.
	ExtraStopwords []string

	// Workers bounds similarity matrix parallelism (0 = all CPUs).
	Workers int

	// Logger and Decisions receive analysis traces; both may be nil.
	Logger    *slog.Logger
	Decisions *logging.DecisionLogger
}

// Analyze runs the full pipeline over the given careers and returns a
// complete report, or an error and no report. The input is never mutated and
// nothing is shared across calls, so Analyze is safe to call concurrently
// with distinct inputs.
func Analyze(careers []models.Career, opts Options) (*models.AnalysisReport, error) {
	if len(careers) == 0 {
		return nil, fmt.Errorf("%w: no careers to analyze", models.ErrInvalidInput)
	}
	for _, c := range careers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	eqThreshold := opts.EquivalenceThreshold
	if eqThreshold == 0 {
		eqThreshold = models.DefaultThreshold
	}
	clThreshold := opts.ClusterThreshold
	if clThreshold == 0 {
		clThreshold = models.DefaultThreshold
	}

	normalizer := textnorm.New(textnorm.WithExtraStopwords(opts.ExtraStopwords))

	subjects := collectSubjects(careers)
	groups, err := equivalence.Find(subjects, eqThreshold, equivalence.Options{
		Normalizer: normalizer,
		Keywords:   opts.Keywords,
		Workers:    opts.Workers,
		Logger:     opts.Logger,
		Decisions:  opts.Decisions,
	})
	if err != nil {
		return nil, fmt.Errorf("detecting equivalences: %w", err)
	}

	clusters, err := clustering.Cluster(careers, clThreshold, clustering.Options{
		Normalizer: normalizer,
		NameWeight: opts.NameWeight,
		Advanced:   opts.Advanced,
		Workers:    opts.Workers,
		Logger:     opts.Logger,
		Decisions:  opts.Decisions,
	})
	if err != nil {
		return nil, fmt.Errorf("clustering careers: %w", err)
	}

	report := &models.AnalysisReport{
		EquivalenceThreshold: eqThreshold,
		ClusterThreshold:     clThreshold,
		EquivalenceGroups:    groups,
		CareerClusters:       clusters,
		UniversityStats:      universityStats(careers, groups),
	}

	if opts.Logger != nil {
		opts.Logger.Info("analysis complete",
			"careers", len(careers),
			"equivalence_groups", len(groups),
			"clusters", len(clusters),
			"universities", len(report.UniversityStats))
	}
	return report, nil
}

// collectSubjects flattens every curriculum into subject occurrences.
func collectSubjects(careers []models.Career) []equivalence.Subject {
	var subjects []equivalence.Subject
	for _, c := range careers {
		for _, name := range c.Subjects() {
			subjects = append(subjects, equivalence.Subject{
				Name:       name,
				University: c.University,
			})
		}
	}
	return subjects
}

// universityStats aggregates per-university figures. A subject counts as
// common when its equivalence group spans two or more universities, so for
// every university common + unique equals its distinct subject total.
func universityStats(careers []models.Career, groups []models.EquivalenceGroup) map[string]models.UniversityStats {
	spanning := make(map[string]bool)
	for _, g := range groups {
		if !g.Spans() {
			continue
		}
		for _, m := range g.Members {
			spanning[m] = true
		}
	}

	type acc struct {
		careers   int
		semesters int
		entries   int
		distinct  map[string]struct{}
		dist      map[string]int
	}
	accs := make(map[string]*acc)

	for _, c := range careers {
		a := accs[c.University]
		if a == nil {
			a = &acc{distinct: make(map[string]struct{}), dist: make(map[string]int)}
			accs[c.University] = a
		}
		a.careers++
		a.semesters += len(c.Semesters)
		a.dist[strconv.Itoa(len(c.Semesters))]++
		for _, name := range c.Subjects() {
			a.entries++
			a.distinct[name] = struct{}{}
		}
	}

	stats := make(map[string]models.UniversityStats, len(accs))
	for university, a := range accs {
		common := 0
		for name := range a.distinct {
			if spanning[name] {
				common++
			}
		}

		avg := 0.0
		if a.semesters > 0 {
			avg = float64(a.entries) / float64(a.semesters)
		}

		stats[university] = models.UniversityStats{
			University:             university,
			Careers:                a.careers,
			TotalSubjects:          len(a.distinct),
			CommonSubjects:         common,
			UniqueSubjects:         len(a.distinct) - common,
			AvgSubjectsPerSemester: avg,
			SemesterDistribution:   a.dist,
		}
	}
	return stats
}
