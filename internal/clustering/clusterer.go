// Package clustering groups careers into clusters of the same or closely
// related degree programs, using the same single-linkage policy as subject
// equivalence detection but scoring careers on a weighted combination of
// name similarity and curriculum content similarity.
package clustering

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/similarity"
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

// DefaultNameWeight is the share of the combined score carried by career
// name similarity. Career identity is primarily nominal, so the name signal
// dominates the subject-content signal.
const DefaultNameWeight = 0.7

// maxCentroidKeywords caps the keyword summary attached to each cluster.
const maxCentroidKeywords = 5

// Options configures a clustering run. The zero value is usable.
type Options struct {
	// Normalizer supplies cached term sets; a fresh one is created when nil.
	Normalizer *textnorm.Normalizer

	// NameWeight is the name-similarity share in [0.5, 1.0].
	// Zero selects DefaultNameWeight.
	NameWeight float64

	// Advanced enables the subject-content signal. When false, careers are
	// scored on name similarity alone and curricula are never tokenized.
	Advanced bool

	// Workers bounds similarity matrix parallelism (0 = all CPUs).
	Workers int

	// Logger and Decisions receive grouping traces; both may be nil.
	Logger    *slog.Logger
	Decisions *logging.DecisionLogger
}

// features holds the extracted term sets for one career.
type features struct {
	name     textnorm.TermSet
	subjects textnorm.TermSet
}

// Cluster groups careers whose combined similarity reaches threshold.
//
// Careers are processed in a fixed order (university, then name) and merged
// single-linkage: a career joins the first cluster containing at least one
// member scoring >= threshold against it. The pairwise score matrix is fully
// materialized before the grouping pass, so optional parallelism never
// changes the result. A career with an empty curriculum still clusters on
// name similarity.
//
// Clusters are ordered by descending member count, ties by first member's
// career name, and receive sequential ids starting at 1.
func Cluster(careers []models.Career, threshold float64, opts Options) ([]models.CareerCluster, error) {
	if err := models.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	nameWeight := opts.NameWeight
	if nameWeight == 0 {
		nameWeight = DefaultNameWeight
	}
	if nameWeight < 0.5 || nameWeight > 1.0 {
		return nil, fmt.Errorf("%w: name weight %.2f outside [0.5, 1.0]",
			models.ErrInvalidParameter, nameWeight)
	}
	if len(careers) == 0 {
		return []models.CareerCluster{}, nil
	}

	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = textnorm.New()
	}

	ordered := append([]models.Career(nil), careers...)
	models.SortCareers(ordered)

	feats := make([]features, len(ordered))
	nameSets := make([]textnorm.TermSet, len(ordered))
	subjectSets := make([]textnorm.TermSet, len(ordered))
	for i, c := range ordered {
		f := features{name: normalizer.Normalize(c.Name), subjects: make(textnorm.TermSet)}
		if opts.Advanced {
			for _, subject := range c.Subjects() {
				f.subjects.Union(normalizer.Normalize(subject))
			}
		}
		feats[i] = f
		nameSets[i] = f.name
		subjectSets[i] = f.subjects
	}

	nameMatrix := similarity.ComputeMatrix(nameSets, similarity.Jaccard, opts.Workers)
	var subjectMatrix *similarity.Matrix
	if opts.Advanced {
		subjectMatrix = similarity.ComputeMatrix(subjectSets, similarity.Jaccard, opts.Workers)
	}

	combined := func(i, j int) float64 {
		nameSim := nameMatrix.At(i, j)
		if !opts.Advanced {
			return nameSim
		}
		// Careers with empty curricula cluster on name similarity alone
		// instead of being dragged down by a zero content score.
		if len(subjectSets[i]) == 0 && len(subjectSets[j]) == 0 {
			return nameSim
		}
		return similarity.CareerScore(nameSim, subjectMatrix.At(i, j), nameWeight)
	}

	type protoCluster struct {
		members []int
	}
	var clusters []*protoCluster

	for i := range ordered {
		assigned := false
	search:
		for _, c := range clusters {
			for _, m := range c.members {
				if combined(i, m) >= threshold {
					c.members = append(c.members, i)
					assigned = true
					logDecision(opts, map[string]any{
						"event":     "career_merged",
						"career":    ordered[i].Name,
						"match":     ordered[m].Name,
						"score":     combined(i, m),
						"threshold": threshold,
					})
					break search
				}
			}
		}
		if !assigned {
			clusters = append(clusters, &protoCluster{members: []int{i}})
			logDecision(opts, map[string]any{
				"event":     "cluster_seeded",
				"career":    ordered[i].Name,
				"threshold": threshold,
			})
		}
	}

	out := make([]models.CareerCluster, 0, len(clusters))
	for _, c := range clusters {
		members := make([]models.ClusterMember, 0, len(c.members))
		uniSet := make(map[string]struct{})
		memberNames := make([]textnorm.TermSet, 0, len(c.members))
		for _, idx := range c.members {
			career := ordered[idx]
			members = append(members, models.ClusterMember{
				University:    career.University,
				Career:        career.Name,
				TotalSubjects: career.SubjectCount(),
			})
			uniSet[career.University] = struct{}{}
			memberNames = append(memberNames, feats[idx].name)
		}

		unis := make([]string, 0, len(uniSet))
		for u := range uniSet {
			unis = append(unis, u)
		}
		sort.Strings(unis)

		out = append(out, models.CareerCluster{
			Members:          members,
			Universities:     unis,
			CentroidKeywords: centroidKeywords(memberNames),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Members) != len(out[j].Members) {
			return len(out[i].Members) > len(out[j].Members)
		}
		return out[i].Members[0].Career < out[j].Members[0].Career
	})
	for i := range out {
		out[i].ID = i + 1
	}

	if opts.Logger != nil {
		opts.Logger.Debug("career clustering complete",
			"careers", len(careers), "clusters", len(out))
	}
	return out, nil
}

// centroidKeywords returns the terms present in at least half of the member
// careers' name term sets, most frequent first, capped at five.
func centroidKeywords(memberNames []textnorm.TermSet) []string {
	counts := make(map[string]int)
	for _, set := range memberNames {
		for t := range set {
			counts[t]++
		}
	}

	minCount := (len(memberNames) + 1) / 2
	if minCount < 1 {
		minCount = 1
	}

	var keywords []string
	for t, n := range counts {
		if n >= minCount {
			keywords = append(keywords, t)
		}
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if len(keywords) > maxCentroidKeywords {
		keywords = keywords[:maxCentroidKeywords]
	}
	return keywords
}

func logDecision(opts Options, event map[string]any) {
	opts.Decisions.Log(event)
	if opts.Logger != nil {
		opts.Logger.Debug("clustering decision", "event", event["event"], "career", event["career"])
	}
}
