// Package equivalence detects groups of semantically equivalent subjects
// across universities using threshold-based single-linkage grouping over
// normalized term sets.
package equivalence

import (
	"log/slog"
	"sort"

	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
	"github.com/JairAlexey/AnalisisDeMallas/internal/similarity"
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

// Subject is one subject occurrence: a name offered by a university.
type Subject struct {
	Name       string `json:"name" yaml:"name"`
	University string `json:"university" yaml:"university"`
}

// Options configures a detection run. The zero value is usable.
type Options struct {
	// Normalizer supplies cached term sets; a fresh one is created when nil.
	Normalizer *textnorm.Normalizer

	// Keywords are importance terms that count double in similarity scoring.
	Keywords []string

	// Workers bounds similarity matrix parallelism (0 = all CPUs).
	Workers int

	// Logger and Decisions receive grouping traces; both may be nil.
	Logger    *slog.Logger
	Decisions *logging.DecisionLogger
}

// Find groups subjects whose pairwise similarity reaches threshold.
//
// Grouping is single-linkage: a subject joins the first existing group
// containing at least one member scoring >= threshold against it, otherwise
// it seeds a new group. Single-linkage is order-sensitive, so subjects are
// processed in a fixed order (by university, then name) and results are
// reproducible for identical input and threshold. A name appearing verbatim
// in several universities scores 1.0 against itself and always lands in one
// group.
//
// Groups are returned ordered by descending member count, ties broken by
// representative name ascending. Thresholds outside [0.1, 0.8] are rejected
// with models.ErrInvalidParameter.
func Find(subjects []Subject, threshold float64, opts Options) ([]models.EquivalenceGroup, error) {
	if err := models.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return []models.EquivalenceGroup{}, nil
	}

	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = textnorm.New()
	}

	// Fixed processing order: university, then name.
	ordered := append([]Subject(nil), subjects...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].University != ordered[j].University {
			return ordered[i].University < ordered[j].University
		}
		return ordered[i].Name < ordered[j].Name
	})

	// Distinct names keep their first-appearance order; universities per
	// name accumulate across duplicates.
	nameIndex := make(map[string]int)
	var names []string
	universities := make(map[string]map[string]struct{})
	for _, s := range ordered {
		if _, ok := nameIndex[s.Name]; !ok {
			nameIndex[s.Name] = len(names)
			names = append(names, s.Name)
			universities[s.Name] = make(map[string]struct{})
		}
		universities[s.Name][s.University] = struct{}{}
	}

	// Materialize the full pairwise matrix before grouping so optional
	// parallelism cannot influence the deterministic grouping pass.
	sets := make([]textnorm.TermSet, len(names))
	for i, name := range names {
		sets[i] = normalizer.Normalize(name)
	}
	score := scoreFunc(opts.Keywords)
	matrix := similarity.ComputeMatrix(sets, score, opts.Workers)

	type group struct {
		members []int
	}
	var groups []*group

	for i := range names {
		assigned := false
	search:
		for _, g := range groups {
			for _, m := range g.members {
				if matrix.At(i, m) >= threshold {
					g.members = append(g.members, i)
					assigned = true
					logDecision(opts, map[string]any{
						"event":     "subject_merged",
						"subject":   names[i],
						"match":     names[m],
						"score":     matrix.At(i, m),
						"threshold": threshold,
					})
					break search
				}
			}
		}
		if !assigned {
			groups = append(groups, &group{members: []int{i}})
			logDecision(opts, map[string]any{
				"event":     "group_seeded",
				"subject":   names[i],
				"threshold": threshold,
			})
		}
	}

	out := make([]models.EquivalenceGroup, 0, len(groups))
	for _, g := range groups {
		members := make([]string, 0, len(g.members))
		uniSet := make(map[string]struct{})
		for _, idx := range g.members {
			members = append(members, names[idx])
			for u := range universities[names[idx]] {
				uniSet[u] = struct{}{}
			}
		}
		sort.Strings(members)

		unis := make([]string, 0, len(uniSet))
		for u := range uniSet {
			unis = append(unis, u)
		}
		sort.Strings(unis)

		out = append(out, models.EquivalenceGroup{
			Representative: representative(members),
			Members:        members,
			Universities:   unis,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Members) != len(out[j].Members) {
			return len(out[i].Members) > len(out[j].Members)
		}
		return out[i].Representative < out[j].Representative
	})

	if opts.Logger != nil {
		opts.Logger.Debug("equivalence detection complete",
			"subjects", len(subjects), "distinct", len(names), "groups", len(out))
	}
	return out, nil
}

// scoreFunc returns plain Jaccard, or the keyword-weighted variant when an
// importance list is configured.
func scoreFunc(keywords []string) similarity.ScoreFunc {
	if len(keywords) == 0 {
		return similarity.Jaccard
	}
	normalizer := textnorm.New()
	keywordSet := make(textnorm.TermSet)
	for _, k := range keywords {
		keywordSet.Union(normalizer.Normalize(k))
	}
	return func(a, b textnorm.TermSet) float64 {
		return similarity.WeightedJaccard(a, b, keywordSet)
	}
}

// representative picks the most complete member name: the longest one,
// ties resolved toward the alphabetically first. members must be sorted.
func representative(members []string) string {
	best := ""
	for _, m := range members {
		if len(m) > len(best) {
			best = m
		}
	}
	return best
}

func logDecision(opts Options, event map[string]any) {
	opts.Decisions.Log(event)
	if opts.Logger != nil {
		opts.Logger.Debug("grouping decision", "event", event["event"], "subject", event["subject"])
	}
}
