// Package similarity provides the pairwise scoring functions used for
// subject equivalence detection and career clustering.
package similarity

import (
	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

// Jaccard computes the Jaccard index between two term sets:
// |a ∩ b| / |a ∪ b|. Defined as 0.0 when both sets are empty.
// Symmetric, reflexive (1.0 for a non-empty set against itself), and
// bounded in [0, 1]. Runs in O(|a|+|b|).
func Jaccard(a, b textnorm.TermSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for t := range a {
		if b.Has(t) {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// keywordWeight is the multiplier applied to configured keyword terms in
// WeightedJaccard. Applying it to both intersection and union keeps the
// score in [0, 1] and monotone in true overlap.
const keywordWeight = 2.0

// WeightedJaccard computes a Jaccard index where terms in keywords count
// double on both sides of the ratio. With an empty keyword set it equals
// Jaccard. Same symmetry, reflexivity, and bound guarantees.
func WeightedJaccard(a, b, keywords textnorm.TermSet) float64 {
	if len(keywords) == 0 {
		return Jaccard(a, b)
	}
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	weight := func(t string) float64 {
		if keywords.Has(t) {
			return keywordWeight
		}
		return 1.0
	}

	var intersection, union float64
	for t := range a {
		w := weight(t)
		union += w
		if b.Has(t) {
			intersection += w
		}
	}
	for t := range b {
		if !a.Has(t) {
			union += weight(t)
		}
	}

	if union == 0 {
		return 0.0
	}
	return intersection / union
}

// CareerScore combines name similarity and subject-set similarity into one
// score. nameWeight is the share given to the name signal; career identity
// is primarily nominal, so callers keep nameWeight >= 0.5.
func CareerScore(nameSim, subjectSim, nameWeight float64) float64 {
	return nameSim*nameWeight + subjectSim*(1.0-nameWeight)
}
