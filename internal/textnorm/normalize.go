// Package textnorm canonicalizes subject and career names into comparable
// token sets: lowercase, accent-stripped, punctuation removed, Spanish
// stopwords dropped. Normalization is deterministic and pure, so results are
// cached per source string within one analysis run.
package textnorm

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TermSet is a hash set of normalized tokens.
type TermSet map[string]struct{}

// Has reports whether the set contains term.
func (s TermSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Sorted returns the terms in ascending order.
func (s TermSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Union adds every term of other into s.
func (s TermSet) Union(other TermSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// stripAccents decomposes to NFD, removes combining marks, and recomposes,
// so "Cálculo" becomes "Calculo".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizer converts names into term sets using a fixed stopword and
// abbreviation table, caching results by source string. A Normalizer is
// scoped to one analysis run and is not safe for concurrent use; the engine
// normalizes all inputs before any parallel stage.
type Normalizer struct {
	stopwords map[string]struct{}
	cache     map[string]TermSet
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithExtraStopwords adds caller-supplied stopwords to the default Spanish set.
func WithExtraStopwords(words []string) Option {
	return func(n *Normalizer) {
		for _, w := range words {
			n.stopwords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
}

// New creates a Normalizer with the default Spanish stopword set.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		stopwords: make(map[string]struct{}, len(defaultStopwords)),
		cache:     make(map[string]TermSet),
	}
	for _, w := range defaultStopwords {
		n.stopwords[w] = struct{}{}
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts a name into its term set. Empty or whitespace-only
// input yields an empty set. Idempotent: normalizing the canonical form of a
// name yields the same set.
func (n *Normalizer) Normalize(name string) TermSet {
	if cached, ok := n.cache[name]; ok {
		return cached
	}
	set := n.compute(name)
	n.cache[name] = set
	return set
}

// Canonical returns the normalized form of a name as a single string:
// the term set joined by spaces in sorted order.
func (n *Normalizer) Canonical(name string) string {
	return strings.Join(n.Normalize(name).Sorted(), " ")
}

func (n *Normalizer) compute(name string) TermSet {
	s := strings.ToLower(name)
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}

	set := make(TermSet)
	for _, token := range strings.Fields(s) {
		if expanded, ok := abbreviations[token]; ok {
			token = expanded
		}
		token = cleanToken(token)
		if token == "" {
			continue
		}
		if _, stop := n.stopwords[token]; stop {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// cleanToken drops punctuation, keeping letters, digits, and internal
// hyphens so numerals like "i" or "2" survive as distinguishing tokens.
func cleanToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
