package models

// EquivalenceGroup is a set of subject names, possibly from different
// universities, judged to represent the same academic content. Every member
// scored at or above the detection threshold against at least one other
// member (single-linkage, not all-pairs). Never mutated after creation.
type EquivalenceGroup struct {
	// Representative is the most complete member name (the longest one).
	Representative string `json:"representative" yaml:"representative"`

	// Members are the distinct original subject names, sorted ascending.
	Members []string `json:"members" yaml:"members"`

	// Universities are the distinct universities contributing members,
	// sorted ascending.
	Universities []string `json:"universities" yaml:"universities"`
}

// Spans reports whether the group covers two or more universities.
func (g EquivalenceGroup) Spans() bool {
	return len(g.Universities) >= 2
}

// ClusterMember is one career inside a cluster, with enough detail for
// report rendering without carrying the full curriculum.
type ClusterMember struct {
	University    string `json:"university" yaml:"university"`
	Career        string `json:"career" yaml:"career"`
	TotalSubjects int    `json:"total_subjects" yaml:"total_subjects"`
}

// CareerCluster groups careers judged to be the same or closely related
// degree program. Members are ordered by the deterministic processing order
// in which they were merged.
type CareerCluster struct {
	ID               int             `json:"id" yaml:"id"`
	Members          []ClusterMember `json:"members" yaml:"members"`
	Universities     []string        `json:"universities" yaml:"universities"`
	CentroidKeywords []string        `json:"centroid_keywords,omitempty" yaml:"centroid_keywords,omitempty"`
}

// UniversityStats aggregates per-university curriculum statistics.
type UniversityStats struct {
	University string `json:"university" yaml:"university"`

	// Careers is the number of careers the university contributed.
	Careers int `json:"careers" yaml:"careers"`

	// TotalSubjects counts distinct subject names across all careers.
	TotalSubjects int `json:"total_subjects" yaml:"total_subjects"`

	// CommonSubjects counts distinct subjects whose equivalence group spans
	// at least two universities.
	CommonSubjects int `json:"common_subjects" yaml:"common_subjects"`

	// UniqueSubjects counts distinct subjects confined to this university.
	// CommonSubjects + UniqueSubjects == TotalSubjects.
	UniqueSubjects int `json:"unique_subjects" yaml:"unique_subjects"`

	// AvgSubjectsPerSemester averages subject load over all semesters of
	// all careers.
	AvgSubjectsPerSemester float64 `json:"avg_subjects_per_semester" yaml:"avg_subjects_per_semester"`

	// SemesterDistribution maps semester count (as a decimal string, the
	// JSON object key form) to the number of careers with that many
	// semesters.
	SemesterDistribution map[string]int `json:"semester_distribution" yaml:"semester_distribution"`
}

// AnalysisReport is the sole output of one analysis run. Immutable once
// produced; the caller owns it thereafter.
type AnalysisReport struct {
	EquivalenceThreshold float64 `json:"equivalence_threshold" yaml:"equivalence_threshold"`
	ClusterThreshold     float64 `json:"cluster_threshold" yaml:"cluster_threshold"`

	EquivalenceGroups []EquivalenceGroup         `json:"equivalence_groups" yaml:"equivalence_groups"`
	CareerClusters    []CareerCluster            `json:"career_clusters" yaml:"career_clusters"`
	UniversityStats   map[string]UniversityStats `json:"university_stats" yaml:"university_stats"`
}
