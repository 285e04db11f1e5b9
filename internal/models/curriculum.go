// Package models defines the domain types shared across the curriculum
// analysis engine: universities, careers, curricula, and the report
// structures returned to callers.
package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// University identifies an institution by name. Created from the input
// dataset and immutable during analysis.
type University struct {
	Name string `json:"name" yaml:"name"`
}

// Semester holds the ordered subject names taught in one semester.
type Semester struct {
	Index    int      `json:"index" yaml:"index"`
	Subjects []string `json:"subjects" yaml:"subjects"`
}

// Career is one degree program at one university, with its curriculum
// ordered by semester index. Immutable input to the engine.
type Career struct {
	University string     `json:"university" yaml:"university"`
	Name       string     `json:"name" yaml:"name"`
	Semesters  []Semester `json:"semesters" yaml:"semesters"`
}

// Subjects returns all subject names flattened in semester order.
func (c Career) Subjects() []string {
	var out []string
	for _, sem := range c.Semesters {
		out = append(out, sem.Subjects...)
	}
	return out
}

// SubjectCount returns the total number of subject entries across semesters.
func (c Career) SubjectCount() int {
	n := 0
	for _, sem := range c.Semesters {
		n += len(sem.Subjects)
	}
	return n
}

// Validate checks the structural invariants required by the analyzer:
// at least one semester, and strictly positive, unique semester indices.
func (c Career) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: career with empty name (university %q)", ErrInvalidInput, c.University)
	}
	if len(c.Semesters) == 0 {
		return fmt.Errorf("%w: career %q at %q has no semesters", ErrInvalidInput, c.Name, c.University)
	}
	seen := make(map[int]bool, len(c.Semesters))
	for _, sem := range c.Semesters {
		if sem.Index <= 0 {
			return fmt.Errorf("%w: career %q has non-positive semester index %d", ErrInvalidInput, c.Name, sem.Index)
		}
		if seen[sem.Index] {
			return fmt.Errorf("%w: career %q has duplicate semester index %d", ErrInvalidInput, c.Name, sem.Index)
		}
		seen[sem.Index] = true
	}
	return nil
}

// CurriculumRecord is the input boundary shape: one career as it appears in
// the source dataset, with semester numbers as string keys.
type CurriculumRecord struct {
	University string              `json:"universidad" yaml:"universidad"`
	Career     string              `json:"carrera" yaml:"carrera"`
	Curriculum map[string][]string `json:"malla_curricular" yaml:"malla_curricular"`
}

// ToCareer converts a raw record into a validated Career with semesters
// sorted by index. Semester keys must parse to distinct positive integers;
// any sequence of small positive integers is accepted, duplicates (for
// example "1" and "01") are rejected.
func (r CurriculumRecord) ToCareer() (Career, error) {
	career := Career{
		University: strings.TrimSpace(r.University),
		Name:       strings.TrimSpace(r.Career),
	}
	if career.University == "" {
		return Career{}, fmt.Errorf("%w: record %q has empty university", ErrInvalidInput, r.Career)
	}

	seen := make(map[int]bool, len(r.Curriculum))
	for key, subjects := range r.Curriculum {
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return Career{}, fmt.Errorf("%w: career %q has non-numeric semester key %q", ErrInvalidInput, r.Career, key)
		}
		if idx <= 0 {
			return Career{}, fmt.Errorf("%w: career %q has non-positive semester key %q", ErrInvalidInput, r.Career, key)
		}
		if seen[idx] {
			return Career{}, fmt.Errorf("%w: career %q has duplicate semester key %q", ErrInvalidInput, r.Career, key)
		}
		seen[idx] = true

		// Copy to keep the record's slices out of the immutable career.
		sem := Semester{Index: idx, Subjects: append([]string(nil), subjects...)}
		career.Semesters = append(career.Semesters, sem)
	}

	sort.Slice(career.Semesters, func(i, j int) bool {
		return career.Semesters[i].Index < career.Semesters[j].Index
	})

	if err := career.Validate(); err != nil {
		return Career{}, err
	}
	return career, nil
}

// SortCareers orders careers by university then career name, the fixed
// processing order that keeps single-linkage grouping reproducible.
func SortCareers(careers []Career) {
	sort.Slice(careers, func(i, j int) bool {
		if careers[i].University != careers[j].University {
			return careers[i].University < careers[j].University
		}
		return careers[i].Name < careers[j].Name
	})
}
