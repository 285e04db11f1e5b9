package similarity

import (
	"math"
	"testing"

	"github.com/JairAlexey/AnalisisDeMallas/internal/textnorm"
)

func set(terms ...string) textnorm.TermSet {
	s := make(textnorm.TermSet, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    textnorm.TermSet
		b    textnorm.TermSet
		want float64
	}{
		{
			name: "identical",
			a:    set("calculo", "i"),
			b:    set("calculo", "i"),
			want: 1.0,
		},
		{
			name: "both empty",
			a:    set(),
			b:    set(),
			want: 0.0,
		},
		{
			name: "one empty",
			a:    set("calculo"),
			b:    set(),
			want: 0.0,
		},
		{
			name: "no overlap",
			a:    set("calculo", "i"),
			b:    set("historia", "arte"),
			want: 0.0,
		},
		{
			name: "single shared term out of five",
			a:    set("calculo", "diferencial", "i"),
			b:    set("matematicas", "discretas", "i"),
			want: 0.2,
		},
		{
			name: "half overlap",
			a:    set("algebra", "lineal"),
			b:    set("algebra", "abstracta"),
			want: 1.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard() = %v, want %v", got, tt.want)
			}
			if sym := Jaccard(tt.b, tt.a); sym != got {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, sym)
			}
			if got < 0 || got > 1 {
				t.Errorf("Jaccard() = %v outside [0,1]", got)
			}
		})
	}
}

func TestWeightedJaccard(t *testing.T) {
	keywords := set("programacion")

	t.Run("no keywords equals jaccard", func(t *testing.T) {
		a, b := set("calculo", "i"), set("calculo", "ii")
		if got, want := WeightedJaccard(a, b, nil), Jaccard(a, b); got != want {
			t.Errorf("WeightedJaccard without keywords = %v, want %v", got, want)
		}
	})

	t.Run("shared keyword raises score", func(t *testing.T) {
		a := set("programacion", "avanzada")
		b := set("programacion", "basica")
		plain := Jaccard(a, b)
		weighted := WeightedJaccard(a, b, keywords)
		if weighted <= plain {
			t.Errorf("shared keyword: weighted %v should exceed plain %v", weighted, plain)
		}
		if weighted > 1 {
			t.Errorf("weighted score %v exceeds 1", weighted)
		}
	})

	t.Run("unshared keyword lowers score", func(t *testing.T) {
		a := set("programacion", "avanzada")
		b := set("quimica", "avanzada")
		plain := Jaccard(a, b)
		weighted := WeightedJaccard(a, b, keywords)
		if weighted >= plain {
			t.Errorf("unshared keyword: weighted %v should be below plain %v", weighted, plain)
		}
	})

	t.Run("reflexive", func(t *testing.T) {
		a := set("programacion", "i")
		if got := WeightedJaccard(a, a, keywords); got != 1.0 {
			t.Errorf("WeightedJaccard(a,a) = %v, want 1.0", got)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := set("programacion", "avanzada")
		b := set("programacion", "estructurada", "i")
		if WeightedJaccard(a, b, keywords) != WeightedJaccard(b, a, keywords) {
			t.Error("WeightedJaccard not symmetric")
		}
	})

	t.Run("both empty", func(t *testing.T) {
		if got := WeightedJaccard(set(), set(), keywords); got != 0.0 {
			t.Errorf("WeightedJaccard(empty, empty) = %v, want 0.0", got)
		}
	})
}

func TestCareerScore(t *testing.T) {
	tests := []struct {
		name       string
		nameSim    float64
		subjectSim float64
		nameWeight float64
		want       float64
	}{
		{"name dominates", 1.0, 0.0, 0.7, 0.7},
		{"subjects only", 0.0, 1.0, 0.7, 0.3},
		{"both perfect", 1.0, 1.0, 0.7, 1.0},
		{"name only weighting", 0.5, 0.9, 1.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CareerScore(tt.nameSim, tt.subjectSim, tt.nameWeight)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CareerScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeMatrix(t *testing.T) {
	sets := []textnorm.TermSet{
		set("calculo", "i"),
		set("calculo", "ii"),
		set("historia", "arte"),
		set(),
	}

	sequential := ComputeMatrix(sets, Jaccard, 1)
	parallel := ComputeMatrix(sets, Jaccard, 4)

	if sequential.Len() != len(sets) {
		t.Fatalf("Len() = %d, want %d", sequential.Len(), len(sets))
	}

	for i := 0; i < len(sets); i++ {
		for j := 0; j < len(sets); j++ {
			s, p := sequential.At(i, j), parallel.At(i, j)
			if s != p {
				t.Errorf("matrix differs at (%d,%d): sequential %v, parallel %v", i, j, s, p)
			}
			if s != sequential.At(j, i) {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}

	if got := sequential.At(0, 0); got != 1.0 {
		t.Errorf("diagonal for non-empty set = %v, want 1.0", got)
	}
	if got := sequential.At(3, 3); got != 0.0 {
		t.Errorf("diagonal for empty set = %v, want 0.0", got)
	}
	if got := sequential.At(0, 1); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("At(0,1) = %v, want 1/3", got)
	}
}

func TestComputeMatrixEmpty(t *testing.T) {
	m := ComputeMatrix(nil, Jaccard, 0)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}
