package analyzer

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

func fixtureCareers() []models.Career {
	return []models.Career{
		{
			University: "EPN",
			Name:       "Ingeniería en Sistemas",
			Semesters: []models.Semester{
				{Index: 1, Subjects: []string{"Cálculo I", "Programación I"}},
				{Index: 2, Subjects: []string{"Física I"}},
			},
		},
		{
			University: "ESPOL",
			Name:       "Ingeniería de Software",
			Semesters: []models.Semester{
				{Index: 1, Subjects: []string{"Programación I", "Química"}},
			},
		},
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	_, err := Analyze(nil, Options{})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Analyze(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeRejectsInvalidCareer(t *testing.T) {
	tests := []struct {
		name   string
		career models.Career
	}{
		{
			name:   "no semesters",
			career: models.Career{University: "EPN", Name: "Sistemas"},
		},
		{
			name: "duplicate semester index",
			career: models.Career{University: "EPN", Name: "Sistemas", Semesters: []models.Semester{
				{Index: 1, Subjects: []string{"Cálculo I"}},
				{Index: 1, Subjects: []string{"Física I"}},
			}},
		},
		{
			name: "non-positive semester index",
			career: models.Career{University: "EPN", Name: "Sistemas", Semesters: []models.Semester{
				{Index: 0, Subjects: []string{"Cálculo I"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze([]models.Career{tt.career}, Options{})
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAnalyzeRejectsInvalidThresholds(t *testing.T) {
	careers := fixtureCareers()

	if _, err := Analyze(careers, Options{EquivalenceThreshold: 0.9}); !errors.Is(err, models.ErrInvalidParameter) {
		t.Errorf("equivalence threshold 0.9: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Analyze(careers, Options{ClusterThreshold: 0.05}); !errors.Is(err, models.ErrInvalidParameter) {
		t.Errorf("cluster threshold 0.05: error = %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyzeDefaultThresholds(t *testing.T) {
	report, err := Analyze(fixtureCareers(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.EquivalenceThreshold != models.DefaultThreshold {
		t.Errorf("equivalence threshold = %v, want %v", report.EquivalenceThreshold, models.DefaultThreshold)
	}
	if report.ClusterThreshold != models.DefaultThreshold {
		t.Errorf("cluster threshold = %v, want %v", report.ClusterThreshold, models.DefaultThreshold)
	}
}

func TestAnalyzeUniversityStats(t *testing.T) {
	report, err := Analyze(fixtureCareers(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.UniversityStats) != 2 {
		t.Fatalf("got stats for %d universities, want 2", len(report.UniversityStats))
	}

	epn := report.UniversityStats["EPN"]
	if epn.Careers != 1 {
		t.Errorf("EPN careers = %d, want 1", epn.Careers)
	}
	if epn.TotalSubjects != 3 {
		t.Errorf("EPN total subjects = %d, want 3", epn.TotalSubjects)
	}
	// "Programación I" appears verbatim at both universities.
	if epn.CommonSubjects != 1 {
		t.Errorf("EPN common subjects = %d, want 1", epn.CommonSubjects)
	}
	if epn.UniqueSubjects != 2 {
		t.Errorf("EPN unique subjects = %d, want 2", epn.UniqueSubjects)
	}
	if epn.AvgSubjectsPerSemester != 1.5 {
		t.Errorf("EPN avg subjects/semester = %v, want 1.5", epn.AvgSubjectsPerSemester)
	}
	if !reflect.DeepEqual(epn.SemesterDistribution, map[string]int{"2": 1}) {
		t.Errorf("EPN semester distribution = %v, want map[2:1]", epn.SemesterDistribution)
	}

	espol := report.UniversityStats["ESPOL"]
	if espol.TotalSubjects != 2 || espol.CommonSubjects != 1 || espol.UniqueSubjects != 1 {
		t.Errorf("ESPOL subjects = %d/%d/%d (total/common/unique), want 2/1/1",
			espol.TotalSubjects, espol.CommonSubjects, espol.UniqueSubjects)
	}
	if espol.AvgSubjectsPerSemester != 2.0 {
		t.Errorf("ESPOL avg subjects/semester = %v, want 2.0", espol.AvgSubjectsPerSemester)
	}

	// Invariant: common + unique = total for every university.
	for name, s := range report.UniversityStats {
		if s.CommonSubjects+s.UniqueSubjects != s.TotalSubjects {
			t.Errorf("%s: common (%d) + unique (%d) != total (%d)",
				name, s.CommonSubjects, s.UniqueSubjects, s.TotalSubjects)
		}
	}
}

// Two universities share five verbatim subjects and hold ten unique ones
// each: every stats line must report 5 common, 10 unique, 15 total.
func TestAnalyzeSharedAndUniqueSplit(t *testing.T) {
	shared := []string{
		"Programación I", "Cálculo Diferencial", "Álgebra Lineal",
		"Física General", "Química General",
	}
	unique := func(prefix string) []string {
		out := make([]string, 10)
		for i := range out {
			out[i] = fmt.Sprintf("%s Especializada %d", prefix, i+1)
		}
		return out
	}

	careers := []models.Career{
		{
			University: "EPN",
			Name:       "Ingeniería en Sistemas",
			Semesters: []models.Semester{
				{Index: 1, Subjects: shared},
				{Index: 2, Subjects: unique("Electrónica")},
			},
		},
		{
			University: "ESPOL",
			Name:       "Ingeniería de Software",
			Semesters: []models.Semester{
				{Index: 1, Subjects: shared},
				{Index: 2, Subjects: unique("Computación")},
			},
		},
	}

	report, err := Analyze(careers, Options{EquivalenceThreshold: 0.8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"EPN", "ESPOL"} {
		s := report.UniversityStats[name]
		if s.TotalSubjects != 15 {
			t.Errorf("%s total subjects = %d, want 15", name, s.TotalSubjects)
		}
		if s.CommonSubjects != 5 {
			t.Errorf("%s common subjects = %d, want 5", name, s.CommonSubjects)
		}
		if s.UniqueSubjects != 10 {
			t.Errorf("%s unique subjects = %d, want 10", name, s.UniqueSubjects)
		}
	}
}

func TestAnalyzeFullReport(t *testing.T) {
	report, err := Analyze(fixtureCareers(), Options{Advanced: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.EquivalenceGroups) == 0 {
		t.Error("report has no equivalence groups")
	}
	if len(report.CareerClusters) == 0 {
		t.Error("report has no career clusters")
	}

	// The verbatim duplicate must surface as a cross-university group.
	found := false
	for _, g := range report.EquivalenceGroups {
		if g.Representative == "Programación I" && g.Spans() {
			found = true
		}
	}
	if !found {
		t.Error("no spanning group for Programación I")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	careers := fixtureCareers()

	a, err := Analyze(careers, Options{Workers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Analyze(careers, Options{Workers: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("reports differ across runs:\n%+v\nvs\n%+v", a, b)
	}
}
