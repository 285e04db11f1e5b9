package models

import (
	"errors"
	"testing"
)

func TestCareerValidate(t *testing.T) {
	tests := []struct {
		name    string
		career  Career
		wantErr bool
	}{
		{
			name: "valid career",
			career: Career{
				University: "EPN",
				Name:       "Ingeniería en Sistemas",
				Semesters: []Semester{
					{Index: 1, Subjects: []string{"Cálculo I"}},
					{Index: 2, Subjects: []string{"Cálculo II"}},
				},
			},
			wantErr: false,
		},
		{
			name:    "no semesters",
			career:  Career{University: "EPN", Name: "Sistemas"},
			wantErr: true,
		},
		{
			name: "non-positive semester index",
			career: Career{
				University: "EPN",
				Name:       "Sistemas",
				Semesters:  []Semester{{Index: 0, Subjects: []string{"Cálculo I"}}},
			},
			wantErr: true,
		},
		{
			name: "duplicate semester index",
			career: Career{
				University: "EPN",
				Name:       "Sistemas",
				Semesters: []Semester{
					{Index: 1, Subjects: []string{"Cálculo I"}},
					{Index: 1, Subjects: []string{"Física I"}},
				},
			},
			wantErr: true,
		},
		{
			name: "gap in semester sequence is accepted",
			career: Career{
				University: "EPN",
				Name:       "Sistemas",
				Semesters: []Semester{
					{Index: 1, Subjects: []string{"Cálculo I"}},
					{Index: 3, Subjects: []string{"Cálculo III"}},
				},
			},
			wantErr: false,
		},
		{
			name: "empty name",
			career: Career{
				University: "EPN",
				Semesters:  []Semester{{Index: 1, Subjects: []string{"Cálculo I"}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.career.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCurriculumRecordToCareer(t *testing.T) {
	rec := CurriculumRecord{
		University: "ESPOL",
		Career:     "Computación",
		Curriculum: map[string][]string{
			"2": {"Programación I", "Álgebra Lineal"},
			"1": {"Cálculo I"},
			"3": {"Estructuras de Datos"},
		},
	}

	career, err := rec.ToCareer()
	if err != nil {
		t.Fatalf("ToCareer() unexpected error: %v", err)
	}

	wantIndices := []int{1, 2, 3}
	if len(career.Semesters) != len(wantIndices) {
		t.Fatalf("got %d semesters, want %d", len(career.Semesters), len(wantIndices))
	}
	for i, want := range wantIndices {
		if career.Semesters[i].Index != want {
			t.Errorf("semester %d has index %d, want %d", i, career.Semesters[i].Index, want)
		}
	}
	if got := career.SubjectCount(); got != 4 {
		t.Errorf("SubjectCount() = %d, want 4", got)
	}
	if got := career.Subjects()[0]; got != "Cálculo I" {
		t.Errorf("first flattened subject = %q, want %q", got, "Cálculo I")
	}
}

func TestCurriculumRecordToCareerErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  CurriculumRecord
	}{
		{
			name: "non-numeric semester key",
			rec: CurriculumRecord{
				University: "EPN", Career: "Sistemas",
				Curriculum: map[string][]string{"uno": {"Cálculo I"}},
			},
		},
		{
			name: "zero semester key",
			rec: CurriculumRecord{
				University: "EPN", Career: "Sistemas",
				Curriculum: map[string][]string{"0": {"Cálculo I"}},
			},
		},
		{
			name: "duplicate after parsing",
			rec: CurriculumRecord{
				University: "EPN", Career: "Sistemas",
				Curriculum: map[string][]string{"1": {"Cálculo I"}, "01": {"Física I"}},
			},
		},
		{
			name: "empty curriculum",
			rec: CurriculumRecord{
				University: "EPN", Career: "Sistemas",
				Curriculum: map[string][]string{},
			},
		},
		{
			name: "empty university",
			rec: CurriculumRecord{
				Career:     "Sistemas",
				Curriculum: map[string][]string{"1": {"Cálculo I"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rec.ToCareer()
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ToCareer() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSortCareers(t *testing.T) {
	careers := []Career{
		{University: "UDLA", Name: "Software"},
		{University: "EPN", Name: "Sistemas"},
		{University: "EPN", Name: "Computación"},
	}

	SortCareers(careers)

	want := [][2]string{
		{"EPN", "Computación"},
		{"EPN", "Sistemas"},
		{"UDLA", "Software"},
	}
	for i, w := range want {
		if careers[i].University != w[0] || careers[i].Name != w[1] {
			t.Errorf("position %d = %s/%s, want %s/%s",
				i, careers[i].University, careers[i].Name, w[0], w[1])
		}
	}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		threshold float64
		wantErr   bool
	}{
		{0.1, false},
		{0.5, false},
		{0.8, false},
		{0.09, true},
		{0.81, true},
		{-1, true},
		{1.0, true},
	}

	for _, tt := range tests {
		err := ValidateThreshold(tt.threshold)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateThreshold(%v) error = %v, wantErr %v", tt.threshold, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ValidateThreshold(%v) error = %v, want ErrInvalidParameter", tt.threshold, err)
		}
	}
}
