package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

func sampleReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		EquivalenceThreshold: 0.5,
		ClusterThreshold:     0.5,
		EquivalenceGroups: []models.EquivalenceGroup{
			{
				Representative: "Programación I",
				Members:        []string{"Programación I"},
				Universities:   []string{"EPN", "ESPOL"},
			},
		},
		CareerClusters: []models.CareerCluster{
			{
				ID: 1,
				Members: []models.ClusterMember{
					{University: "EPN", Career: "Ingeniería en Sistemas", TotalSubjects: 3},
				},
				Universities: []string{"EPN"},
			},
		},
		UniversityStats: map[string]models.UniversityStats{
			"EPN": {
				University:           "EPN",
				Careers:              1,
				TotalSubjects:        3,
				CommonSubjects:       1,
				UniqueSubjects:       2,
				SemesterDistribution: map[string]int{"2": 1},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if !errors.Is(err, models.ErrInvalidParameter) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidParameter", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.AnalysisReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EquivalenceGroups[0].Representative != "Programación I" {
		t.Errorf("representative = %q after round trip", decoded.EquivalenceGroups[0].Representative)
	}
	if decoded.UniversityStats["EPN"].TotalSubjects != 3 {
		t.Errorf("EPN total subjects = %d after round trip", decoded.UniversityStats["EPN"].TotalSubjects)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.AnalysisReport
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.CareerClusters) != 1 || decoded.CareerClusters[0].ID != 1 {
		t.Errorf("clusters = %+v after round trip", decoded.CareerClusters)
	}
}

func TestWriteFileInfersFormat(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "report.yaml")
	if err := WriteFile(yamlPath, sampleReport(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML models.AnalysisReport
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Errorf(".yaml file is not valid YAML: %v", err)
	}

	jsonPath := filepath.Join(dir, "report.json")
	if err := WriteFile(jsonPath, sampleReport(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON models.AnalysisReport
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Errorf(".json file is not valid JSON: %v", err)
	}
}
