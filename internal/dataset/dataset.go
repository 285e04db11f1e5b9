// Package dataset loads curricula datasets: JSON arrays of records shaped
// {universidad, carrera, malla_curricular} as produced by the scrapers that
// feed the analysis engine.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

// Parse decodes a dataset from r and converts every record into a validated
// career. The first invalid record aborts the load.
func Parse(r io.Reader) ([]models.Career, error) {
	var records []models.CurriculumRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	careers := make([]models.Career, 0, len(records))
	for i, rec := range records {
		career, err := rec.ToCareer()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		careers = append(careers, career)
	}
	return careers, nil
}

// Load reads and parses the dataset file at path.
func Load(path string) ([]models.Career, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	careers, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return careers, nil
}
