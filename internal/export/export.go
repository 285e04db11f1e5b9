// Package export writes analysis reports to files or writers in JSON or
// YAML form.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (valid: json, yaml)",
			models.ErrInvalidParameter, s)
	}
}

// Write encodes the report to w in the given format.
func Write(w io.Writer, report *models.AnalysisReport, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report as JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finalizing YAML report: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown format %q", models.ErrInvalidParameter, format)
	}
	return nil
}

// WriteFile encodes the report to the file at path, inferring the format
// from the extension when format is empty.
func WriteFile(path string, report *models.AnalysisReport, format Format) error {
	if format == "" {
		switch {
		case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
			format = FormatYAML
		default:
			format = FormatJSON
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := Write(f, report, format); err != nil {
		return err
	}
	return f.Close()
}
