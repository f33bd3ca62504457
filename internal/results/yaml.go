package results

import (
	"fmt"
	"io"

	"github.com/mycoai/taxotagger-web/internal/models"
	"gopkg.in/yaml.v3"
)

// runConfig is the configuration section of the YAML report.
type runConfig struct {
	Model     string `yaml:"model"`
	TopN      int    `yaml:"topn"`
	Sequences int    `yaml:"sequences"`
	Timestamp string `yaml:"timestamp"`
}

// yamlRecord is one flat result row in the YAML report.
type yamlRecord struct {
	SequenceID string               `yaml:"sequenceid"`
	Rank       int                  `yaml:"rank"`
	Levels     map[string]yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	Label      string  `yaml:"label"`
	Hit        string  `yaml:"hit,omitempty"`
	Similarity float64 `yaml:"similarity,omitempty"`
}

// runReport is the complete YAML document: run settings plus results.
type runReport struct {
	Config  runConfig      `yaml:"config"`
	Warning *warningReport `yaml:"warning,omitempty"`
	Results []yamlRecord   `yaml:"results"`
}

type warningReport struct {
	Submitted  int      `yaml:"submitted"`
	Returned   int      `yaml:"returned"`
	MissingIDs []string `yaml:"missingids,omitempty"`
}

// WriteYAML writes a run report to w: the run configuration, any
// count-mismatch warning, and the flat result table.
func WriteYAML(w io.Writer, run *models.Run) error {
	report := runReport{
		Config: runConfig{
			Model:     run.Model,
			TopN:      run.TopN,
			Sequences: len(run.SequenceIDs),
			Timestamp: run.CreatedAt.Format("2006-01-02_15.04.05"),
		},
	}
	if run.Warning != nil {
		report.Warning = &warningReport{
			Submitted:  run.Warning.Submitted,
			Returned:   run.Warning.Returned,
			MissingIDs: run.Warning.MissingIDs,
		}
	}
	for _, rec := range Flatten(run) {
		yr := yamlRecord{
			SequenceID: rec.SequenceID,
			Rank:       rec.Rank,
			Levels:     make(map[string]yamlLevel, len(rec.Levels)),
		}
		for level, lr := range rec.Levels {
			yr.Levels[level] = yamlLevel{Label: lr.Label, Hit: lr.Hit, Similarity: lr.Similarity}
		}
		report.Results = append(report.Results, yr)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write YAML report: %w", err)
	}
	return nil
}
