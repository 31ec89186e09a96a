// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// RunFile is the on-disk YAML record of one fetch: the query, the settings
// that produced it and the resulting records.
type RunFile struct {
	Query    string              `yaml:"query"`
	Settings RunSettings         `yaml:"settings"`
	Records  []types.PaperRecord `yaml:"records"`
	Summary  RunSummary          `yaml:"summary"`
}

// RunSettings stores the fetch configuration relevant to reproducing a run.
type RunSettings struct {
	Database   string `yaml:"database"`
	MaxResults int    `yaml:"max_results"`
}

// RunSummary stores record counts and a timestamp.
type RunSummary struct {
	Total int `yaml:"total"`
	// WithNonAcademic counts records with at least one flagged author.
	WithNonAcademic int       `yaml:"with_non_academic"`
	Timestamp       time.Time `yaml:"timestamp"`
}

// WriteRunFile saves query, settings and records to a YAML file. Unlike
// WriteCSV it accepts an empty record list.
func WriteRunFile(path, query string, settings RunSettings, records []types.PaperRecord) error {
	if records == nil {
		records = []types.PaperRecord{}
	}
	rf := RunFile{
		Query:    query,
		Settings: settings,
		Records:  records,
		Summary: RunSummary{
			Total:     len(records),
			Timestamp: time.Now().UTC(),
		},
	}
	for _, r := range records {
		if r.NonAcademicAuthors != "" {
			rf.Summary.WithNonAcademic++
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("marshaling run file: %w", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// ReadRunFile loads a previously saved run file.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
