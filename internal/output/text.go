// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders paper records to the console, CSV files, YAML run
// records and a SQLite archive.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// FormatText writes one line per record to w, in input order. Each line
// lists every column as "Name: value" separated by " | ".
func FormatText(records []types.PaperRecord, w io.Writer) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, formatLine(r)); err != nil {
			return err
		}
	}
	return nil
}

func formatLine(r types.PaperRecord) string {
	row := r.Row()
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = types.Columns[i] + ": " + v
	}
	return strings.Join(parts, " | ")
}

// FormatJSON writes records as indented JSON to w. An empty slice encodes
// as [].
func FormatJSON(records []types.PaperRecord, w io.Writer) error {
	if records == nil {
		records = []types.PaperRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
