// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// WriteCSV creates or truncates path and writes the header row followed by
// one row per record, in input order. An empty record list fails with a
// *WriteError wrapping ErrNoRecords before the file is touched.
func WriteCSV(records []types.PaperRecord, path string, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(records) == 0 {
		return &WriteError{Path: path, Err: ErrNoRecords}
	}

	logger.Debug("saving papers to file", zap.String("path", path))

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(types.Columns); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	logger.Debug("saved papers", zap.Int("count", len(records)), zap.String("path", path))
	return nil
}

// ReadCSV loads a file produced by WriteCSV. The header must match
// types.Columns exactly.
func ReadCSV(path string) ([]types.PaperRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parsing %s: %w", path, errors.New("missing header row"))
	}
	if !slices.Equal(rows[0], types.Columns) {
		return nil, fmt.Errorf("parsing %s: unexpected header %q", path, rows[0])
	}

	records := make([]types.PaperRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, ok := types.RecordFromRow(row)
		if !ok {
			return nil, fmt.Errorf("parsing %s: row %d has %d fields, want %d", path, i+2, len(row), len(types.Columns))
		}
		records = append(records, r)
	}
	return records, nil
}
