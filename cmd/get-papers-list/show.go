// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/output"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print records from a saved CSV or YAML run file",
		Long: `Show reads a CSV written with --file or a YAML run file written with
--save-run and prints its records the same way a fresh search would.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			papers, err := loadRecords(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("loaded records", zap.String("path", args[0]), zap.Int("count", len(papers)))
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return output.FormatJSON(papers, cmd.OutOrStdout())
			}
			return output.FormatText(papers, cmd.OutOrStdout())
		},
	}
}

// loadRecords picks the reader by file extension.
func loadRecords(path string) ([]types.PaperRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return output.ReadCSV(path)
	case ".yaml", ".yml":
		rf, err := output.ReadRunFile(path)
		if err != nil {
			return nil, err
		}
		return rf.Records, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q: expected .csv, .yaml or .yml", filepath.Ext(path))
	}
}
