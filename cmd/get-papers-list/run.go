// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/fetch"
	"github.com/pdiddy/get-papers-list/internal/output"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// runFetch searches PubMed for query and routes the records to the
// requested sinks. A fetch failure returns before anything is written.
func runFetch(cmd *cobra.Command, query string, a *app) error {
	client := fetch.NewClient(nil, a.fetchCfg, a.logger)
	papers, err := client.FetchPapers(cmd.Context(), query)
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		a.logger.Info("no papers found", zap.String("query", query))
	}

	out := outputConfig(cmd)
	if err := emit(cmd, papers, out, a.logger); err != nil {
		return err
	}

	if out.RunFile != "" {
		settings := output.RunSettings{Database: a.fetchCfg.Database, MaxResults: fetch.MaxResults}
		if err := output.WriteRunFile(out.RunFile, query, settings, papers); err != nil {
			return err
		}
		a.logger.Info("run saved", zap.String("path", out.RunFile))
	}

	if out.ArchiveDB != "" {
		if err := archive(cmd, out.ArchiveDB, query, papers, a.logger); err != nil {
			return err
		}
	}
	return nil
}

func outputConfig(cmd *cobra.Command) types.OutputConfig {
	var out types.OutputConfig
	out.File, _ = cmd.Flags().GetString("file")
	out.JSON, _ = cmd.Flags().GetBool("json")
	out.RunFile, _ = cmd.Flags().GetString("save-run")
	out.ArchiveDB, _ = cmd.Flags().GetString("db")
	return out
}

// emit writes records to the CSV file when one is configured, otherwise to
// the command's stdout.
func emit(cmd *cobra.Command, papers []types.PaperRecord, out types.OutputConfig, logger *zap.Logger) error {
	if out.File != "" {
		if err := output.WriteCSV(papers, out.File, logger); err != nil {
			return err
		}
		logger.Info("results saved", zap.String("path", out.File), zap.Int("papers", len(papers)))
		return nil
	}
	if out.JSON {
		return output.FormatJSON(papers, cmd.OutOrStdout())
	}
	return output.FormatText(papers, cmd.OutOrStdout())
}

func archive(cmd *cobra.Command, path, query string, papers []types.PaperRecord, logger *zap.Logger) error {
	a, err := output.OpenArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()

	runID, err := a.Save(cmd.Context(), query, papers)
	if err != nil {
		return err
	}
	logger.Info("results archived", zap.String("path", path), zap.Int64("run", runID))
	return nil
}
