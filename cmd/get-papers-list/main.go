// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI. It searches
// PubMed, flags authors with non-academic affiliations and prints or saves
// the results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/fetch"
	"github.com/pdiddy/get-papers-list/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := &app{}
	root := newRootCmd(app)
	if err := root.ExecuteContext(context.Background()); err != nil {
		app.reportError(err)
		os.Exit(1)
	}
}

// reportError logs a failed run. Without --debug only the message is shown;
// with it the logger adds caller and stack information.
func (a *app) reportError(err error) {
	if a.logger == nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	defer a.logger.Sync() //nolint:errcheck

	a.logger.Error("an error occurred", zap.String("kind", errorKind(err)), zap.Error(err))
}

// errorKind names the failing stage so fetch and write failures can be told
// apart in the log.
func errorKind(err error) string {
	var fe *fetch.FetchError
	var we *output.WriteError
	switch {
	case errors.As(err, &fe):
		return "fetch"
	case errors.As(err, &we):
		return "write"
	default:
		return "usage"
	}
}
