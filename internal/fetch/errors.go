// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import "fmt"

// Fetch stages reported in FetchError.Op.
const (
	OpSearch  = "search"
	OpSummary = "summary"
)

// FetchError reports a failed remote retrieval. Any FetchError means the
// whole fetch was abandoned and no records were produced.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func searchErr(err error) error  { return &FetchError{Op: OpSearch, Err: err} }
func summaryErr(err error) error { return &FetchError{Op: OpSummary, Err: err} }
