// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify flags authors whose affiliation or email suggests a
// commercial (non-academic) employer.
//
// Matching is lowercase substring matching, not word matching: "inc" also
// hits "principal" and "lab" hits "collaborative".
package classify

import (
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// CommercialKeywords mark an affiliation as non-academic outright.
var CommercialKeywords = []string{"pharma", "biotech", "corp", "inc", "ltd", "gmbh", "company"}

// AcademicKeywords mark an affiliation as academic when no commercial
// keyword matched.
var AcademicKeywords = []string{"university", "college", "school", "institute", "academy", "research", "lab", "center"}

const academicEmailSuffix = ".edu"

// NonAcademic returns the names and lowercased affiliations of the authors
// classified as non-academic, in input order. The two slices always have the
// same length.
func NonAcademic(authors []types.Author) (names, affiliations []string) {
	names = []string{}
	affiliations = []string{}
	for _, a := range authors {
		if !IsNonAcademic(a) {
			continue
		}
		names = append(names, a.DisplayName())
		affiliations = append(affiliations, strings.ToLower(a.Affiliation))
	}
	return names, affiliations
}

// IsNonAcademic reports whether a single author is classified non-academic.
//
// Affiliation evidence wins: a commercial keyword is decisive, an academic
// keyword excludes. Only when the affiliation says nothing does the email
// decide, and an author without an email is never flagged.
func IsNonAcademic(a types.Author) bool {
	affiliation := strings.ToLower(a.Affiliation)
	if containsAny(affiliation, CommercialKeywords) {
		return true
	}
	if containsAny(affiliation, AcademicKeywords) {
		return false
	}
	email := strings.ToLower(a.Email)
	return email != "" && !strings.HasSuffix(email, academicEmailSuffix)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
