// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers-list
// pipeline: authors decoded from PubMed summaries and the per-paper records
// handed to the output sinks.
package types

// UnknownValue is the placeholder for fields PubMed did not return.
const UnknownValue = "Unknown"

// ListSeparator joins the parallel author and affiliation lists on a record.
const ListSeparator = "; "

// Author is one entry of a paper's author list as returned by the summary
// endpoint. Any field may be empty.
type Author struct {
	Name        string `json:"name" yaml:"name"`
	Affiliation string `json:"affiliation" yaml:"affiliation"`
	Email       string `json:"email" yaml:"email"`
}

// DisplayName returns the author name, or UnknownValue when it is empty.
func (a Author) DisplayName() string {
	if a.Name == "" {
		return UnknownValue
	}
	return a.Name
}

// Columns is the fixed header of the tabular output, in row order.
var Columns = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Authors",
	"Company Affiliations",
	"Corresponding Author Email",
}

// PaperRecord is the assembled result for one PubMed identifier.
//
// NonAcademicAuthors and CompanyAffiliations are joined with ListSeparator
// and stay index-aligned. CorrespondingAuthorEmail carries the upstream
// elocationid value.
type PaperRecord struct {
	PubmedID                 string `json:"pubmed_id" yaml:"pubmed_id"`
	Title                    string `json:"title" yaml:"title"`
	PublicationDate          string `json:"publication_date" yaml:"publication_date"`
	NonAcademicAuthors       string `json:"non_academic_authors" yaml:"non_academic_authors"`
	CompanyAffiliations      string `json:"company_affiliations" yaml:"company_affiliations"`
	CorrespondingAuthorEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`
}

// Row returns the record fields in Columns order.
func (p PaperRecord) Row() []string {
	return []string{
		p.PubmedID,
		p.Title,
		p.PublicationDate,
		p.NonAcademicAuthors,
		p.CompanyAffiliations,
		p.CorrespondingAuthorEmail,
	}
}

// RecordFromRow is the inverse of Row. It returns false when row does not
// have exactly one value per column.
func RecordFromRow(row []string) (PaperRecord, bool) {
	if len(row) != len(Columns) {
		return PaperRecord{}, false
	}
	return PaperRecord{
		PubmedID:                 row[0],
		Title:                    row[1],
		PublicationDate:          row[2],
		NonAcademicAuthors:       row[3],
		CompanyAffiliations:      row[4],
		CorrespondingAuthorEmail: row[5],
	}, true
}
