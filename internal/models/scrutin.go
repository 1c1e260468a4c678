// Package models defines data structures shared across the scrutin pipeline.
package models

// Fallback values used when a source document omits a field.
const (
	UnknownNumber    = "UNKNOWN"
	UnknownDate      = "1970-01-01"
	UntitledScrutin  = "(sans titre)"
	UnknownActorName = "Inconnu"
	UnknownGroupName = "Groupe inconnu"
)

// Count keys of the vote tally mapping.
const (
	CountFor        = "for"
	CountAgainst    = "against"
	CountAbstention = "abstention"
	CountNonVoting  = "nonvoting"
)

// RawScrutin is one roll-call vote as parsed from a source document,
// before normalization into the cross-chamber schema.
type RawScrutin struct {
	Number       string
	Date         string
	Title        string
	ScrutinType  *string
	ResultStatus *string
	Counts       map[string]int
	Votes        []VoteRecord
}

// CanonicalScrutin is the cross-chamber export unit.
type CanonicalScrutin struct {
	ID           string         `json:"id"`
	Chamber      string         `json:"chamber"`
	Date         string         `json:"date"`
	Title        string         `json:"title"`
	Object       *string        `json:"object"`
	ScrutinType  *string        `json:"scrutin_type"`
	ResultStatus *string        `json:"result_status"`
	Counts       map[string]int `json:"counts"`
	Themes       []string       `json:"themes"`
	SourceURL    *string        `json:"source_url"`
	Votes        []VoteRecord   `json:"votes"`
}

// Year returns the 4-digit year prefix of the scrutin date,
// or false if the date does not carry one.
func (s *CanonicalScrutin) Year() (int, bool) {
	if len(s.Date) < 4 {
		return 0, false
	}

	year := 0

	for _, r := range s.Date[:4] {
		if r < '0' || r > '9' {
			return 0, false
		}

		year = year*10 + int(r-'0')
	}

	return year, true
}
