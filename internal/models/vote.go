package models

// Position is the vote choice inferred for one actor reference.
type Position string

// Vote positions.
const (
	PositionFor       Position = "FOR"
	PositionAgainst   Position = "AGAINST"
	PositionAbstain   Position = "ABSTAIN"
	PositionNonVoting Position = "NONVOTING"
)

// Valid reports whether p is one of the four known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionFor, PositionAgainst, PositionAbstain, PositionNonVoting:
		return true
	}

	return false
}

// VoteRecord is one legislator's vote within a scrutin.
//
// Group, Name, GroupName and GroupAcronym are filled by the registry
// join when the referenced identifiers resolve; Constituency is carried
// for the export contract but no current feed populates it.
type VoteRecord struct {
	PersonID     string   `json:"person_id"`
	Position     Position `json:"position"`
	Group        *string  `json:"group"`
	Constituency *string  `json:"constituency"`
	Name         *string  `json:"name"`
	GroupName    *string  `json:"group_name,omitempty"`
	GroupAcronym *string  `json:"group_acronym,omitempty"`
}

// Actor is one registry entry keyed by person identifier.
type Actor struct {
	Name string
}

// Organ is one registry entry keyed by organ identifier.
type Organ struct {
	Name    string
	Acronym string
}
