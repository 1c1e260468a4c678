package models

// IndexEntry is the summary projection of a scrutin carried by the
// index document. It drops the vote list and the object field.
type IndexEntry struct {
	ID           string         `json:"id"`
	Chamber      string         `json:"chamber"`
	Date         string         `json:"date"`
	Title        string         `json:"title"`
	ScrutinType  *string        `json:"scrutin_type"`
	ResultStatus *string        `json:"result_status"`
	Counts       map[string]int `json:"counts"`
	Themes       []string       `json:"themes"`
	SourceURL    *string        `json:"source_url"`
}

// PersonEntry is one row of the people directory, accumulated across
// every vote of every exported scrutin.
type PersonEntry struct {
	PersonID     string  `json:"person_id"`
	Name         *string `json:"name"`
	Chamber      string  `json:"chamber"`
	Group        *string `json:"group,omitempty"`
	Constituency *string `json:"constituency,omitempty"`
}

// IndexDocument is the top-level shape of index.json.
type IndexDocument struct {
	GeneratedAt string       `json:"generated_at"`
	Scrutins    []IndexEntry `json:"scrutins"`
}

// PeopleDocument is the top-level shape of people.json.
type PeopleDocument struct {
	GeneratedAt string        `json:"generated_at"`
	People      []PersonEntry `json:"people"`
}

// YearDocument is the top-level shape of one per-year detail file.
type YearDocument struct {
	Year     int                `json:"year"`
	Scrutins []CanonicalScrutin `json:"scrutins"`
}
