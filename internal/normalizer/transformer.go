package normalizer

import (
	"fmt"

	"hemicycle/internal/models"
)

// Transformer reshapes raw scrutins into the canonical schema for a
// fixed chamber and legislature.
type Transformer struct {
	chamber     string
	legislature string
}

// NewTransformer creates a transformer bound to one source.
func NewTransformer(chamber, legislature string) *Transformer {
	return &Transformer{
		chamber:     chamber,
		legislature: legislature,
	}
}

// Transform converts one raw scrutin into its canonical form. The id is
// composed from chamber, legislature and the source number; themes
// start empty and are populated by the theme assigner; the votes pass
// through unchanged.
func (t *Transformer) Transform(raw *models.RawScrutin) models.CanonicalScrutin {
	return models.CanonicalScrutin{
		ID:           fmt.Sprintf("%s-%s-%s", t.chamber, t.legislature, raw.Number),
		Chamber:      t.chamber,
		Date:         raw.Date,
		Title:        raw.Title,
		Object:       nil,
		ScrutinType:  raw.ScrutinType,
		ResultStatus: raw.ResultStatus,
		Counts:       raw.Counts,
		Themes:       []string{},
		SourceURL:    nil,
		Votes:        raw.Votes,
	}
}
