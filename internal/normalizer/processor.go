package normalizer

import (
	"fmt"

	"hemicycle/internal/models"
)

// Processor validates and transforms raw scrutins.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor for one source's constants.
func NewProcessor(chamber, legislature string) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(chamber, legislature),
	}
}

// Process normalizes a full collection of raw scrutins.
func (p *Processor) Process(raws []models.RawScrutin) ([]models.CanonicalScrutin, error) {
	out := make([]models.CanonicalScrutin, 0, len(raws))

	for i := range raws {
		if err := p.validator.Validate(&raws[i]); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		out = append(out, p.transformer.Transform(&raws[i]))
	}

	return out, nil
}
