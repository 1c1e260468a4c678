// Package normalizer reshapes parsed source records into the canonical
// cross-chamber schema.
package normalizer

import (
	"errors"
	"fmt"

	"hemicycle/internal/models"
)

// Validation errors.
var (
	ErrMissingNumber     = errors.New("scrutin missing number")
	ErrMissingDate       = errors.New("scrutin missing date")
	ErrMissingTitle      = errors.New("scrutin missing title")
	ErrVoteMissingPerson = errors.New("vote missing person id")
	ErrInvalidPosition   = errors.New("vote has invalid position")
)

// Validator checks raw scrutins before transformation. The parser
// substitutes sentinels for absent fields, so a failure here means a
// programming error upstream, not noisy source data.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks one raw scrutin.
func (v *Validator) Validate(raw *models.RawScrutin) error {
	if raw.Number == "" {
		return ErrMissingNumber
	}

	if raw.Date == "" {
		return ErrMissingDate
	}

	if raw.Title == "" {
		return ErrMissingTitle
	}

	for i, vote := range raw.Votes {
		if vote.PersonID == "" {
			return fmt.Errorf("%w: vote[%d]", ErrVoteMissingPerson, i)
		}

		if !vote.Position.Valid() {
			return fmt.Errorf("%w: vote[%d] position %q", ErrInvalidPosition, i, vote.Position)
		}
	}

	return nil
}
