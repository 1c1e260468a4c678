package assemblee

import (
	"fmt"
	"io"
	"sort"

	"hemicycle/internal/archive"
	"hemicycle/internal/logger"
	"hemicycle/internal/models"
)

// Source reads one chamber's published archives.
type Source struct {
	chamber     string
	legislature string
	log         *logger.Logger
}

// NewSource creates a source for the given chamber and legislature.
func NewSource(chamber, legislature string, log *logger.Logger) *Source {
	return &Source{
		chamber:     chamber,
		legislature: legislature,
		log:         log,
	}
}

// Chamber returns the source's chamber constant.
func (s *Source) Chamber() string {
	return s.chamber
}

// Legislature returns the source's legislature identifier.
func (s *Source) Legislature() string {
	return s.legislature
}

// CompositeID composes the chamber-prefixed scrutin identifier.
func (s *Source) CompositeID(number string) string {
	return fmt.Sprintf("%s-%s-%s", s.chamber, s.legislature, number)
}

// Collect runs the full extraction for one source: every XML member of
// the scrutin archive is parsed, votes are enriched against the
// registry archive (when one is configured), scrutins are deduplicated
// by identifier with the last occurrence winning, sorted descending by
// (date, id) and truncated to limit.
//
// A malformed XML member is skipped with a warning; an archive with no
// XML member at all is fatal.
func (s *Source) Collect(scrutinsPath, registryPath string, limit int) ([]models.RawScrutin, error) {
	actors := map[string]models.Actor{}
	organs := map[string]models.Organ{}

	if registryPath != "" {
		var err error

		actors, organs, err = LoadRegistry(registryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load registry: %w", err)
		}

		s.log.Info("registry loaded", "actors", len(actors), "organs", len(organs))
	}

	reader, err := archive.Open(scrutinsPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if len(reader.Entries(".xml")) == 0 {
		return nil, fmt.Errorf("scrutins archive %s: %w", scrutinsPath, archive.ErrNoMatchingEntries)
	}

	var scrutins []models.RawScrutin

	err = reader.ForEach(".xml", func(name string, rd io.Reader) error {
		parsed, parseErr := ParseScrutins(rd)
		if parseErr != nil {
			s.log.Warn("skipping malformed archive member", "member", name, "error", parseErr)

			return nil
		}

		scrutins = append(scrutins, parsed...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enrich(scrutins, actors, organs)

	scrutins = s.dedupeByID(scrutins)

	sort.Slice(scrutins, func(i, j int) bool {
		if scrutins[i].Date != scrutins[j].Date {
			return scrutins[i].Date > scrutins[j].Date
		}

		return s.CompositeID(scrutins[i].Number) > s.CompositeID(scrutins[j].Number)
	})

	if limit > 0 && len(scrutins) > limit {
		scrutins = scrutins[:limit]
	}

	return scrutins, nil
}

// enrich joins vote records against the registry tables in place. A
// missing person or organ id is not an error; the optional fields stay
// unset.
func (s *Source) enrich(scrutins []models.RawScrutin, actors map[string]models.Actor, organs map[string]models.Organ) {
	if len(actors) == 0 && len(organs) == 0 {
		return
	}

	for i := range scrutins {
		votes := scrutins[i].Votes
		for j := range votes {
			if a, ok := actors[votes[j].PersonID]; ok {
				name := a.Name
				votes[j].Name = &name
			}

			if votes[j].Group == nil {
				continue
			}

			if o, ok := organs[*votes[j].Group]; ok {
				name, acronym := o.Name, o.Acronym
				votes[j].GroupName = &name
				votes[j].GroupAcronym = &acronym
			}
		}
	}
}

// dedupeByID collapses scrutins sharing a composite id, keeping the
// last occurrence.
func (s *Source) dedupeByID(scrutins []models.RawScrutin) []models.RawScrutin {
	byID := map[string]int{}

	var out []models.RawScrutin

	for _, sc := range scrutins {
		id := s.CompositeID(sc.Number)
		if i, ok := byID[id]; ok {
			out[i] = sc

			continue
		}

		byID[id] = len(out)
		out = append(out, sc)
	}

	return out
}
