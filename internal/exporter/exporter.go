// Package exporter writes the canonical dataset as static JSON files.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"hemicycle/internal/models"
)

// Export writes the three artifacts derived from the canonical
// collection: the index, the people directory and one detail file per
// year. Every artifact is regenerated in full on each run; rewriting
// existing files is expected and safe.
func Export(dataDir string, scrutins []models.CanonicalScrutin, generatedAt string) error {
	if err := writeIndex(dataDir, scrutins, generatedAt); err != nil {
		return err
	}

	if err := writePeople(dataDir, scrutins, generatedAt); err != nil {
		return err
	}

	return writeYears(dataDir, scrutins)
}

// writeIndex projects every scrutin to its summary fields.
func writeIndex(dataDir string, scrutins []models.CanonicalScrutin, generatedAt string) error {
	entries := make([]models.IndexEntry, 0, len(scrutins))

	for _, s := range scrutins {
		entries = append(entries, models.IndexEntry{
			ID:           s.ID,
			Chamber:      s.Chamber,
			Date:         s.Date,
			Title:        s.Title,
			ScrutinType:  s.ScrutinType,
			ResultStatus: s.ResultStatus,
			Counts:       s.Counts,
			Themes:       s.Themes,
			SourceURL:    s.SourceURL,
		})
	}

	sortIndexEntries(entries)

	doc := models.IndexDocument{GeneratedAt: generatedAt, Scrutins: entries}

	return writeJSON(filepath.Join(dataDir, "index.json"), doc)
}

// writePeople accumulates one entry per distinct person across all
// votes of all scrutins. Name, group and constituency follow
// last-write-wins over the whole scan order; the chamber comes from the
// scrutin that first introduced the person.
func writePeople(dataDir string, scrutins []models.CanonicalScrutin, generatedAt string) error {
	people := map[string]*models.PersonEntry{}

	for _, s := range scrutins {
		for _, v := range s.Votes {
			entry, ok := people[v.PersonID]
			if !ok {
				entry = &models.PersonEntry{
					PersonID: v.PersonID,
					Name:     v.Name,
					Chamber:  s.Chamber,
				}
				people[v.PersonID] = entry
			}

			if v.Group != nil {
				entry.Group = v.Group
			}

			if v.Constituency != nil {
				entry.Constituency = v.Constituency
			}

			if v.Name != nil {
				entry.Name = v.Name
			}
		}
	}

	list := make([]models.PersonEntry, 0, len(people))
	for _, entry := range people {
		list = append(list, *entry)
	}

	sort.Slice(list, func(i, j int) bool {
		ni, nj := "", ""
		if list[i].Name != nil {
			ni = *list[i].Name
		}

		if list[j].Name != nil {
			nj = *list[j].Name
		}

		if ni != nj {
			return ni < nj
		}

		return list[i].PersonID < list[j].PersonID
	})

	doc := models.PeopleDocument{GeneratedAt: generatedAt, People: list}

	return writeJSON(filepath.Join(dataDir, "people.json"), doc)
}

// writeYears partitions the collection by the 4-digit year prefix of
// each scrutin date.
func writeYears(dataDir string, scrutins []models.CanonicalScrutin) error {
	byYear := map[int][]models.CanonicalScrutin{}

	for _, s := range scrutins {
		year, ok := s.Year()
		if !ok {
			continue
		}

		byYear[year] = append(byYear[year], s)
	}

	for year, items := range byYear {
		sort.Slice(items, func(i, j int) bool {
			if items[i].Date != items[j].Date {
				return items[i].Date > items[j].Date
			}

			return items[i].ID > items[j].ID
		})

		doc := models.YearDocument{Year: year, Scrutins: items}

		path := filepath.Join(dataDir, "scrutins", fmt.Sprintf("%d.json", year))
		if err := writeJSON(path, doc); err != nil {
			return err
		}
	}

	return nil
}

func sortIndexEntries(entries []models.IndexEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}

		return entries[i].ID > entries[j].ID
	})
}

// writeJSON writes one artifact: parents created, two-space indent,
// trailing newline.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
