// Package themes classifies scrutins by keyword matching with manual
// per-scrutin overrides.
package themes

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"hemicycle/internal/models"
)

// Theme is one configured topic.
type Theme struct {
	Slug     string   `json:"slug"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// Config holds the configured themes plus manual id-to-slugs overrides.
type Config struct {
	Themes    []Theme             `json:"themes"`
	Overrides map[string][]string `json:"overrides"`
}

// LoadConfig reads the theme configuration file. An absent file is not
// an error: the pipeline runs with no themes and no overrides.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("failed to read theme config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse theme config: %w", err)
	}

	return cfg, nil
}

// Assign sets the theme list of every scrutin in place. An override hit
// is absolute and bypasses the keyword logic entirely; otherwise each
// theme whose keywords match the title/object haystack contributes its
// slug, and the deduplicated set is sorted lexicographically.
func Assign(scrutins []models.CanonicalScrutin, cfg Config) {
	for i := range scrutins {
		s := &scrutins[i]

		if override, ok := cfg.Overrides[s.ID]; ok {
			s.Themes = append([]string{}, override...)

			continue
		}

		s.Themes = match(haystack(s), cfg.Themes)
	}
}

// haystack builds the lowercased text the keywords are matched against.
func haystack(s *models.CanonicalScrutin) string {
	object := ""
	if s.Object != nil {
		object = *s.Object
	}

	return strings.ToLower(s.Title + " " + object)
}

func match(hay string, themes []Theme) []string {
	found := map[string]bool{}

	for _, t := range themes {
		for _, kw := range t.Keywords {
			if strings.Contains(hay, strings.ToLower(kw)) {
				found[t.Slug] = true

				break
			}
		}
	}

	slugs := make([]string, 0, len(found))
	for slug := range found {
		slugs = append(slugs, slug)
	}

	sort.Strings(slugs)

	return slugs
}
