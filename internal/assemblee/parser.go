// Package assemblee extracts roll-call votes from the Assemblée
// nationale open-data archives and joins them against the actor/organ
// registry.
package assemblee

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hemicycle/internal/models"
	"hemicycle/internal/xmltree"
)

// ParseScrutins reads one XML document and returns every scrutin found
// in it. Both historical shapes are handled: a document whose root is a
// single scrutin, and a container document holding many sibling scrutin
// elements. A malformed document yields an error and zero scrutins; the
// caller decides whether to skip or abort.
func ParseScrutins(r io.Reader) ([]models.RawScrutin, error) {
	var out []models.RawScrutin

	err := xmltree.EachSubtree(r, "scrutin", func(el *xmltree.Element) error {
		out = append(out, parseScrutin(el))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse scrutin document: %w", err)
	}

	return out, nil
}

// parseScrutin extracts one raw scrutin from its element.
func parseScrutin(el *xmltree.Element) models.RawScrutin {
	number := firstText(el, "numero")
	if number == "" {
		number = models.UnknownNumber
	}

	date := dateOnly(firstText(el, "dateScrutin"))
	if date == "" {
		date = models.UnknownDate
	}

	title := firstText(el, "objet")
	if title == "" {
		title = models.UntitledScrutin
	}

	scrutinType := nestedText(el, "typeScrutin", "libelle")
	if scrutinType == "" {
		// Older archives carry the label as the element's own text.
		scrutinType = firstText(el, "typeScrutin")
	}

	resultStatus := normalizeResult(nestedText(el, "syntheseVote", "resultat"))

	return models.RawScrutin{
		Number:       number,
		Date:         date,
		Title:        title,
		ScrutinType:  optional(scrutinType),
		ResultStatus: optional(resultStatus),
		Counts:       parseCounts(el),
		Votes:        ExtractVotes(el),
	}
}

// parseCounts extracts the vote tallies found under a decompte
// container. A value is accepted only when it is composed entirely of
// decimal digits; the mapping is nil when no key resolved.
func parseCounts(el *xmltree.Element) map[string]int {
	targets := []struct {
		key   string
		local string
	}{
		{models.CountFor, "pour"},
		{models.CountAgainst, "contre"},
		{models.CountAbstention, "abstention"},
		{models.CountNonVoting, "nonVotant"},
	}

	counts := map[string]int{}

	for _, t := range targets {
		node := nestedFirst(el, "decompte", t.local)
		if node == nil {
			continue
		}

		text := node.Text()
		if text == "" || !isDigits(text) {
			continue
		}

		n, err := strconv.Atoi(text)
		if err != nil {
			continue
		}

		counts[t.key] = n
	}

	if len(counts) == 0 {
		return nil
	}

	return counts
}

// firstText returns the trimmed string value of the first descendant
// with the given unqualified name, or "".
func firstText(el *xmltree.Element, name string) string {
	d := el.FirstDescendant(name)
	if d == nil {
		return ""
	}

	return d.Text()
}

// nestedFirst returns the first descendant named inner found under any
// descendant named outer, in document order.
func nestedFirst(el *xmltree.Element, outer, inner string) *xmltree.Element {
	for _, o := range el.Descendants(outer) {
		if d := o.FirstDescendant(inner); d != nil {
			return d
		}
	}

	return nil
}

// nestedText is nestedFirst followed by the node's string value.
func nestedText(el *xmltree.Element, outer, inner string) string {
	d := nestedFirst(el, outer, inner)
	if d == nil {
		return ""
	}

	return d.Text()
}

// normalizeResult maps the free-text result to a fixed vocabulary where
// possible and passes the lowercased original through otherwise.
func normalizeResult(s string) string {
	low := strings.ToLower(strings.TrimSpace(s))
	if low == "" {
		return ""
	}

	if strings.Contains(low, "adopt") {
		return "adopted"
	}

	if strings.Contains(low, "rejet") {
		return "rejected"
	}

	return low
}

// dateOnly keeps the date part of a source timestamp.
func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}

	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(s) > 0
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
