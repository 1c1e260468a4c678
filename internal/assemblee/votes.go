package assemblee

import (
	"hemicycle/internal/models"
	"hemicycle/internal/xmltree"
)

// maxAncestorDepth bounds the upward walk from an actor reference.
const maxAncestorDepth = 30

// bucketPositions maps the unqualified name of an enclosing container
// to the vote position it denotes. Singular and plural spellings have
// both appeared across yearly archives.
var bucketPositions = map[string]models.Position{
	"pour":        models.PositionFor,
	"pours":       models.PositionFor,
	"contre":      models.PositionAgainst,
	"contres":     models.PositionAgainst,
	"abstention":  models.PositionAbstain,
	"abstentions": models.PositionAbstain,
	"nonVotant":   models.PositionNonVoting,
	"nonvotant":   models.PositionNonVoting,
	"nonVotants":  models.PositionNonVoting,
}

// voteKey is the dedup granularity within one scrutin.
type voteKey struct {
	personID string
	position models.Position
	group    string
}

// ExtractVotes collects every actor reference under the scrutin element
// and infers each vote's position and group from its ancestor chain.
//
// The position comes from the closest enclosing bucket element; the
// group from the first ancestor subtree carrying a non-empty organeRef.
// References whose position never resolves within the traversal bound
// are noise and dropped. Duplicate (person, position, group) triples
// collapse to the first occurrence in document order.
func ExtractVotes(scrutin *xmltree.Element) []models.VoteRecord {
	var votes []models.VoteRecord

	seen := map[voteKey]bool{}

	for _, ref := range scrutin.Descendants("acteurRef") {
		personID := ref.Text()
		if personID == "" {
			continue
		}

		var position models.Position

		var group string

		cur := ref
		for i := 0; i < maxAncestorDepth; i++ {
			cur = cur.Parent()
			if cur == nil {
				break
			}

			if position == "" {
				if p, ok := bucketPositions[cur.Name()]; ok {
					position = p
				}
			}

			if group == "" {
				if g := cur.FirstDescendant("organeRef"); g != nil {
					group = g.Text()
				}
			}

			if position != "" && group != "" {
				break
			}
		}

		if position == "" {
			continue
		}

		key := voteKey{personID: personID, position: position, group: group}
		if seen[key] {
			continue
		}

		seen[key] = true

		votes = append(votes, models.VoteRecord{
			PersonID: personID,
			Position: position,
			Group:    optional(group),
		})
	}

	return votes
}
