package assemblee

import (
	"strings"
	"testing"

	"hemicycle/internal/models"
	"hemicycle/internal/xmltree"
)

func parseFixture(t *testing.T, doc string) *xmltree.Element {
	t.Helper()

	root, err := xmltree.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	return root
}

func TestExtractVotes_PositionWithoutGroup(t *testing.T) {
	root := parseFixture(t, `<scrutin><pour><acteurRef>PA1</acteurRef></pour></scrutin>`)

	votes := ExtractVotes(root)
	if len(votes) != 1 {
		t.Fatalf("extracted %d votes, want 1", len(votes))
	}

	v := votes[0]

	if v.PersonID != "PA1" {
		t.Errorf("PersonID = %s, want PA1", v.PersonID)
	}

	if v.Position != models.PositionFor {
		t.Errorf("Position = %s, want FOR", v.Position)
	}

	if v.Group != nil {
		t.Errorf("Group = %v, want nil", v.Group)
	}
}

func TestExtractVotes_GroupFromAncestorSubtree(t *testing.T) {
	root := parseFixture(t, `<scrutin>
  <groupe>
    <organeRef>PO800</organeRef>
    <contres><votant><acteurRef>PA2</acteurRef></votant></contres>
  </groupe>
</scrutin>`)

	votes := ExtractVotes(root)
	if len(votes) != 1 {
		t.Fatalf("extracted %d votes, want 1", len(votes))
	}

	v := votes[0]

	if v.Position != models.PositionAgainst {
		t.Errorf("Position = %s, want AGAINST", v.Position)
	}

	if v.Group == nil || *v.Group != "PO800" {
		t.Errorf("Group = %v, want PO800", v.Group)
	}
}

func TestExtractVotes_BucketVocabulary(t *testing.T) {
	cases := []struct {
		bucket string
		want   models.Position
	}{
		{"pour", models.PositionFor},
		{"pours", models.PositionFor},
		{"contre", models.PositionAgainst},
		{"contres", models.PositionAgainst},
		{"abstention", models.PositionAbstain},
		{"abstentions", models.PositionAbstain},
		{"nonVotant", models.PositionNonVoting},
		{"nonvotant", models.PositionNonVoting},
		{"nonVotants", models.PositionNonVoting},
	}

	for _, c := range cases {
		doc := `<scrutin><` + c.bucket + `><acteurRef>PA1</acteurRef></` + c.bucket + `></scrutin>`

		votes := ExtractVotes(parseFixture(t, doc))
		if len(votes) != 1 {
			t.Errorf("bucket %s: extracted %d votes, want 1", c.bucket, len(votes))

			continue
		}

		if votes[0].Position != c.want {
			t.Errorf("bucket %s: position = %s, want %s", c.bucket, votes[0].Position, c.want)
		}
	}
}

func TestExtractVotes_ClosestBucketWins(t *testing.T) {
	root := parseFixture(t, `<scrutin>
  <contre>
    <pour><acteurRef>PA1</acteurRef></pour>
  </contre>
</scrutin>`)

	votes := ExtractVotes(root)
	if len(votes) != 1 {
		t.Fatalf("extracted %d votes, want 1", len(votes))
	}

	if votes[0].Position != models.PositionFor {
		t.Errorf("Position = %s, want FOR from the closest ancestor", votes[0].Position)
	}
}

func TestExtractVotes_UnresolvedPositionIsDropped(t *testing.T) {
	root := parseFixture(t, `<scrutin><votants><acteurRef>PA1</acteurRef></votants></scrutin>`)

	if votes := ExtractVotes(root); len(votes) != 0 {
		t.Errorf("extracted %d votes, want 0 for unresolved position", len(votes))
	}
}

func TestExtractVotes_EmptyActorRefIsSkipped(t *testing.T) {
	root := parseFixture(t, `<scrutin><pour><acteurRef>  </acteurRef></pour></scrutin>`)

	if votes := ExtractVotes(root); len(votes) != 0 {
		t.Errorf("extracted %d votes, want 0 for empty actor reference", len(votes))
	}
}

func TestExtractVotes_DeduplicatesTriples(t *testing.T) {
	root := parseFixture(t, `<scrutin>
  <groupe>
    <organeRef>PO800</organeRef>
    <pour>
      <acteurRef>PA1</acteurRef>
      <acteurRef>PA1</acteurRef>
    </pour>
  </groupe>
</scrutin>`)

	votes := ExtractVotes(root)
	if len(votes) != 1 {
		t.Errorf("extracted %d votes, want 1 after dedup", len(votes))
	}
}

func TestExtractVotes_DistinctPositionsAreKept(t *testing.T) {
	root := parseFixture(t, `<scrutin>
  <pour><acteurRef>PA1</acteurRef></pour>
  <contre><acteurRef>PA1</acteurRef></contre>
</scrutin>`)

	votes := ExtractVotes(root)
	if len(votes) != 2 {
		t.Errorf("extracted %d votes, want 2 for distinct positions", len(votes))
	}
}

func TestExtractVotes_AncestorWalkIsBounded(t *testing.T) {
	var b strings.Builder

	b.WriteString("<scrutin><pour>")

	for i := 0; i < 35; i++ {
		b.WriteString("<wrap>")
	}

	b.WriteString("<acteurRef>PA1</acteurRef>")

	for i := 0; i < 35; i++ {
		b.WriteString("</wrap>")
	}

	b.WriteString("</pour></scrutin>")

	votes := ExtractVotes(parseFixture(t, b.String()))
	if len(votes) != 0 {
		t.Errorf("extracted %d votes, want 0: bucket lies beyond the traversal bound", len(votes))
	}
}
