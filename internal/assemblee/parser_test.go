package assemblee

import (
	"strings"
	"testing"

	"hemicycle/internal/models"
)

const fullScrutinXML = `<?xml version="1.0" encoding="UTF-8"?>
<scrutins xmlns="http://schemas.assemblee-nationale.fr/referentiel">
  <scrutin>
    <numero>120</numero>
    <dateScrutin>2024-06-01T00:00:00.000+02:00</dateScrutin>
    <objet><libelle>Projet de loi relatif au budget</libelle></objet>
    <typeScrutin><libelle>Scrutin public ordinaire</libelle></typeScrutin>
    <syntheseVote>
      <resultat>L'Assemblée nationale a adopté</resultat>
      <decompte>
        <pour>10</pour>
        <contre>5</contre>
        <abstention>2</abstention>
        <nonVotant>n/a</nonVotant>
      </decompte>
    </syntheseVote>
    <ventilationVotes>
      <groupe>
        <organeRef>PO800</organeRef>
        <decompteNominatif>
          <pours>
            <votant><acteurRef>PA1</acteurRef></votant>
            <votant><acteurRef>PA2</acteurRef></votant>
          </pours>
          <contres>
            <votant><acteurRef>PA3</acteurRef></votant>
          </contres>
        </decompteNominatif>
      </groupe>
    </ventilationVotes>
  </scrutin>
</scrutins>`

func TestParseScrutins_FullDocument(t *testing.T) {
	scrutins, err := ParseScrutins(strings.NewReader(fullScrutinXML))
	if err != nil {
		t.Fatalf("ParseScrutins returned unexpected error: %v", err)
	}

	if len(scrutins) != 1 {
		t.Fatalf("parsed %d scrutins, want 1", len(scrutins))
	}

	s := scrutins[0]

	if s.Number != "120" {
		t.Errorf("Number = %s, want 120", s.Number)
	}

	if s.Date != "2024-06-01" {
		t.Errorf("Date = %s, want 2024-06-01", s.Date)
	}

	if s.Title != "Projet de loi relatif au budget" {
		t.Errorf("Title = %s, want Projet de loi relatif au budget", s.Title)
	}

	if s.ScrutinType == nil || *s.ScrutinType != "Scrutin public ordinaire" {
		t.Errorf("ScrutinType = %v, want Scrutin public ordinaire", s.ScrutinType)
	}

	if s.ResultStatus == nil || *s.ResultStatus != "adopted" {
		t.Errorf("ResultStatus = %v, want adopted", s.ResultStatus)
	}

	if len(s.Votes) != 3 {
		t.Errorf("extracted %d votes, want 3", len(s.Votes))
	}
}

func TestParseScrutins_Counts(t *testing.T) {
	scrutins, err := ParseScrutins(strings.NewReader(fullScrutinXML))
	if err != nil {
		t.Fatalf("ParseScrutins returned unexpected error: %v", err)
	}

	counts := scrutins[0].Counts
	if counts == nil {
		t.Fatal("Counts is nil")
	}

	want := map[string]int{
		models.CountFor:        10,
		models.CountAgainst:    5,
		models.CountAbstention: 2,
	}

	if len(counts) != len(want) {
		t.Errorf("Counts has %d keys, want %d", len(counts), len(want))
	}

	for key, value := range want {
		if counts[key] != value {
			t.Errorf("Counts[%s] = %d, want %d", key, counts[key], value)
		}
	}

	// "n/a" is not all digits so nonvoting must be absent
	if _, ok := counts[models.CountNonVoting]; ok {
		t.Error("Counts contains nonvoting despite non-digit source value")
	}
}

func TestParseScrutins_SingleScrutinRoot(t *testing.T) {
	doc := `<ns:scrutin xmlns:ns="http://schemas.assemblee-nationale.fr/referentiel">
  <ns:numero>7</ns:numero>
  <ns:dateScrutin>2023-02-14T00:00:00</ns:dateScrutin>
  <ns:objet>Motion de censure</ns:objet>
</ns:scrutin>`

	scrutins, err := ParseScrutins(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseScrutins returned unexpected error: %v", err)
	}

	if len(scrutins) != 1 {
		t.Fatalf("parsed %d scrutins, want 1", len(scrutins))
	}

	if scrutins[0].Number != "7" {
		t.Errorf("Number = %s, want 7", scrutins[0].Number)
	}

	if scrutins[0].Title != "Motion de censure" {
		t.Errorf("Title = %s, want Motion de censure", scrutins[0].Title)
	}
}

func TestParseScrutins_MissingFieldsFallBackToSentinels(t *testing.T) {
	doc := `<scrutins><scrutin><objet>  </objet></scrutin></scrutins>`

	scrutins, err := ParseScrutins(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseScrutins returned unexpected error: %v", err)
	}

	s := scrutins[0]

	if s.Number != models.UnknownNumber {
		t.Errorf("Number = %s, want %s", s.Number, models.UnknownNumber)
	}

	if s.Date != models.UnknownDate {
		t.Errorf("Date = %s, want %s", s.Date, models.UnknownDate)
	}

	if s.Title != models.UntitledScrutin {
		t.Errorf("Title = %s, want %s", s.Title, models.UntitledScrutin)
	}

	if s.ScrutinType != nil {
		t.Errorf("ScrutinType = %v, want nil", s.ScrutinType)
	}

	if s.ResultStatus != nil {
		t.Errorf("ResultStatus = %v, want nil", s.ResultStatus)
	}

	if s.Counts != nil {
		t.Errorf("Counts = %v, want nil", s.Counts)
	}
}

func TestParseScrutins_TypeLabelFallsBackToElementText(t *testing.T) {
	doc := `<scrutin><numero>1</numero><typeScrutin>solennel</typeScrutin></scrutin>`

	scrutins, err := ParseScrutins(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseScrutins returned unexpected error: %v", err)
	}

	if scrutins[0].ScrutinType == nil || *scrutins[0].ScrutinType != "solennel" {
		t.Errorf("ScrutinType = %v, want solennel", scrutins[0].ScrutinType)
	}
}

func TestParseScrutins_TruncatedDocument(t *testing.T) {
	doc := `<scrutins><scrutin><numero>1</numero>`

	if _, err := ParseScrutins(strings.NewReader(doc)); err == nil {
		t.Error("ParseScrutins on truncated input did not return an error")
	}
}

func TestNormalizeResult(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"L'Assemblée nationale a adopté", "adopted"},
		{"Adopté", "adopted"},
		{"rejeté", "rejected"},
		{"L'Assemblée nationale n'a pas adopté", "adopted"},
		{"Suffrages exprimés insuffisants", "suffrages exprimés insuffisants"},
		{"", ""},
	}

	for _, c := range cases {
		if got := normalizeResult(c.in); got != c.want {
			t.Errorf("normalizeResult(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	if got := dateOnly("2024-06-01T00:00:00"); got != "2024-06-01" {
		t.Errorf("dateOnly = %s, want 2024-06-01", got)
	}

	if got := dateOnly(" 2024-06-01 "); got != "2024-06-01" {
		t.Errorf("dateOnly without time part = %s, want 2024-06-01", got)
	}

	if got := dateOnly(""); got != "" {
		t.Errorf("dateOnly of empty = %q, want empty", got)
	}
}
